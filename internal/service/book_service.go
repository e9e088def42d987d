package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"librario/internal/cache"
	"librario/internal/errors"
	"librario/internal/model"
	"librario/internal/repository"
)

const bookCacheTTL = 5 * time.Minute

// UpdateBookInput carries a full replacement of a book's mutable fields.
type UpdateBookInput struct {
	ID           uint
	Title        string
	Author       string
	Genre        string
	Availability bool
}

// BookService exposes catalog operations.
type BookService interface {
	ListAllBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id uint) (*model.Book, error)
	AddBook(ctx context.Context, book *model.Book) (*model.Book, error)
	UpdateBook(ctx context.Context, in UpdateBookInput) (*model.Book, error)
	DeleteBook(ctx context.Context, id uint) error
}

type bookService struct {
	repo  repository.BookRepository
	cache *cache.Client
}

// NewBookService builds a BookService with repository and cache.
func NewBookService(repo repository.BookRepository, cache *cache.Client) BookService {
	return &bookService{repo: repo, cache: cache}
}

func (s *bookService) cacheKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

func (s *bookService) ListAllBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.List(ctx)
}

func (s *bookService) GetBook(ctx context.Context, id uint) (*model.Book, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Book
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(book); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, bookCacheTTL)
	}
	return book, nil
}

// AddBook inserts a new catalog entry. The id is system-assigned, the text
// fields are normalized, and an exact title/author duplicate is rejected.
func (s *bookService) AddBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	book.ID = 0
	book.Title = capitalize(book.Title)
	book.Author = capitalize(book.Author)
	book.Genre = capitalize(book.Genre)

	exists, err := s.repo.ExistsByTitleAndAuthor(ctx, book.Title, book.Author)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.ErrDuplicateBook
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) UpdateBook(ctx context.Context, in UpdateBookInput) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookNotFound
		}
		return nil, err
	}

	book.Title = in.Title
	book.Author = in.Author
	book.Genre = in.Genre
	book.Availability = in.Availability

	if err := s.repo.Save(ctx, book); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(book.ID))
	return book, nil
}

func (s *bookService) DeleteBook(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBookNotFound
		}
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(text string) string {
	if text == "" {
		return text
	}
	runes := []rune(strings.ToLower(text))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
