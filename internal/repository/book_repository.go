package repository

import (
	"context"

	"gorm.io/gorm"

	"librario/internal/model"
)

// BookRepository defines book persistence operations.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	Save(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Delete(ctx context.Context, id uint) error
	ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error)
	MarkUnavailable(ctx context.Context, id uint) (bool, error)
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository builds a GORM-backed book repository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// Save inserts or updates a book record.
func (r *bookRepository) Save(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Delete removes a book by id. Returns gorm.ErrRecordNotFound when the id has
// no matching record.
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistsByTitleAndAuthor reports whether the catalog already holds the exact
// title/author pair. Used for duplicate detection on plain add.
func (r *bookRepository) ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Book{}).
		Where("title = ? AND author = ?", title, author).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkUnavailable flips availability to false only if it is currently true and
// reports whether a row changed. The conditional update is the double-booking
// guard inside the loan transaction.
func (r *bookRepository) MarkUnavailable(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Book{}).
		Where("id = ? AND availability = ?", id, true).
		Update("availability", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
