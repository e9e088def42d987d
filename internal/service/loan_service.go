package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"librario/internal/cache"
	"librario/internal/errors"
	"librario/internal/model"
	"librario/internal/repository"
)

const dateLayout = "2006-01-02"

// CreateLoanInput carries everything needed to register a loan. The profile
// fields are only used when the user id is not yet known to the store.
type CreateLoanInput struct {
	BookID      uint
	UserID      uint64
	UserName    string
	UserEmail   string
	UserPhone   string
	UserAddress string
	LoanDate    time.Time
	ReturnDate  time.Time
}

// LoanView is the denormalized listing record: one per stored loan, joined
// with the borrower's profile and the raw book id.
type LoanView struct {
	LoanID      uint   `json:"loanId"`
	UserName    string `json:"userName"`
	UserEmail   string `json:"userEmail"`
	UserID      uint64 `json:"userId"`
	UserPhone   string `json:"userPhone"`
	UserAddress string `json:"userAddress"`
	BookID      uint   `json:"bookId"`
	LoanDate    string `json:"loanDate"`
	ReturnDate  string `json:"returnDate"`
}

// LoanService orchestrates books, users and loans.
type LoanService interface {
	CreateLoan(ctx context.Context, in CreateLoanInput) error
	ListLoans(ctx context.Context) ([]LoanView, error)
}

type loanService struct {
	tx    repository.TxManager
	books repository.BookRepository
	users repository.UserRepository
	loans repository.LoanRepository
	cache *cache.Client
}

// NewLoanService creates a new loan service.
func NewLoanService(
	tx repository.TxManager,
	books repository.BookRepository,
	users repository.UserRepository,
	loans repository.LoanRepository,
	cache *cache.Client,
) LoanService {
	return &loanService{
		tx:    tx,
		books: books,
		users: users,
		loans: loans,
		cache: cache,
	}
}

// CreateLoan registers a loan as one atomic unit: book lookup, availability
// guard, user upsert-by-id, loan insert and the availability flip all commit
// or roll back together.
func (s *loanService) CreateLoan(ctx context.Context, in CreateLoanInput) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, r repository.Repos) error {
		book, err := r.Books.FindByID(ctx, in.BookID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrBookNotFound
			}
			return err
		}

		if !book.Availability {
			return errors.ErrBookUnavailable
		}

		// Resolve the borrower, creating the record with the caller-supplied
		// id on first sight. An existing user's profile is left untouched.
		user, err := r.Users.FindByID(ctx, in.UserID)
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			user = &model.User{
				ID:      in.UserID,
				Name:    in.UserName,
				Email:   in.UserEmail,
				Phone:   in.UserPhone,
				Address: in.UserAddress,
			}
			if err := r.Users.Save(ctx, user); err != nil {
				return err
			}
		}

		// Conditional update so a racing request on the same book loses even
		// under weaker isolation levels.
		flipped, err := r.Books.MarkUnavailable(ctx, book.ID)
		if err != nil {
			return err
		}
		if !flipped {
			return errors.ErrBookUnavailable
		}

		loan := &model.Loan{
			BookID:     book.ID,
			UserID:     user.ID,
			LoanDate:   in.LoanDate,
			ReturnDate: in.ReturnDate,
		}
		return r.Loans.Create(ctx, loan)
	})
	if err != nil {
		return err
	}

	// The availability flag changed, so the cached book entry is stale.
	_ = s.cache.Delete(ctx, fmt.Sprintf("book:%d", in.BookID))
	return nil
}

// ListLoans returns one view per stored loan, in storage order. A loan whose
// referenced user or book no longer exists is dropped from the output.
func (s *loanService) ListLoans(ctx context.Context) ([]LoanView, error) {
	loans, err := s.loans.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]LoanView, 0, len(loans))
	for _, loan := range loans {
		user, err := s.users.FindByID(ctx, loan.UserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return nil, err
		}

		// The book lookup is an existence gate only; no book detail beyond
		// the raw id makes it into the view.
		if _, err := s.books.FindByID(ctx, loan.BookID); err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return nil, err
		}

		views = append(views, LoanView{
			LoanID:      loan.ID,
			UserName:    user.Name,
			UserEmail:   user.Email,
			UserID:      user.ID,
			UserPhone:   user.Phone,
			UserAddress: user.Address,
			BookID:      loan.BookID,
			LoanDate:    loan.LoanDate.Format(dateLayout),
			ReturnDate:  loan.ReturnDate.Format(dateLayout),
		})
	}
	return views, nil
}
