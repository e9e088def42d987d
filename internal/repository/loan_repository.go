package repository

import (
	"context"

	"gorm.io/gorm"

	"librario/internal/model"
)

// LoanRepository defines loan persistence operations. Loans are append-only.
type LoanRepository interface {
	Create(ctx context.Context, loan *model.Loan) error
	FindAll(ctx context.Context) ([]model.Loan, error)
}

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository builds a GORM-backed loan repository.
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *model.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// FindAll returns every loan in storage order, without re-sorting.
func (r *loanRepository) FindAll(ctx context.Context) ([]model.Loan, error) {
	var loans []model.Loan
	if err := r.db.WithContext(ctx).Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}
