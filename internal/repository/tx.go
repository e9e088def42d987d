package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles the repositories bound to a single transaction.
type Repos struct {
	Books BookRepository
	Users UserRepository
	Loans LoanRepository
}

// TxManager runs a function against transaction-scoped repositories. If the
// function returns an error the whole unit rolls back.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager builds a TxManager over the given GORM handle.
func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, Repos{
			Books: NewBookRepository(tx),
			Users: NewUserRepository(tx),
			Loans: NewLoanRepository(tx),
		})
	})
}
