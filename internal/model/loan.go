package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Loan links one book and one user with a loan period. A loan is an immutable
// historical record once created; the book's availability flag is the only
// signal of an outstanding loan.
type Loan struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Reference  uuid.UUID `json:"reference" gorm:"type:char(36);uniqueIndex;not null"`
	BookID     uint      `json:"book_id" gorm:"not null;index"`
	UserID     uint64    `json:"user_id" gorm:"not null;index"`
	LoanDate   time.Time `json:"loan_date" gorm:"type:date;not null"`
	ReturnDate time.Time `json:"return_date" gorm:"type:date;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate sets the loan reference before creating the record.
func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.Reference == uuid.Nil {
		l.Reference = uuid.New()
	}
	return nil
}
