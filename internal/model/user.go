package model

import "time"

// User represents a borrower. The identifier is supplied by the caller (a
// national ID), never generated, so the primary key carries no autoincrement.
// Users are created lazily the first time a loan references an unknown id.
type User struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null;index"`
	Phone     string    `json:"phone" gorm:"size:50;not null"`
	Address   string    `json:"address" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
