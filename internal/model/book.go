package model

import "time"

// Book represents a title in the library catalog. Availability is true unless
// an outstanding loan references the book.
type Book struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"size:50;not null;uniqueIndex:idx_books_title_author"`
	Author       string    `json:"author" gorm:"size:50;not null;uniqueIndex:idx_books_title_author"`
	Genre        string    `json:"genre,omitempty" gorm:"size:50"`
	Availability bool      `json:"availability" gorm:"not null;default:true;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
