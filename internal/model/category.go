package model

import "time"

// Category groups books on the storefront. Created at seed time or by an
// administrator; books always reference exactly one category.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Books []Book `json:"books,omitempty" gorm:"foreignKey:CategoryID"`
}
