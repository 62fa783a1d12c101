package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Book represents a title in the catalog. Stock is the count of unsold
// units and must never go negative; order placement and cancellation are
// the only flows that touch it outside admin edits.
type Book struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"size:255;not null;index"`
	Author      string          `json:"author" gorm:"size:255;not null;index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	Description string          `json:"description" gorm:"type:text"`
	CategoryID  uint            `json:"category_id" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Category Category `json:"-" gorm:"foreignKey:CategoryID"`
}
