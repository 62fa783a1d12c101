package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order records a purchase of one book by one user. TotalPrice is frozen
// at placement time and is not recomputed when the book's price changes.
// Orders are never deleted; cancellation only flips the status.
type Order struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"not null;index"`
	BookID     uint            `json:"book_id" gorm:"not null;index"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Status     OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
	Book Book `json:"-" gorm:"foreignKey:BookID"`
}
