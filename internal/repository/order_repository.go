package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookstore/internal/model"
)

// OrderRepository defines order persistence operations.
type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Order, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interface{}) error) error
	CreateTx(ctx context.Context, tx interface{}, order *model.Order) error
	FindByIDForUpdateTx(ctx context.Context, tx interface{}, id uint) (*model.Order, error)
	UpdateStatusTx(ctx context.Context, tx interface{}, id uint, status model.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// FindByID finds an order by ID.
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser returns a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// WithTransaction executes a function within a database transaction. The
// opaque tx handle is accepted by the Tx methods of this and other
// repositories, so order and stock writes commit or roll back together.
func (r *orderRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interface{}) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, tx)
	})
}

// CreateTx creates an order within a transaction.
func (r *orderRepository) CreateTx(ctx context.Context, tx interface{}, order *model.Order) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Create(order).Error
}

// FindByIDForUpdateTx finds an order by ID with a row-level lock within a transaction.
func (r *orderRepository) FindByIDForUpdateTx(ctx context.Context, tx interface{}, id uint) (*model.Order, error) {
	txDB := tx.(*gorm.DB)
	var order model.Order
	if err := txDB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatusTx updates the order status within a transaction.
func (r *orderRepository) UpdateStatusTx(ctx context.Context, tx interface{}, id uint, status model.OrderStatus) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}
