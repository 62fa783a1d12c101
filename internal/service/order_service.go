package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bookstore/internal/cache"
	"bookstore/internal/errors"
	"bookstore/internal/model"
	"bookstore/internal/repository"
)

// OrderService handles order placement and cancellation. It is the only
// writer of book stock outside admin edits, and it keeps the invariant that
// stock plus the quantities of all pending orders for a book stays constant
// between admin stock edits.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID, bookID uint, quantity int) (*model.Order, error)
	CancelOrder(ctx context.Context, userID, orderID uint) (*model.Order, error)
	ListUserOrders(ctx context.Context, userID uint) ([]model.Order, error)
}

type orderService struct {
	bookRepo  repository.BookRepository
	orderRepo repository.OrderRepository
	cache     *cache.Client
}

// NewOrderService creates a new order service.
func NewOrderService(bookRepo repository.BookRepository, orderRepo repository.OrderRepository, cache *cache.Client) OrderService {
	return &orderService{
		bookRepo:  bookRepo,
		orderRepo: orderRepo,
		cache:     cache,
	}
}

// PlaceOrder creates a pending order and decrements the book's stock in a
// single transaction. The book row is locked for the duration, so two
// concurrent placements cannot both pass the stock check. The order total
// is the book's price at this instant; later price edits do not touch it.
func (s *orderService) PlaceOrder(ctx context.Context, userID, bookID uint, quantity int) (*model.Order, error) {
	if quantity < 1 {
		return nil, errors.ErrInvalidQuantity
	}

	var order *model.Order
	err := s.orderRepo.WithTransaction(ctx, func(ctx context.Context, tx interface{}) error {
		book, err := s.bookRepo.FindByIDForUpdateTx(ctx, tx, bookID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrBookNotFound
			}
			return fmt.Errorf("lock book: %w", err)
		}

		if quantity > book.Stock {
			return errors.ErrInsufficientStock
		}

		order = &model.Order{
			UserID:     userID,
			BookID:     bookID,
			Quantity:   quantity,
			TotalPrice: book.Price.Mul(decimal.NewFromInt(int64(quantity))),
			Status:     model.OrderStatusPending,
		}
		if err := s.orderRepo.CreateTx(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if err := s.bookRepo.UpdateStockTx(ctx, tx, bookID, book.Stock-quantity); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stock changed, drop the cached book.
	_ = s.cache.Delete(ctx, bookCacheKey(bookID))

	return order, nil
}

// CancelOrder flips a pending order to cancelled and restores the book's
// stock, atomically. Only the order's owner may cancel it, and a cancelled
// order stays cancelled.
func (s *orderService) CancelOrder(ctx context.Context, userID, orderID uint) (*model.Order, error) {
	var order *model.Order
	err := s.orderRepo.WithTransaction(ctx, func(ctx context.Context, tx interface{}) error {
		var err error
		order, err = s.orderRepo.FindByIDForUpdateTx(ctx, tx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrOrderNotFound
			}
			return fmt.Errorf("lock order: %w", err)
		}

		if order.UserID != userID {
			return errors.ErrNotOwner
		}
		if order.Status != model.OrderStatusPending {
			return errors.ErrOrderNotCancellable
		}

		book, err := s.bookRepo.FindByIDForUpdateTx(ctx, tx, order.BookID)
		if err != nil {
			return fmt.Errorf("lock book: %w", err)
		}

		if err := s.bookRepo.UpdateStockTx(ctx, tx, book.ID, book.Stock+order.Quantity); err != nil {
			return fmt.Errorf("restore stock: %w", err)
		}

		if err := s.orderRepo.UpdateStatusTx(ctx, tx, order.ID, model.OrderStatusCancelled); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		order.Status = model.OrderStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, bookCacheKey(order.BookID))

	return order, nil
}

// ListUserOrders returns the given user's order history.
func (s *orderService) ListUserOrders(ctx context.Context, userID uint) ([]model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}
