package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookstore/internal/model"
)

// BookRepository defines book persistence operations. The Tx variants run
// against a caller-supplied transaction so stock updates can share one
// transaction with order rows.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]model.Book, error)
	ListFeatured(ctx context.Context, limit int) ([]model.Book, error)
	Search(ctx context.Context, query string) ([]model.Book, error)
	// Transaction methods
	FindByIDForUpdateTx(ctx context.Context, tx interface{}, id uint) (*model.Book, error)
	UpdateStockTx(ctx context.Context, tx interface{}, id uint, newStock int) error
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book.
func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// Update updates an existing book.
func (r *bookRepository) Update(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// Delete soft-deletes a book.
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Book{}, id).Error
}

// FindByID finds a book by ID.
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns all books.
func (r *bookRepository) List(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// ListByCategory returns all books in a category.
func (r *bookRepository) ListByCategory(ctx context.Context, categoryID uint) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// ListFeatured returns the first books for the storefront page.
func (r *bookRepository) ListFeatured(ctx context.Context, limit int) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).Limit(limit).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Search matches a substring against title or author, case-insensitively.
func (r *bookRepository) Search(ctx context.Context, query string) ([]model.Book, error) {
	var books []model.Book
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", pattern, pattern).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// FindByIDForUpdateTx finds a book by ID with a row-level lock within a
// transaction. The lock serializes concurrent stock updates on the row.
func (r *bookRepository) FindByIDForUpdateTx(ctx context.Context, tx interface{}, id uint) (*model.Book, error) {
	txDB := tx.(*gorm.DB)
	var book model.Book
	if err := txDB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateStockTx updates the stock within a transaction.
func (r *bookRepository) UpdateStockTx(ctx context.Context, tx interface{}, id uint, newStock int) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", id).
		Update("stock", newStock).Error
}
