package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bookstore/internal/cache"
	"bookstore/internal/errors"
	"bookstore/internal/model"
	"bookstore/internal/repository"
)

const bookCacheTTL = 5 * time.Minute

func bookCacheKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

// BookInput carries the fields an administrator sets when creating or
// editing a book.
type BookInput struct {
	Title       string
	Author      string
	Price       decimal.Decimal
	Stock       int
	Description string
	CategoryID  uint
}

// CatalogService exposes catalog reads for the storefront and book
// management for administrators.
type CatalogService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	ListBooksByCategory(ctx context.Context, categoryID uint) ([]model.Book, error)
	FeaturedBooks(ctx context.Context, limit int) ([]model.Book, error)
	SearchBooks(ctx context.Context, query string) ([]model.Book, error)
	GetBook(ctx context.Context, id uint) (*model.Book, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateBook(ctx context.Context, input BookInput) (*model.Book, error)
	UpdateBook(ctx context.Context, id uint, input BookInput) (*model.Book, error)
	DeleteBook(ctx context.Context, id uint) error
}

type catalogService struct {
	bookRepo     repository.BookRepository
	categoryRepo repository.CategoryRepository
	cache        *cache.Client
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(bookRepo repository.BookRepository, categoryRepo repository.CategoryRepository, cache *cache.Client) CatalogService {
	return &catalogService{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// ListBooks returns every book in the catalog.
func (s *catalogService) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.bookRepo.List(ctx)
}

// ListBooksByCategory returns the books in one category.
func (s *catalogService) ListBooksByCategory(ctx context.Context, categoryID uint) ([]model.Book, error) {
	return s.bookRepo.ListByCategory(ctx, categoryID)
}

// FeaturedBooks returns up to limit books for the storefront page.
func (s *catalogService) FeaturedBooks(ctx context.Context, limit int) ([]model.Book, error) {
	return s.bookRepo.ListFeatured(ctx, limit)
}

// SearchBooks matches the query as a case-insensitive substring of title
// or author. Whitespace-only queries return no results.
func (s *catalogService) SearchBooks(ctx context.Context, query string) ([]model.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Book{}, nil
	}
	return s.bookRepo.Search(ctx, query)
}

// GetBook retrieves a book by ID with caching.
func (s *catalogService) GetBook(ctx context.Context, id uint) (*model.Book, error) {
	if data, _ := s.cache.Get(ctx, bookCacheKey(id)); data != nil {
		var cached model.Book
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(book); err == nil {
		_ = s.cache.Set(ctx, bookCacheKey(id), payload, bookCacheTTL)
	}
	return book, nil
}

// ListCategories returns all categories.
func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateBook adds a book to the catalog.
func (s *catalogService) CreateBook(ctx context.Context, input BookInput) (*model.Book, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	book := &model.Book{
		Title:       input.Title,
		Author:      input.Author,
		Price:       input.Price,
		Stock:       input.Stock,
		Description: input.Description,
		CategoryID:  input.CategoryID,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// UpdateBook replaces the editable fields of a book.
func (s *catalogService) UpdateBook(ctx context.Context, id uint, input BookInput) (*model.Book, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookNotFound
		}
		return nil, err
	}

	book.Title = input.Title
	book.Author = input.Author
	book.Price = input.Price
	book.Stock = input.Stock
	book.Description = input.Description
	book.CategoryID = input.CategoryID

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	_ = s.cache.Delete(ctx, bookCacheKey(id))
	return book, nil
}

// DeleteBook removes a book from the catalog.
func (s *catalogService) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.bookRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBookNotFound
		}
		return err
	}
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	_ = s.cache.Delete(ctx, bookCacheKey(id))
	return nil
}

func (s *catalogService) validateInput(ctx context.Context, input BookInput) error {
	if input.Title == "" || input.Author == "" {
		return errors.ErrInvalidBookInput
	}
	if input.Price.IsNegative() || input.Stock < 0 {
		return errors.ErrInvalidBookInput
	}
	// Every book must reference an existing category.
	if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrInvalidBookInput
		}
		return err
	}
	return nil
}
