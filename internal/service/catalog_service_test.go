package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"bookstore/internal/errors"
	"bookstore/internal/model"
)

// MockBookRepository is a mock implementation of BookRepository.
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) ListByCategory(ctx context.Context, categoryID uint) ([]model.Book, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) ListFeatured(ctx context.Context, limit int) ([]model.Book, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) Search(ctx context.Context, query string) ([]model.Book, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) FindByIDForUpdateTx(ctx context.Context, tx interface{}, id uint) (*model.Book, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) UpdateStockTx(ctx context.Context, tx interface{}, id uint, newStock int) error {
	args := m.Called(ctx, tx, id, newStock)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func validBookInput() BookInput {
	return BookInput{
		Title:      "Clean Code",
		Author:     "Robert C. Martin",
		Price:      decimal.RequireFromString("34.99"),
		Stock:      10,
		CategoryID: 3,
	}
}

func TestCatalogService_GetBook_NotFound(t *testing.T) {
	mockBooks := new(MockBookRepository)
	mockBooks.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	service := NewCatalogService(mockBooks, new(MockCategoryRepository), nil)
	book, err := service.GetBook(context.Background(), 42)

	assert.ErrorIs(t, err, errors.ErrBookNotFound)
	assert.Nil(t, book)
	mockBooks.AssertExpectations(t)
}

func TestCatalogService_SearchBooks(t *testing.T) {
	mockBooks := new(MockBookRepository)
	mockBooks.On("Search", mock.Anything, "orwell").Return([]model.Book{
		{ID: 2, Title: "1984", Author: "George Orwell"},
	}, nil)

	service := NewCatalogService(mockBooks, new(MockCategoryRepository), nil)

	books, err := service.SearchBooks(context.Background(), "  orwell  ")
	assert.NoError(t, err)
	assert.Len(t, books, 1)

	// Whitespace-only queries never hit the repository.
	books, err = service.SearchBooks(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Empty(t, books)

	mockBooks.AssertExpectations(t)
}

func TestCatalogService_CreateBook(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*BookInput)
		setupMock     func(*MockBookRepository, *MockCategoryRepository)
		expectedError error
	}{
		{
			name: "success",
			setupMock: func(mBooks *MockBookRepository, mCategories *MockCategoryRepository) {
				mCategories.On("FindByID", mock.Anything, uint(3)).Return(&model.Category{ID: 3, Name: "Technology"}, nil)
				mBooks.On("Create", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)
			},
		},
		{
			name:          "missing title",
			mutate:        func(in *BookInput) { in.Title = "" },
			expectedError: errors.ErrInvalidBookInput,
		},
		{
			name:          "negative price",
			mutate:        func(in *BookInput) { in.Price = decimal.RequireFromString("-1.00") },
			expectedError: errors.ErrInvalidBookInput,
		},
		{
			name:          "negative stock",
			mutate:        func(in *BookInput) { in.Stock = -5 },
			expectedError: errors.ErrInvalidBookInput,
		},
		{
			name:   "unknown category",
			mutate: func(in *BookInput) { in.CategoryID = 99 },
			setupMock: func(mBooks *MockBookRepository, mCategories *MockCategoryRepository) {
				mCategories.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidBookInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBooks := new(MockBookRepository)
			mockCategories := new(MockCategoryRepository)
			if tt.setupMock != nil {
				tt.setupMock(mockBooks, mockCategories)
			}

			input := validBookInput()
			if tt.mutate != nil {
				tt.mutate(&input)
			}

			service := NewCatalogService(mockBooks, mockCategories, nil)
			book, err := service.CreateBook(context.Background(), input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, book)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, book)
				assert.Equal(t, input.Title, book.Title)
			}

			mockBooks.AssertExpectations(t)
			mockCategories.AssertExpectations(t)
		})
	}
}

func TestCatalogService_UpdateBook_NotFound(t *testing.T) {
	mockBooks := new(MockBookRepository)
	mockCategories := new(MockCategoryRepository)
	mockCategories.On("FindByID", mock.Anything, uint(3)).Return(&model.Category{ID: 3}, nil)
	mockBooks.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	service := NewCatalogService(mockBooks, mockCategories, nil)
	book, err := service.UpdateBook(context.Background(), 42, validBookInput())

	assert.ErrorIs(t, err, errors.ErrBookNotFound)
	assert.Nil(t, book)
	mockBooks.AssertExpectations(t)
}
