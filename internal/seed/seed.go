package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookstore/internal/model"
	"bookstore/internal/repository"
)

// Seeder loads the sample storefront fixtures: two users, five categories
// and a starter catalog. It is a one-time bootstrap for fresh databases.
type Seeder struct {
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	bookRepo     repository.BookRepository
}

// New creates a seeder over the given repositories.
func New(userRepo repository.UserRepository, categoryRepo repository.CategoryRepository, bookRepo repository.BookRepository) *Seeder {
	return &Seeder{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
	}
}

type fixtureUser struct {
	name     string
	email    string
	password string
	role     string
}

type fixtureBook struct {
	title       string
	author      string
	price       string
	stock       int
	description string
	category    string
}

var fixtureUsers = []fixtureUser{
	{"Admin User", "admin@bookstore.com", "admin123", model.RoleAdmin},
	{"John Doe", "john@example.com", "customer123", model.RoleCustomer},
}

var fixtureCategories = []string{"Fiction", "Science", "Technology", "History", "Biography"}

var fixtureBooks = []fixtureBook{
	{"The Great Gatsby", "F. Scott Fitzgerald", "12.99", 50, "A classic American novel", "Fiction"},
	{"1984", "George Orwell", "14.99", 30, "Dystopian social science fiction", "Fiction"},
	{"To Kill a Mockingbird", "Harper Lee", "13.99", 45, "A gripping tale of racial injustice", "Fiction"},
	{"Pride and Prejudice", "Jane Austen", "11.99", 40, "A romantic novel of manners", "Fiction"},
	{"The Hobbit", "J.R.R. Tolkien", "15.99", 50, "A fantasy adventure in Middle Earth", "Fiction"},
	{"A Brief History of Time", "Stephen Hawking", "18.99", 25, "From the Big Bang to black holes", "Science"},
	{"The Selfish Gene", "Richard Dawkins", "16.99", 20, "A gene-centred view of evolution", "Science"},
	{"Cosmos", "Carl Sagan", "17.99", 30, "A personal voyage through the universe", "Science"},
	{"Clean Code", "Robert C. Martin", "34.99", 35, "A handbook of agile software craftsmanship", "Technology"},
	{"The Pragmatic Programmer", "Andrew Hunt", "39.99", 28, "From journeyman to master", "Technology"},
	{"Structure and Interpretation of Computer Programs", "Harold Abelson", "44.99", 15, "Foundational computer science text", "Technology"},
	{"Sapiens", "Yuval Noah Harari", "22.99", 40, "A brief history of humankind", "History"},
	{"Guns, Germs, and Steel", "Jared Diamond", "19.99", 22, "The fates of human societies", "History"},
	{"The Diary of a Young Girl", "Anne Frank", "10.99", 35, "Anne Frank's wartime diary", "Biography"},
	{"Steve Jobs", "Walter Isaacson", "24.99", 30, "The exclusive biography", "Biography"},
}

// Apply loads the fixtures if the database has no users yet. It reports
// whether seeding ran, so repeated starts are no-ops.
func (s *Seeder) Apply(ctx context.Context) (bool, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, fu := range fixtureUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(fu.password), bcrypt.DefaultCost)
		if err != nil {
			return false, fmt.Errorf("hash fixture password: %w", err)
		}
		user := &model.User{
			Name:         fu.name,
			Email:        fu.email,
			PasswordHash: string(hashed),
			Role:         fu.role,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return false, fmt.Errorf("seed user %s: %w", fu.email, err)
		}
	}

	categoryIDs := make(map[string]uint, len(fixtureCategories))
	for _, name := range fixtureCategories {
		existing, err := s.categoryRepo.FindByName(ctx, name)
		if err == nil {
			categoryIDs[name] = existing.ID
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return false, fmt.Errorf("check category %s: %w", name, err)
		}
		category := &model.Category{Name: name}
		if err := s.categoryRepo.Create(ctx, category); err != nil {
			return false, fmt.Errorf("seed category %s: %w", name, err)
		}
		categoryIDs[name] = category.ID
	}

	for _, fb := range fixtureBooks {
		price, err := decimal.NewFromString(fb.price)
		if err != nil {
			return false, fmt.Errorf("parse price for %s: %w", fb.title, err)
		}
		book := &model.Book{
			Title:       fb.title,
			Author:      fb.author,
			Price:       price,
			Stock:       fb.stock,
			Description: fb.description,
			CategoryID:  categoryIDs[fb.category],
		}
		if err := s.bookRepo.Create(ctx, book); err != nil {
			return false, fmt.Errorf("seed book %s: %w", fb.title, err)
		}
	}

	return true, nil
}
