package main

import (
	"context"
	"log"

	"bookstore/internal/config"
	"bookstore/internal/db"
	"bookstore/internal/model"
	"bookstore/internal/repository"
	"bookstore/internal/seed"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Book{},
		&model.Order{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	seeder := seed.New(
		repository.NewUserRepository(gormDB),
		repository.NewCategoryRepository(gormDB),
		repository.NewBookRepository(gormDB),
	)

	applied, err := seeder.Apply(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed sample data: %v", err)
	}
	if !applied {
		log.Println("Database already has users, nothing to do")
		return
	}
	log.Println("Seed completed successfully!")
}
