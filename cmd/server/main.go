// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/bookworks/bookstore/internal/adapters/rabbitmq"
	"github.com/bookworks/bookstore/internal/adapters/redis"
	"github.com/bookworks/bookstore/internal/adapters/repository"
	"github.com/bookworks/bookstore/internal/adapters/rest"
	"github.com/bookworks/bookstore/internal/application"
	"github.com/bookworks/bookstore/internal/ports"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("failed to load env variables", err)
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping DB: %v", err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	redisUsername := os.Getenv("REDIS_USERNAME")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0 // Default DB
	cache := redis.NewCache(redisAddr, redisUsername, redisPassword, redisDB, 5*time.Minute)
	if err := cache.Ping(context.Background()); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}

	initDB(db)
	seedCatalog(db)

	// The catalog seed may have changed since the last run; stale
	// listings must not outlive it.
	if err := cache.DeleteByPrefix(context.Background(), "catalog:"); err != nil {
		log.Printf("failed to flush catalog cache: %v", err)
	}

	var publisher ports.EventPublisherPort
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		queueName := os.Getenv("RABBITMQ_ORDER_QUEUE")
		if queueName == "" {
			queueName = "order_placed"
		}
		p, err := rabbitmq.NewPublisher(url, queueName)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer p.Close()
		publisher = p
	} else {
		log.Println("RABBITMQ_URL not set, order events disabled")
	}

	repo := repository.NewPostgresRepository(db)
	orderService := application.NewOrderService(repo, repo, cache, publisher)
	catalogService := application.NewCatalogService(repo, cache)
	srv := rest.NewServer(orderService, catalogService)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	fmt.Println("HTTP server listening on " + addr)
	if err := srv.Routes().Run(addr); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}

func initDB(db *sql.DB) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			category_id SERIAL PRIMARY KEY,
			name VARCHAR(80) UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			book_id SERIAL PRIMARY KEY,
			title VARCHAR(80) UNIQUE NOT NULL,
			author VARCHAR(80) NOT NULL,
			price INT NOT NULL,
			rating INT NOT NULL DEFAULT 0,
			is_public BOOLEAN NOT NULL DEFAULT TRUE,
			category_id BIGINT NOT NULL REFERENCES categories(category_id)
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id SERIAL PRIMARY KEY,
			customer_name VARCHAR(45) NOT NULL,
			address VARCHAR(45) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			email VARCHAR(255) NOT NULL,
			cc_number VARCHAR(19) NOT NULL,
			cc_exp_date DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			amount INT NOT NULL,
			date_created TIMESTAMP NOT NULL,
			confirmation_number BIGINT NOT NULL,
			customer_id BIGINT NOT NULL REFERENCES customers(customer_id)
		)`,
		`CREATE TABLE IF NOT EXISTS line_items (
			line_item_id SERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(order_id),
			book_id BIGINT NOT NULL REFERENCES books(book_id),
			quantity INT NOT NULL
		)`,
	}
	for _, q := range queries {
		_, err := db.Exec(q)
		if err != nil {
			log.Fatalf("failed to init DB: %v", err)
		}
	}
}

func seedCatalog(db *sql.DB) {
	categories := []string{"Classics", "Mystery", "Science Fiction", "Biography"}
	for _, name := range categories {
		_, err := db.Exec("INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name)
		if err != nil {
			log.Fatalf("failed to seed category %s: %v", name, err)
		}
	}

	books := []struct {
		title    string
		author   string
		price    int
		rating   int
		category string
	}{
		{"The Count of Monte Cristo", "Alexandre Dumas", 1599, 5, "Classics"},
		{"Pride and Prejudice", "Jane Austen", 1099, 4, "Classics"},
		{"The Maltese Falcon", "Dashiell Hammett", 1299, 4, "Mystery"},
		{"And Then There Were None", "Agatha Christie", 999, 5, "Mystery"},
		{"Dune", "Frank Herbert", 1899, 5, "Science Fiction"},
		{"The Martian", "Andy Weir", 1499, 4, "Science Fiction"},
		{"The Wright Brothers", "David McCullough", 1799, 4, "Biography"},
	}
	for _, b := range books {
		_, err := db.Exec(
			`INSERT INTO books (title, author, price, rating, category_id)
			 SELECT $1, $2, $3, $4, category_id FROM categories WHERE name = $5
			 ON CONFLICT (title) DO NOTHING`,
			b.title, b.author, b.price, b.rating, b.category)
		if err != nil {
			log.Fatalf("failed to seed book %s: %v", b.title, err)
		}
	}
}
