// internal/adapters/repository/postgres.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/bookworks/bookstore/internal/domain"
	"github.com/bookworks/bookstore/internal/ports"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func storageErr(op string, err error) error {
	return &domain.StorageError{Op: op, Cause: err}
}

func (r *PostgresRepository) FindBookByID(ctx context.Context, bookID int64) (*domain.Book, error) {
	book := &domain.Book{}
	err := r.db.QueryRowContext(ctx,
		"SELECT book_id, title, author, price, rating, is_public, category_id FROM books WHERE book_id = $1",
		bookID).Scan(&book.ID, &book.Title, &book.Author, &book.Price, &book.Rating, &book.IsPublic, &book.CategoryID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("book %d: %w", bookID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("select book", err)
	}
	return book, nil
}

func (r *PostgresRepository) FindBooksByCategoryID(ctx context.Context, categoryID int64) ([]*domain.Book, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT book_id, title, author, price, rating, is_public, category_id FROM books WHERE category_id = $1 ORDER BY book_id",
		categoryID)
	if err != nil {
		return nil, storageErr("select books by category", err)
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		book := &domain.Book{}
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Price, &book.Rating, &book.IsPublic, &book.CategoryID); err != nil {
			return nil, storageErr("scan book", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("select books by category", err)
	}
	return books, nil
}

func (r *PostgresRepository) FindAllCategories(ctx context.Context) ([]*domain.Category, error) {
	return r.queryCategories(ctx, "SELECT category_id, name FROM categories ORDER BY category_id")
}

func (r *PostgresRepository) FindTopCategories(ctx context.Context, limit int) ([]*domain.Category, error) {
	return r.queryCategories(ctx, "SELECT category_id, name FROM categories ORDER BY category_id LIMIT $1", limit)
}

func (r *PostgresRepository) queryCategories(ctx context.Context, query string, args ...interface{}) ([]*domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("select categories", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category := &domain.Category{}
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, storageErr("scan category", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("select categories", err)
	}
	return categories, nil
}

func (r *PostgresRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	category := &domain.Category{}
	err := r.db.QueryRowContext(ctx,
		"SELECT category_id, name FROM categories WHERE name = $1", name).Scan(&category.ID, &category.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("select category", err)
	}
	return category, nil
}

func (r *PostgresRepository) FindOrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx,
		"SELECT order_id, amount, date_created, confirmation_number, customer_id FROM orders WHERE order_id = $1",
		orderID).Scan(&order.ID, &order.Amount, &order.DateCreated, &order.ConfirmationNumber, &order.CustomerID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("select order", err)
	}
	return order, nil
}

func (r *PostgresRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	customer := &domain.Customer{}
	err := r.db.QueryRowContext(ctx,
		"SELECT customer_id, customer_name, address, phone, email, cc_number, cc_exp_date FROM customers WHERE customer_id = $1",
		customerID).Scan(&customer.ID, &customer.Name, &customer.Address, &customer.Phone, &customer.Email, &customer.CCNumber, &customer.CCExpDate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %d: %w", customerID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("select customer", err)
	}
	return customer, nil
}

// FindLineItemsByOrderID returns the items in insertion order.
func (r *PostgresRepository) FindLineItemsByOrderID(ctx context.Context, orderID int64) ([]*domain.LineItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT order_id, book_id, quantity FROM line_items WHERE order_id = $1 ORDER BY line_item_id", orderID)
	if err != nil {
		return nil, storageErr("select line items", err)
	}
	defer rows.Close()

	var items []*domain.LineItem
	for rows.Next() {
		item := &domain.LineItem{}
		if err := rows.Scan(&item.OrderID, &item.BookID, &item.Quantity); err != nil {
			return nil, storageErr("scan line item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("select line items", err)
	}
	return items, nil
}

// WithinTransaction opens one transaction, hands its write surface to
// fn and commits only if fn returns nil. A failed rollback is reported
// as its own storage error so the caller can tell it apart from the
// original cause.
func (r *PostgresRepository) WithinTransaction(ctx context.Context, fn func(tx ports.OrderTxPort) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}

	if err := fn(&orderTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return storageErr("rollback", fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

// orderTx implements ports.OrderTxPort over one *sql.Tx.
type orderTx struct {
	tx *sql.Tx
}

func (t *orderTx) CreateCustomer(ctx context.Context, name, address, phone, email, ccNumber string, ccExpDate time.Time) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx,
		`INSERT INTO customers (customer_name, address, phone, email, cc_number, cc_exp_date)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING customer_id`,
		name, address, phone, email, ccNumber, ccExpDate).Scan(&id)
	if err != nil {
		return 0, storageErr("insert customer", err)
	}
	return id, nil
}

func (t *orderTx) CreateOrder(ctx context.Context, amount int, confirmationNumber, customerID int64) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx,
		`INSERT INTO orders (amount, date_created, confirmation_number, customer_id)
		 VALUES ($1, $2, $3, $4) RETURNING order_id`,
		amount, time.Now(), confirmationNumber, customerID).Scan(&id)
	if err != nil {
		return 0, storageErr("insert order", err)
	}
	return id, nil
}

func (t *orderTx) CreateLineItem(ctx context.Context, orderID, bookID int64, quantity int) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO line_items (order_id, book_id, quantity) VALUES ($1, $2, $3)",
		orderID, bookID, quantity)
	if err != nil {
		return storageErr("insert line item", err)
	}
	return nil
}
