// internal/ports/ports.go
package ports

import (
	"context"
	"time"

	"github.com/bookworks/bookstore/internal/domain"
)

// CatalogPort is the read-only book and category store.
type CatalogPort interface {
	FindBookByID(ctx context.Context, bookID int64) (*domain.Book, error)
	FindBooksByCategoryID(ctx context.Context, categoryID int64) ([]*domain.Book, error)
	FindAllCategories(ctx context.Context) ([]*domain.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	FindTopCategories(ctx context.Context, limit int) ([]*domain.Category, error)
}

// OrderTxPort is the write surface available inside one transactional
// scope. All three inserts commit or roll back together.
type OrderTxPort interface {
	CreateCustomer(ctx context.Context, name, address, phone, email, ccNumber string, ccExpDate time.Time) (int64, error)
	CreateOrder(ctx context.Context, amount int, confirmationNumber, customerID int64) (int64, error)
	CreateLineItem(ctx context.Context, orderID, bookID int64, quantity int) error
}

type OrderRepositoryPort interface {
	// WithinTransaction runs fn inside one atomic scope. A non-nil
	// error from fn rolls every staged write back.
	WithinTransaction(ctx context.Context, fn func(tx OrderTxPort) error) error
	FindOrderByID(ctx context.Context, orderID int64) (*domain.Order, error)
	FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	FindLineItemsByOrderID(ctx context.Context, orderID int64) ([]*domain.LineItem, error)
}

type CachePort interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
}

type EventPublisherPort interface {
	PublishOrderPlaced(ctx context.Context, event domain.OrderPlacedEvent) error
}
