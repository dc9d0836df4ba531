// internal/application/order_service.go
package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/bookworks/bookstore/internal/domain"
	"github.com/bookworks/bookstore/internal/ports"
)

const orderDetailsKeyPrefix = "orders:details:"

// OrderService places orders and assembles order detail views. All
// collaborators are fixed at construction.
type OrderService struct {
	catalog   ports.CatalogPort
	repo      ports.OrderRepositoryPort
	cache     ports.CachePort
	publisher ports.EventPublisherPort
}

// NewOrderService wires the service. publisher may be nil when order
// events are disabled.
func NewOrderService(catalog ports.CatalogPort, repo ports.OrderRepositoryPort, cache ports.CachePort, publisher ports.EventPublisherPort) *OrderService {
	return &OrderService{
		catalog:   catalog,
		repo:      repo,
		cache:     cache,
		publisher: publisher,
	}
}

// PlaceOrder validates the form and cart, then persists the customer,
// the order header and one line item per cart item as a single atomic
// transaction. It returns the generated order id; on any failure after
// validation the whole transaction is rolled back and a typed error is
// returned, never a sentinel id.
func (s *OrderService) PlaceOrder(ctx context.Context, form domain.CustomerForm, cart *domain.ShoppingCart) (int64, error) {
	if err := s.validateCustomer(form); err != nil {
		return 0, err
	}
	if err := s.validateCart(ctx, cart); err != nil {
		return 0, err
	}

	ccExpDate := ccExpiryDate(form.CCExpiryMonth, form.CCExpiryYear)
	confirmationNumber := generateConfirmationNumber()

	var orderID int64
	err := s.repo.WithinTransaction(ctx, func(tx ports.OrderTxPort) error {
		customerID, err := tx.CreateCustomer(ctx, form.Name, form.Address, form.Phone, form.Email, form.CCNumber, ccExpDate)
		if err != nil {
			return err
		}
		id, err := tx.CreateOrder(ctx, cart.Total(), confirmationNumber, customerID)
		if err != nil {
			return err
		}
		for _, item := range cart.Items {
			if err := tx.CreateLineItem(ctx, id, item.BookID, item.Quantity); err != nil {
				return err
			}
		}
		orderID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.publisher != nil {
		event := domain.OrderPlacedEvent{
			OrderID:            orderID,
			ConfirmationNumber: confirmationNumber,
			Amount:             cart.Total(),
			CustomerEmail:      form.Email,
			PlacedAt:           time.Now(),
		}
		// A publish failure does not undo a committed order.
		if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
			log.Printf("failed to publish order placed event for order %d: %v", orderID, err)
		}
	}
	return orderID, nil
}

// GetOrderDetails joins the order, its customer, its line items in
// insertion order and the resolved book for each line item. Orders are
// immutable once placed, so the assembled view is cached as-is.
func (s *OrderService) GetOrderDetails(ctx context.Context, orderID int64) (*domain.OrderDetails, error) {
	key := fmt.Sprintf("%s%d", orderDetailsKeyPrefix, orderID)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var details domain.OrderDetails
		if err := json.Unmarshal(data, &details); err == nil {
			return &details, nil
		}
	}

	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	customer, err := s.repo.FindCustomerByID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	lineItems, err := s.repo.FindLineItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	books := make([]*domain.Book, 0, len(lineItems))
	for _, item := range lineItems {
		book, err := s.catalog.FindBookByID(ctx, item.BookID)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	details := &domain.OrderDetails{
		Order:     order,
		Customer:  customer,
		LineItems: lineItems,
		Books:     books,
	}
	if err := s.cache.Set(ctx, key, details); err != nil {
		log.Printf("failed to cache order details for order %d: %v", orderID, err)
	}
	return details, nil
}

// generateConfirmationNumber draws a non-cryptographic reference below
// 10^9. Collisions with existing orders are possible and tolerated.
func generateConfirmationNumber() int64 {
	return rand.Int63n(999999999)
}
