// internal/domain/models.go
package domain

import "time"

type Category struct {
	ID   int64  `json:"categoryId"`
	Name string `json:"name"`
}

type Book struct {
	ID         int64  `json:"bookId"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Price      int    `json:"price"`
	Rating     int    `json:"rating"`
	IsPublic   bool   `json:"isPublic"`
	CategoryID int64  `json:"categoryId"`
}

type Customer struct {
	ID        int64     `json:"customerId"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CCNumber  string    `json:"ccNumber"`
	CCExpDate time.Time `json:"ccExpDate"`
}

type Order struct {
	ID          int64     `json:"orderId"`
	Amount      int       `json:"amount"`
	DateCreated time.Time `json:"dateCreated"`
	// ConfirmationNumber is a random customer-facing reference.
	// It is not checked for uniqueness against existing orders.
	ConfirmationNumber int64 `json:"confirmationNumber"`
	CustomerID         int64 `json:"customerId"`
}

type LineItem struct {
	OrderID  int64 `json:"orderId"`
	BookID   int64 `json:"bookId"`
	Quantity int   `json:"quantity"`
}

// OrderDetails is the composite read view of one order. Books is
// aligned index-for-index with LineItems.
type OrderDetails struct {
	Order     *Order      `json:"order"`
	Customer  *Customer   `json:"customer"`
	LineItems []*LineItem `json:"lineItems"`
	Books     []*Book     `json:"books"`
}

type OrderPlacedEvent struct {
	OrderID            int64     `json:"orderId"`
	ConfirmationNumber int64     `json:"confirmationNumber"`
	Amount             int       `json:"amount"`
	CustomerEmail      string    `json:"customerEmail"`
	PlacedAt           time.Time `json:"placedAt"`
}
