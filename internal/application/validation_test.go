// internal/application/validation_test.go
package application

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/bookworks/bookstore/internal/domain"
	"github.com/bookworks/bookstore/internal/ports"
)

func validForm() domain.CustomerForm {
	return domain.CustomerForm{
		Name:          "John Doe",
		Address:       "123 Main St",
		Phone:         "(555) 123-4567",
		Email:         "user@example.com",
		CCNumber:      "4111 1111 1111 1111",
		CCExpiryMonth: "12",
		CCExpiryYear:  strconv.Itoa(time.Now().Year()),
	}
}

func TestValidateCustomer(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *domain.CustomerForm)
		errMsg string
	}{
		{
			name:   "valid form",
			mutate: func(f *domain.CustomerForm) {},
		},
		{
			name:   "name too short",
			mutate: func(f *domain.CustomerForm) { f.Name = "abc" },
			errMsg: "Invalid name field",
		},
		{
			name:   "name too long",
			mutate: func(f *domain.CustomerForm) { f.Name = strings.Repeat("x", 46) },
			errMsg: "Invalid name field",
		},
		{
			name:   "name missing",
			mutate: func(f *domain.CustomerForm) { f.Name = "" },
			errMsg: "Invalid name field",
		},
		{
			name:   "address too short",
			mutate: func(f *domain.CustomerForm) { f.Address = "abc" },
			errMsg: "Invalid address field",
		},
		{
			name:   "address too long",
			mutate: func(f *domain.CustomerForm) { f.Address = strings.Repeat("y", 46) },
			errMsg: "Invalid address field",
		},
		{
			name:   "phone missing",
			mutate: func(f *domain.CustomerForm) { f.Phone = "" },
			errMsg: "Invalid phone field",
		},
		{
			name:   "phone too few digits",
			mutate: func(f *domain.CustomerForm) { f.Phone = "555-123" },
			errMsg: "Invalid phone field (digits)",
		},
		{
			name:   "email not an address",
			mutate: func(f *domain.CustomerForm) { f.Email = "not-an-email" },
			errMsg: "Invalid email field",
		},
		{
			name:   "email without tld label",
			mutate: func(f *domain.CustomerForm) { f.Email = "user@example" },
			errMsg: "Invalid email field",
		},
		{
			name:   "email missing",
			mutate: func(f *domain.CustomerForm) { f.Email = "" },
			errMsg: "Invalid email field",
		},
		{
			name:   "credit card missing",
			mutate: func(f *domain.CustomerForm) { f.CCNumber = "" },
			errMsg: "Invalid credit card field",
		},
		{
			name:   "credit card too few digits",
			mutate: func(f *domain.CustomerForm) { f.CCNumber = "123" },
			errMsg: "Invalid credit card field (digits)",
		},
		{
			name: "expiry year in the past",
			mutate: func(f *domain.CustomerForm) {
				f.CCExpiryMonth = "1"
				f.CCExpiryYear = strconv.Itoa(time.Now().Year() - 1)
			},
			errMsg: "Invalid expiry date",
		},
		{
			name:   "expiry month missing",
			mutate: func(f *domain.CustomerForm) { f.CCExpiryMonth = "" },
			errMsg: "Invalid expiry date",
		},
		{
			name:   "expiry month not numeric",
			mutate: func(f *domain.CustomerForm) { f.CCExpiryMonth = "ab" },
			errMsg: "Invalid expiry month or year",
		},
		{
			name: "expiry next year",
			mutate: func(f *domain.CustomerForm) {
				f.CCExpiryMonth = "1"
				f.CCExpiryYear = strconv.Itoa(time.Now().Year() + 1)
			},
		},
	}

	svc := NewOrderService(nil, nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			err := svc.validateCustomer(form)
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("validateCustomer() unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.errMsg {
				t.Errorf("validateCustomer() error = %v, want %v", err, tt.errMsg)
			}
		})
	}
}

func TestValidateCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	book := &domain.Book{ID: 5, Title: "Dune", Author: "Frank Herbert", Price: 1899, CategoryID: 3}

	tests := []struct {
		name      string
		cart      *domain.ShoppingCart
		mockSetup func(catalog *ports.MockCatalogPort)
		errMsg    string
	}{
		{
			name:      "empty cart",
			cart:      &domain.ShoppingCart{},
			mockSetup: func(catalog *ports.MockCatalogPort) {},
			errMsg:    "Cart is empty.",
		},
		{
			name: "quantity above bound",
			cart: &domain.ShoppingCart{Items: []*domain.ShoppingCartItem{
				{BookID: 5, Quantity: 100, Price: 1899, CategoryID: 3},
			}},
			mockSetup: func(catalog *ports.MockCatalogPort) {},
			errMsg:    "Invalid quantity",
		},
		{
			name: "negative quantity",
			cart: &domain.ShoppingCart{Items: []*domain.ShoppingCartItem{
				{BookID: 5, Quantity: -1, Price: 1899, CategoryID: 3},
			}},
			mockSetup: func(catalog *ports.MockCatalogPort) {},
			errMsg:    "Invalid quantity",
		},
		{
			name: "submitted price disagrees with catalog",
			cart: &domain.ShoppingCart{Items: []*domain.ShoppingCartItem{
				{BookID: 5, Quantity: 1, Price: 100, CategoryID: 3},
			}},
			mockSetup: func(catalog *ports.MockCatalogPort) {
				catalog.EXPECT().FindBookByID(gomock.Any(), int64(5)).Return(book, nil)
			},
			errMsg: "Invalid price",
		},
		{
			name: "submitted category disagrees with catalog",
			cart: &domain.ShoppingCart{Items: []*domain.ShoppingCartItem{
				{BookID: 5, Quantity: 1, Price: 1899, CategoryID: 1},
			}},
			mockSetup: func(catalog *ports.MockCatalogPort) {
				catalog.EXPECT().FindBookByID(gomock.Any(), int64(5)).Return(book, nil)
			},
			errMsg: "Invalid category",
		},
		{
			name: "zero quantity is accepted",
			cart: &domain.ShoppingCart{Items: []*domain.ShoppingCartItem{
				{BookID: 5, Quantity: 0, Price: 1899, CategoryID: 3},
			}},
			mockSetup: func(catalog *ports.MockCatalogPort) {
				catalog.EXPECT().FindBookByID(gomock.Any(), int64(5)).Return(book, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCatalog := ports.NewMockCatalogPort(ctrl)
			tt.mockSetup(mockCatalog)
			svc := NewOrderService(mockCatalog, nil, nil, nil)
			err := svc.validateCart(context.Background(), tt.cart)
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("validateCart() unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.errMsg {
				t.Errorf("validateCart() error = %v, want %v", err, tt.errMsg)
			}
		})
	}
}

func TestCCExpiryDate(t *testing.T) {
	got := ccExpiryDate("2", "2025")
	want := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ccExpiryDate(2, 2025) = %v, want %v", got, want)
	}

	got = ccExpiryDate("12", "2024")
	want = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ccExpiryDate(12, 2024) = %v, want %v", got, want)
	}
}
