// internal/application/validation.go
package application

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/bookworks/bookstore/internal/domain"
)

var (
	emailPattern    = regexp.MustCompile(`^(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,6}$`)
	nonDigitPattern = regexp.MustCompile(`\D`)
	ccStripPattern  = regexp.MustCompile(`[-\s]`)
)

func invalidParameter(message string) error {
	return &domain.InvalidParameterError{Message: message}
}

// validateCustomer checks the checkout form against the business rules.
// It performs no writes and touches no store.
func (s *OrderService) validateCustomer(form domain.CustomerForm) error {
	if len(form.Name) < 4 || len(form.Name) > 45 {
		return invalidParameter("Invalid name field")
	}

	if len(form.Address) < 4 || len(form.Address) > 45 {
		return invalidParameter("Invalid address field")
	}

	if form.Phone == "" {
		return invalidParameter("Invalid phone field")
	}
	digits := nonDigitPattern.ReplaceAllString(form.Phone, "")
	if len(digits) != 10 {
		return invalidParameter("Invalid phone field (digits)")
	}

	if form.Email == "" || !emailPattern.MatchString(form.Email) {
		return invalidParameter("Invalid email field")
	}

	if form.CCNumber == "" {
		return invalidParameter("Invalid credit card field")
	}
	ccDigits := ccStripPattern.ReplaceAllString(form.CCNumber, "")
	if len(ccDigits) < 14 || len(ccDigits) > 16 {
		return invalidParameter("Invalid credit card field (digits)")
	}

	return s.validateExpiry(form.CCExpiryMonth, form.CCExpiryYear)
}

// validateExpiry rejects cards whose month/year is strictly in the past.
// A missing or non-numeric value is its own validation failure, not a
// parse error.
func (s *OrderService) validateExpiry(monthStr, yearStr string) error {
	if monthStr == "" || yearStr == "" {
		return invalidParameter("Invalid expiry date")
	}
	month, errM := strconv.Atoi(monthStr)
	year, errY := strconv.Atoi(yearStr)
	if errM != nil || errY != nil {
		log.Printf("problem attempting to parse expiry month %q year %q", monthStr, yearStr)
		return invalidParameter("Invalid expiry month or year")
	}
	now := time.Now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return invalidParameter("Invalid expiry date")
	}
	return nil
}

// validateCart cross-checks every submitted item against the catalog.
// A submitted price or category id that disagrees with the stored book
// is treated as tampering and rejected.
func (s *OrderService) validateCart(ctx context.Context, cart *domain.ShoppingCart) error {
	if len(cart.Items) == 0 {
		return invalidParameter("Cart is empty.")
	}

	for _, item := range cart.Items {
		// Quantity 0 is accepted here; the original bound is kept.
		if item.Quantity < 0 || item.Quantity > 99 {
			return invalidParameter("Invalid quantity")
		}
		book, err := s.catalog.FindBookByID(ctx, item.BookID)
		if err != nil {
			return err
		}
		if item.Price != book.Price {
			return invalidParameter("Invalid price")
		}
		if item.CategoryID != book.CategoryID {
			return invalidParameter("Invalid category")
		}
	}
	return nil
}

// ccExpiryDate converts the validated month/year into the last day of
// that month, e.g. month=2 year=2025 -> 2025-02-28.
func ccExpiryDate(monthStr, yearStr string) time.Time {
	month, _ := strconv.Atoi(monthStr)
	year, _ := strconv.Atoi(yearStr)
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}
