// internal/domain/cart.go
package domain

// CustomerForm is the raw checkout form as submitted by the client.
// Every field is a string until validation has run.
type CustomerForm struct {
	Name          string
	Address       string
	Phone         string
	Email         string
	CCNumber      string
	CCExpiryMonth string
	CCExpiryYear  string
}

// ShoppingCartItem carries the client-submitted price and category id
// so they can be checked against the catalog for tampering.
type ShoppingCartItem struct {
	BookID     int64
	Quantity   int
	Price      int
	CategoryID int64
}

// ShoppingCart amounts are integer minor currency units, matching
// Order.Amount.
type ShoppingCart struct {
	Items     []*ShoppingCartItem
	Subtotal  int
	Surcharge int
}

// Total is the authoritative order amount.
func (c *ShoppingCart) Total() int {
	return c.Subtotal + c.Surcharge
}
