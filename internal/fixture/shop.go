package fixture

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Storefront documents, as decoded from the storefront API.

// StoreCustomer is the user placing orders.
type StoreCustomer struct {
	ID       int64         `json:"id"`
	Email    string        `json:"email"`
	FullName string        `json:"full_name"`
	Orders   []*StoreOrder `json:"orders"`
}

// StoreOrder is a transaction made by a customer. Amounts are text.
type StoreOrder struct {
	ID        int64            `json:"id"`
	Customer  *StoreCustomer   `json:"customer"`
	Status    string           `json:"status"`
	Total     string           `json:"total"`
	Items     []StoreOrderItem `json:"items"`
	OrderedAt string           `json:"ordered_at"`
}

// StoreOrderItem is a product line within an order.
type StoreOrderItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  string  `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Warehouse records.

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCancelled:
		return true
	default:
		return false
	}
}

var ErrInvalidEmail = errors.New("invalid email")

// Customer owns its orders; they are only added, never assigned.
type Customer struct {
	ID    uint
	Email string

	orders Bag[*Order]
}

// NewCustomer validates the email before building the customer.
func NewCustomer(id uint, email string) (*Customer, error) {
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	return &Customer{ID: id, Email: strings.ToLower(email)}, nil
}

func (c *Customer) Orders() *Bag[*Order] { return &c.orders }

// Order is a stored order. Customer points back at the owner.
type Order struct {
	ID        uint
	Customer  *Customer
	Status    OrderStatus
	Total     decimal.Decimal
	Lines     []OrderLine `map:"items"`
	OrderedAt time.Time
}

// OrderLine snapshots a product at the time of purchase.
type OrderLine struct {
	ProductID uint
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal is the line price.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
