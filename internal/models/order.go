package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UndefinedCustomerID marks a customer whose identifier has not been
// derived yet.
const UndefinedCustomerID = 0

// Customer represents a buying party with a stable numeric identifier.
// The identifier is derived by the orders loader, not by the document
// core.
type Customer struct {
	Party
	ID int `json:"customerId"`
}

// Product represents one invoice line item. The shipping line is a
// regular product appended by the orders loader with quantity 1.
type Product struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// LineTotal returns Price multiplied by Quantity.
func (p Product) LineTotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Order represents one customer order. Products keep their insertion
// order, with the shipping line last.
type Order struct {
	Number   string    `json:"orderNumber"`
	Customer Customer  `json:"customer"`
	Products []Product `json:"products"`
	Date     time.Time `json:"orderDate"`
}

// Total returns the sum of all line totals including shipping.
func (o Order) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range o.Products {
		sum = sum.Add(p.LineTotal())
	}
	return sum
}
