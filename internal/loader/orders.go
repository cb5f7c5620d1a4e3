package loader

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maxerler/invoice-generator/internal/models"
)

// wooDateLayout is the timestamp format of WooCommerce order exports.
const wooDateLayout = "2006-01-02 15:04"

// customerIDMask keeps derived customer ids positive and within 28
// bits, matching the historical id space.
const customerIDMask = 0xfffffff

// ShippingOptions controls the synthetic shipping line appended to
// every order.
type ShippingOptions struct {
	Label        string
	DefaultPrice decimal.Decimal // used when the order carries no shipping total
}

// DefaultShippingOptions returns the shipping defaults.
func DefaultShippingOptions() ShippingOptions {
	return ShippingOptions{Label: "Versand"}
}

// wooOrder mirrors one entry of a WooCommerce order export. Exports
// carry many more fields than these; unknown fields are ignored.
type wooOrder struct {
	OrderNumber string           `json:"order_number"`
	OrderDate   string           `json:"order_date"`
	FirstName   string           `json:"billing_first_name"`
	LastName    string           `json:"billing_last_name"`
	Address     string           `json:"billing_address"`
	PostCode    string           `json:"billing_postcode"`
	City        string           `json:"billing_city"`
	Country     string           `json:"billing_country"`
	Email       string           `json:"billing_email"`
	Phone       string           `json:"billing_phone"`
	CustomerID  *int             `json:"customer_id"`
	Shipping    *decimal.Decimal `json:"order_shipping"`
	Products    []wooProduct     `json:"products"`
}

type wooProduct struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"item_price"`
	Qty   json.Number     `json:"qty"`
}

// LoadOrders reads a WooCommerce order export and returns validated
// orders. Each order gets a derived customer id and a trailing
// shipping line, so the product list handed to the document core is
// never empty.
func LoadOrders(path string, shipping ShippingOptions) ([]models.Order, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read orders file: %w", err)
	}

	var wooOrders []wooOrder
	if err := json.Unmarshal(raw, &wooOrders); err != nil {
		return nil, fmt.Errorf("failed to parse orders file %s: %w", path, err)
	}

	if shipping.Label == "" {
		shipping.Label = DefaultShippingOptions().Label
	}

	orders := make([]models.Order, 0, len(wooOrders))
	for i, wo := range wooOrders {
		order, err := convertOrder(wo, shipping)
		if err != nil {
			return nil, fmt.Errorf("invalid order %d in %s: %w", i, path, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func convertOrder(wo wooOrder, shipping ShippingOptions) (models.Order, error) {
	if wo.OrderNumber == "" {
		return models.Order{}, fmt.Errorf("order_number is required")
	}

	date, err := time.Parse(wooDateLayout, wo.OrderDate)
	if err != nil {
		return models.Order{}, fmt.Errorf("order_date: %w", err)
	}

	customer, err := convertCustomer(wo)
	if err != nil {
		return models.Order{}, err
	}

	products := make([]models.Product, 0, len(wo.Products)+1)
	for i, wp := range wo.Products {
		qty, err := wp.Qty.Int64()
		if err != nil {
			return models.Order{}, fmt.Errorf("product %d: qty: %w", i, err)
		}
		if qty < 0 {
			return models.Order{}, fmt.Errorf("product %d: qty must not be negative", i)
		}
		if wp.Price.IsNegative() {
			return models.Order{}, fmt.Errorf("product %d: item_price must not be negative", i)
		}
		products = append(products, models.Product{
			Name:     wp.Name,
			Price:    wp.Price,
			Quantity: int(qty),
		})
	}

	price := shipping.DefaultPrice
	if wo.Shipping != nil {
		price = *wo.Shipping
	}
	products = append(products, models.Product{
		Name:     shipping.Label,
		Price:    price,
		Quantity: 1,
	})

	return models.Order{
		Number:   wo.OrderNumber,
		Customer: customer,
		Products: products,
		Date:     date,
	}, nil
}

func convertCustomer(wo wooOrder) (models.Customer, error) {
	street, number, err := splitStreet(wo.Address)
	if err != nil {
		return models.Customer{}, err
	}

	customer := models.Customer{
		Party: models.Party{
			FirstName: wo.FirstName,
			LastName:  wo.LastName,
			Address: models.Address{
				Street:       street,
				StreetNumber: number,
				ZipCode:      wo.PostCode,
				Location:     wo.City,
				Country:      wo.Country,
			},
			Contact: models.Contact{
				Email: wo.Email,
				Phone: wo.Phone,
			},
		},
	}

	if wo.FirstName == "" || wo.LastName == "" {
		return models.Customer{}, fmt.Errorf("billing_first_name and billing_last_name are required")
	}
	if wo.Email == "" {
		return models.Customer{}, fmt.Errorf("billing_email is required")
	}

	// an explicit id from the export wins; otherwise derive one that
	// is stable per first+last name pair
	if wo.CustomerID != nil {
		if *wo.CustomerID < 0 {
			return models.Customer{}, fmt.Errorf("customer_id must not be negative")
		}
		customer.ID = *wo.CustomerID
	} else {
		customer.ID = DeriveCustomerID(wo.FirstName, wo.LastName)
	}
	return customer, nil
}

// DeriveCustomerID hashes the customer's full name into a stable,
// non-negative identifier. Distinct names can collide; an explicit
// customer_id in the orders file takes precedence when collisions
// matter.
func DeriveCustomerID(firstName, lastName string) int {
	h := fnv.New32a()
	h.Write([]byte(firstName + lastName))
	return int(h.Sum32() & customerIDMask)
}

// splitStreet separates "Musterstraße 12a" into street and number.
// The last space-separated token is the street number, everything
// before it the street name.
func splitStreet(address string) (street, number string, err error) {
	trimmed := strings.TrimSpace(address)
	idx := strings.LastIndex(trimmed, " ")
	if idx < 0 {
		return "", "", fmt.Errorf("billing_address %q must contain a street and a number", address)
	}
	return trimmed[:idx], trimmed[idx+1:], nil
}
