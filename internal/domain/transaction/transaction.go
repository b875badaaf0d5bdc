package transaction

import (
	"strings"
	"time"
)

// Transaction is a validated, deduplicated, type-converted transaction.
// Immutable after creation; Total is always derived from Quantity and Price.
type Transaction struct {
	ID            uint
	ExternalID    *string
	Date          time.Time
	CustomerID    string
	Product       string
	Category      *string
	Quantity      float64
	Price         float64
	Total         float64
	PaymentMethod *string
	City          *string
	RawID         *uint
	CreatedAt     time.Time
}

// NaturalKey is the composite dedup key used when no external id is present.
type NaturalKey struct {
	Date       time.Time
	CustomerID string
	Product    string
	Quantity   float64
	Price      float64
}

// Key returns the transaction's composite dedup key.
func (t *Transaction) Key() NaturalKey {
	return NaturalKey{
		Date:       t.Date,
		CustomerID: t.CustomerID,
		Product:    t.Product,
		Quantity:   t.Quantity,
		Price:      t.Price,
	}
}

// NewFromRaw converts a raw row into a canonical transaction, applying the
// cleaning rules in order and stopping at the first failure. Negative parsed
// quantity and price are clamped to zero, not rejected.
func NewFromRaw(raw *RawTransaction) (*Transaction, error) {
	txn := &Transaction{}

	if raw.ExternalID != nil {
		if trimmed := strings.TrimSpace(*raw.ExternalID); trimmed != "" {
			txn.ExternalID = &trimmed
		}
	}

	date, err := ParseDate(raw.Date)
	if err != nil {
		return nil, NewValidationError("transaction_date", err.Error())
	}
	txn.Date = date

	customerID := strings.TrimSpace(raw.CustomerID)
	if customerID == "" {
		return nil, NewValidationError("customer_id", "empty")
	}
	txn.CustomerID = customerID

	product := strings.TrimSpace(raw.Product)
	if product == "" {
		return nil, NewValidationError("product", "empty")
	}
	txn.Product = product

	txn.Category = trimOptional(raw.Category)

	if raw.Quantity == nil {
		return nil, NewValidationError("quantity", "missing")
	}
	quantity, err := ParseAmount(*raw.Quantity)
	if err != nil {
		return nil, NewValidationError("quantity", err.Error())
	}
	if quantity < 0 {
		quantity = 0
	}
	txn.Quantity = quantity

	if raw.Price == nil {
		return nil, NewValidationError("price", "missing")
	}
	price, err := ParseAmount(*raw.Price)
	if err != nil {
		return nil, NewValidationError("price", err.Error())
	}
	if price < 0 {
		price = 0
	}
	txn.Price = price

	txn.Total = txn.Quantity * txn.Price

	txn.PaymentMethod = trimOptional(raw.PaymentMethod)
	txn.City = trimOptional(raw.City)

	if raw.ID != 0 {
		rawID := raw.ID
		txn.RawID = &rawID
	}

	return txn, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
