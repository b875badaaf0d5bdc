package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validRaw() *RawTransaction {
	return &RawTransaction{
		ID:         7,
		ExternalID: strPtr("T100"),
		Date:       "2024-01-05",
		CustomerID: "C1",
		Product:    "Widget",
		Quantity:   strPtr("2"),
		Price:      strPtr("100"),
	}
}

func TestNewFromRaw_Valid(t *testing.T) {
	raw := validRaw()
	raw.Category = strPtr(" Gadgets ")
	raw.PaymentMethod = strPtr("card")
	raw.City = strPtr("Berlin")

	txn, err := NewFromRaw(raw)
	require.NoError(t, err)

	assert.Equal(t, "T100", *txn.ExternalID)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), txn.Date)
	assert.Equal(t, "C1", txn.CustomerID)
	assert.Equal(t, "Widget", txn.Product)
	assert.Equal(t, "Gadgets", *txn.Category)
	assert.Equal(t, 2.0, txn.Quantity)
	assert.Equal(t, 100.0, txn.Price)
	assert.Equal(t, 200.0, txn.Total)
	assert.Equal(t, "card", *txn.PaymentMethod)
	assert.Equal(t, "Berlin", *txn.City)
	require.NotNil(t, txn.RawID)
	assert.Equal(t, uint(7), *txn.RawID)
}

func TestNewFromRaw_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*RawTransaction)
		wantField string
	}{
		{
			name:      "empty date",
			mutate:    func(r *RawTransaction) { r.Date = "" },
			wantField: "transaction_date",
		},
		{
			name:      "sentinel date",
			mutate:    func(r *RawTransaction) { r.Date = "invalid_date" },
			wantField: "transaction_date",
		},
		{
			name:      "unparseable date",
			mutate:    func(r *RawTransaction) { r.Date = "January 5th" },
			wantField: "transaction_date",
		},
		{
			name:      "blank customer",
			mutate:    func(r *RawTransaction) { r.CustomerID = "   " },
			wantField: "customer_id",
		},
		{
			name:      "blank product",
			mutate:    func(r *RawTransaction) { r.Product = "" },
			wantField: "product",
		},
		{
			name:      "missing quantity",
			mutate:    func(r *RawTransaction) { r.Quantity = nil },
			wantField: "quantity",
		},
		{
			name:      "sentinel quantity",
			mutate:    func(r *RawTransaction) { r.Quantity = strPtr("null") },
			wantField: "quantity",
		},
		{
			name:      "unparseable quantity",
			mutate:    func(r *RawTransaction) { r.Quantity = strPtr("two") },
			wantField: "quantity",
		},
		{
			name:      "missing price",
			mutate:    func(r *RawTransaction) { r.Price = nil },
			wantField: "price",
		},
		{
			name:      "unparseable price",
			mutate:    func(r *RawTransaction) { r.Price = strPtr("free") },
			wantField: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(raw)

			_, err := NewFromRaw(raw)
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestNewFromRaw_NegativeClampedToZero(t *testing.T) {
	raw := validRaw()
	raw.Quantity = strPtr("-3")
	raw.Price = strPtr("-10.50")

	txn, err := NewFromRaw(raw)
	require.NoError(t, err)

	assert.Equal(t, 0.0, txn.Quantity)
	assert.Equal(t, 0.0, txn.Price)
	assert.Equal(t, 0.0, txn.Total)
}

func TestNewFromRaw_CurrencyFormatting(t *testing.T) {
	raw := validRaw()
	raw.Price = strPtr("$1,200.50")

	txn, err := NewFromRaw(raw)
	require.NoError(t, err)
	assert.Equal(t, 1200.50, txn.Price)
	assert.Equal(t, 2401.0, txn.Total)
}

func TestNewFromRaw_OptionalFields(t *testing.T) {
	raw := validRaw()
	raw.ExternalID = strPtr("   ")
	raw.Category = nil
	raw.PaymentMethod = strPtr("  ")

	txn, err := NewFromRaw(raw)
	require.NoError(t, err)

	assert.Nil(t, txn.ExternalID, "whitespace-only external id becomes nil")
	assert.Nil(t, txn.Category)
	assert.Nil(t, txn.PaymentMethod)
	assert.Nil(t, txn.City)
}

func TestHasRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		raw  RawTransaction
		want bool
	}{
		{name: "all present", raw: RawTransaction{Date: "2024-01-01", CustomerID: "C1", Product: "P"}, want: true},
		{name: "missing date", raw: RawTransaction{CustomerID: "C1", Product: "P"}, want: false},
		{name: "missing customer", raw: RawTransaction{Date: "2024-01-01", Product: "P"}, want: false},
		{name: "missing product", raw: RawTransaction{Date: "2024-01-01", CustomerID: "C1"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.raw.HasRequiredFields())
		})
	}
}
