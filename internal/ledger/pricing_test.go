package ledger

import (
	"errors"
	"testing"
	"time"

	"ledger-service/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPricePurchase(t *testing.T) {
	c1 := &model.Customer{ID: 1, OwnerID: 100}
	c2 := &model.Customer{ID: 2, OwnerID: 200}
	p1 := &model.Product{ID: 10, OwnerID: 100, Price: money("10.00")}
	p2 := &model.Product{ID: 20, OwnerID: 200, Price: money("5.00")}

	t.Run("Consistent owners", func(t *testing.T) {
		priced, err := PricePurchase(PurchaseDraft{Customer: c1, Product: p1, Quantity: 3})
		require.NoError(t, err)
		assert.True(t, priced.TotalAmount.Equal(money("30.00")), "got %s", priced.TotalAmount)
		assert.Equal(t, model.PaymentPending, priced.Status)
		assert.Equal(t, uint(100), priced.OwnerID)
	})

	t.Run("Foreign product", func(t *testing.T) {
		_, err := PricePurchase(PurchaseDraft{Customer: c1, Product: p2, Quantity: 3})
		require.ErrorIs(t, err, ErrOwnershipMismatch)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "ownership_mismatch", verr.Code())
	})

	t.Run("Other owner's pair is fine", func(t *testing.T) {
		priced, err := PricePurchase(PurchaseDraft{Customer: c2, Product: p2, Quantity: 1, Status: model.PaymentPaid})
		require.NoError(t, err)
		assert.True(t, priced.TotalAmount.Equal(money("5.00")))
		assert.Equal(t, model.PaymentPaid, priced.Status)
	})

	t.Run("Missing product", func(t *testing.T) {
		_, err := PricePurchase(PurchaseDraft{Customer: c1, Quantity: 1})
		assert.ErrorIs(t, err, ErrMissingProduct)
	})

	t.Run("Missing customer", func(t *testing.T) {
		_, err := PricePurchase(PurchaseDraft{Product: p1, Quantity: 1})
		assert.ErrorIs(t, err, ErrMissingCustomer)
	})

	t.Run("Non positive quantity", func(t *testing.T) {
		for _, q := range []int{0, -1, -50} {
			_, err := PricePurchase(PurchaseDraft{Customer: c1, Product: p1, Quantity: q})
			assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", q)
		}
	})

	t.Run("Mismatch reported before quantity", func(t *testing.T) {
		_, err := PricePurchase(PurchaseDraft{Customer: c1, Product: p2, Quantity: 0})
		assert.ErrorIs(t, err, ErrOwnershipMismatch)
	})

	t.Run("Unknown status", func(t *testing.T) {
		_, err := PricePurchase(PurchaseDraft{Customer: c1, Product: p1, Quantity: 1, Status: "overdue"})
		assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
	})
}

func TestPricePurchaseIsExact(t *testing.T) {
	c := &model.Customer{ID: 1, OwnerID: 1}
	prices := []string{"0.00", "0.01", "0.10", "19.99", "33.33", "99999.99"}
	for _, price := range prices {
		for q := 1; q <= 25; q++ {
			p := &model.Product{ID: 1, OwnerID: 1, Price: money(price)}
			priced, err := PricePurchase(PurchaseDraft{Customer: c, Product: p, Quantity: q})
			require.NoError(t, err)

			want := money(price).Mul(decimal.NewFromInt(int64(q)))
			assert.True(t, priced.TotalAmount.Equal(want), "%s x %d = %s", price, q, priced.TotalAmount)
		}
	}
}

func TestRepricingIsIdempotent(t *testing.T) {
	c := &model.Customer{ID: 1, OwnerID: 1}
	p := &model.Product{ID: 2, OwnerID: 1, Price: money("0.10")}
	purchase := model.Purchase{Quantity: 3}

	for i := 0; i < 5; i++ {
		priced, err := PricePurchase(PurchaseDraft{Customer: c, Product: p, Quantity: purchase.Quantity, Status: purchase.PaymentStatus})
		require.NoError(t, err)
		priced.Apply(&purchase)
		assert.True(t, purchase.TotalAmount.Equal(money("0.30")), "round %d: %s", i, purchase.TotalAmount)
	}
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(money("0")))
	assert.NoError(t, ValidatePrice(money("12.34")))
	assert.ErrorIs(t, ValidatePrice(money("-0.01")), ErrNegativePrice)
}

func TestDueDate(t *testing.T) {
	bought := time.Date(2024, time.January, 20, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 19, 0, 0, 0, 0, time.UTC), DueDate(bought, 30))
	assert.Equal(t, time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC), DueDate(bought, 0))
}
