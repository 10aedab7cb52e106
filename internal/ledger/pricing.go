// Package ledger holds the business rules of the shop ledger: purchase pricing,
// dashboard period windows and payment reminder selection. Everything here is
// pure; persistence lives in the service package.
package ledger

import (
	"time"

	"ledger-service/internal/model"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the precision money is stored with.
const CurrencyPlaces = 2

// PurchaseDraft is a purchase as submitted, before pricing.
type PurchaseDraft struct {
	Customer *model.Customer
	Product  *model.Product
	Quantity int
	Status   model.PaymentStatus
}

// PricedPurchase is a draft that passed validation.
type PricedPurchase struct {
	CustomerID  uint
	ProductID   uint
	OwnerID     uint
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
	Status      model.PaymentStatus
}

// PricePurchase validates the draft and computes its total. Checks run in a fixed
// order: product, customer, ownership, quantity, payment status.
func PricePurchase(d PurchaseDraft) (PricedPurchase, error) {
	if d.Product == nil {
		return PricedPurchase{}, invalid("product", ErrMissingProduct)
	}
	if d.Customer == nil {
		return PricedPurchase{}, invalid("customer", ErrMissingCustomer)
	}
	if d.Product.OwnerID != d.Customer.OwnerID {
		return PricedPurchase{}, invalid("product", ErrOwnershipMismatch)
	}
	if d.Quantity <= 0 {
		return PricedPurchase{}, invalid("quantity", ErrInvalidQuantity)
	}
	status := d.Status
	if status == "" {
		status = model.PaymentPending
	}
	if !status.Valid() {
		return PricedPurchase{}, invalid("payment_status", ErrInvalidPaymentStatus)
	}

	total := d.Product.Price.Mul(decimal.NewFromInt(int64(d.Quantity))).Round(CurrencyPlaces)

	return PricedPurchase{
		CustomerID:  d.Customer.ID,
		ProductID:   d.Product.ID,
		OwnerID:     d.Customer.OwnerID,
		Quantity:    d.Quantity,
		UnitPrice:   d.Product.Price,
		TotalAmount: total,
		Status:      status,
	}, nil
}

// ValidatePrice checks a product price before it is stored.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return invalid("price", ErrNegativePrice)
	}
	return nil
}

// Apply copies the priced values onto p. Dates are left alone.
func (pp PricedPurchase) Apply(p *model.Purchase) {
	p.CustomerID = pp.CustomerID
	p.ProductID = pp.ProductID
	p.Quantity = pp.Quantity
	p.TotalAmount = pp.TotalAmount
	p.PaymentStatus = pp.Status
}

// DueDate is the day payment for a purchase made on purchaseDate falls due.
func DueDate(purchaseDate time.Time, termDays int) time.Time {
	return DateOf(purchaseDate).AddDate(0, 0, termDays)
}

// DateOf truncates t to its calendar date, expressed as UTC midnight so that
// date columns compare the same way on every database.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
