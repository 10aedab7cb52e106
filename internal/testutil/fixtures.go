package testutil

import (
	"testing"
	"time"

	"ledger-service/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func SeedOwner(tb testing.TB, db *gorm.DB, username string) *model.Owner {
	tb.Helper()
	o := &model.Owner{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := db.Create(o).Error; err != nil {
		tb.Fatalf("seed owner: %v", err)
	}
	return o
}

func SeedCustomer(tb testing.TB, db *gorm.DB, ownerID uint, name, email, phone string) *model.Customer {
	tb.Helper()
	c := &model.Customer{Name: name, Email: email, Phone: phone, Address: "1 Main St", OwnerID: ownerID}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed customer: %v", err)
	}
	return c
}

func SeedProduct(tb testing.TB, db *gorm.DB, ownerID uint, name, price string) *model.Product {
	tb.Helper()
	p := &model.Product{Name: name, Price: decimal.RequireFromString(price), OwnerID: ownerID}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

// SeedPurchase writes a purchase row directly, bypassing the pricing rule.
func SeedPurchase(tb testing.TB, db *gorm.DB, customerID, productID uint, qty int, total string, status model.PaymentStatus, purchased, due time.Time) *model.Purchase {
	tb.Helper()
	p := &model.Purchase{
		CustomerID:    customerID,
		ProductID:     productID,
		Quantity:      qty,
		PurchaseDate:  purchased,
		DueDate:       due,
		TotalAmount:   decimal.RequireFromString(total),
		PaymentStatus: status,
	}
	if err := db.Omit("Customer", "Product").Create(p).Error; err != nil {
		tb.Fatalf("seed purchase: %v", err)
	}
	return p
}
