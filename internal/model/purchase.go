package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase links one customer and one product. TotalAmount and DueDate are derived
// and only ever written by the ledger pricing rule.
type Purchase struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	CustomerID    uint            `json:"customer_id" gorm:"index;not null"`
	Customer      *Customer       `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	ProductID     uint            `json:"product_id" gorm:"index;not null"`
	Product       *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity      int             `json:"quantity" gorm:"not null"`
	PurchaseDate  time.Time       `json:"purchase_date" gorm:"type:date;index;not null"`
	DueDate       time.Time       `json:"due_date" gorm:"type:date;index;not null"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	PaymentStatus PaymentStatus   `json:"payment_status" gorm:"type:varchar(16);index;not null;default:'pending'"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AmountDue is the money still owed on the purchase
func (p *Purchase) AmountDue() decimal.Decimal {
	if p.PaymentStatus.IsPaid() {
		return decimal.Zero
	}
	return p.TotalAmount
}

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{&Owner{}, &Profile{}, &Customer{}, &Product{}, &Purchase{}}
}
