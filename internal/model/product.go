package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is an item an owner sells
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Description *string         `json:"description,omitempty" gorm:"type:text"`
	OwnerID     uint            `json:"owner_id" gorm:"index;not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
