package model

import (
	"time"
)

// Customer is a buyer recorded by an owner
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email" gorm:"type:varchar(254)"`
	Phone     string    `json:"phone" gorm:"type:varchar(15)"`
	Address   string    `json:"address" gorm:"type:text"`
	OwnerID   uint      `json:"owner_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
