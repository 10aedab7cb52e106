package model

import (
	"time"
)

// Owner is a shop owner account. Customers and products belong to exactly one owner.
type Owner struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"type:varchar(255)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile holds contact metadata for an owner
type Profile struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OwnerID        uint      `json:"owner_id" gorm:"uniqueIndex;not null"`
	PhoneNumber    *string   `json:"phone_number,omitempty" gorm:"type:varchar(15)"`
	WhatsAppNumber *string   `json:"whatsapp_number,omitempty" gorm:"column:whatsapp_number;type:varchar(15)"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
