package model

import (
	"fmt"
	"strings"
)

// PaymentStatus is the payment state of a purchase
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Valid reports whether s is a known payment state
func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid
}

// IsPaid reports whether nothing is owed
func (s PaymentStatus) IsPaid() bool {
	return s == PaymentPaid
}

// ParsePaymentStatus accepts "paid"/"pending" in any case; empty means pending.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	s := PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return PaymentPending, nil
	}
	if !s.Valid() {
		return "", fmt.Errorf("unknown payment status %q", raw)
	}
	return s, nil
}
