package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentStatus(t *testing.T) {
	s, err := ParsePaymentStatus("")
	require.NoError(t, err)
	assert.Equal(t, PaymentPending, s)

	s, err = ParsePaymentStatus(" PAID ")
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, s)

	_, err = ParsePaymentStatus("overdue")
	assert.Error(t, err)
}

func TestAmountDue(t *testing.T) {
	p := Purchase{TotalAmount: decimal.RequireFromString("12.50"), PaymentStatus: PaymentPending}
	assert.True(t, p.AmountDue().Equal(decimal.RequireFromString("12.50")))

	p.PaymentStatus = PaymentPaid
	assert.True(t, p.AmountDue().IsZero())
}
