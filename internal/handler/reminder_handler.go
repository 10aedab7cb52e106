package handler

import (
	"net/http"

	"ledger-service/internal/ledger"
	"ledger-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PendingReminder is the JSON view of a reminder that would be sent
type PendingReminder struct {
	CustomerID   uint            `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	AmountDue    decimal.Decimal `json:"amount_due"`
	DueDate      string          `json:"due_date"`
	PurchaseIDs  []uint          `json:"purchase_ids"`
}

type ReminderHandler struct {
	reminders *service.ReminderService
}

func NewReminderHandler(reminders *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

// Pending previews the reminders for the caller's customers without sending them
func (h *ReminderHandler) Pending(c echo.Context) error {
	reminders, err := h.reminders.Pending(c.Request().Context(), ownerID(c))
	if err != nil {
		return respondError(c, err, "")
	}

	out := make([]PendingReminder, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, PendingReminder{
			CustomerID:   r.CustomerID,
			CustomerName: r.CustomerName,
			Email:        r.Email,
			Phone:        r.Phone,
			AmountDue:    r.AmountDue.Round(ledger.CurrencyPlaces),
			DueDate:      r.DueDate.Format("2006-01-02"),
			PurchaseIDs:  r.PurchaseIDs,
		})
	}
	return c.JSON(http.StatusOK, out)
}
