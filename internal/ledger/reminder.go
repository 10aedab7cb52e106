package ledger

import (
	"fmt"
	"sort"
	"time"

	"ledger-service/internal/model"

	"github.com/shopspring/decimal"
)

// Reminder is one pending-payment notice, keyed by customer.
type Reminder struct {
	OwnerID      uint
	CustomerID   uint
	CustomerName string
	Email        string
	Phone        string
	AmountDue    decimal.Decimal
	DueDate      time.Time
	PurchaseIDs  []uint
}

// IsOverdue reports whether p is pending and its due date is today or earlier.
func IsOverdue(p *model.Purchase, now time.Time) bool {
	if p.PaymentStatus != model.PaymentPending {
		return false
	}
	return !DateOf(p.DueDate).After(DateOf(now))
}

// CollectReminders groups the overdue purchases by customer. Purchases must have
// Customer loaded; those without are skipped. The amount due is the sum over the
// customer's overdue purchases and the due date is the earliest of them.
func CollectReminders(purchases []model.Purchase, now time.Time) []Reminder {
	byCustomer := make(map[uint]*Reminder)
	for i := range purchases {
		p := &purchases[i]
		if p.Customer == nil || !IsOverdue(p, now) {
			continue
		}
		r, ok := byCustomer[p.CustomerID]
		if !ok {
			r = &Reminder{
				OwnerID:      p.Customer.OwnerID,
				CustomerID:   p.CustomerID,
				CustomerName: p.Customer.Name,
				Email:        p.Customer.Email,
				Phone:        p.Customer.Phone,
				AmountDue:    decimal.Zero,
				DueDate:      DateOf(p.DueDate),
			}
			byCustomer[p.CustomerID] = r
		}
		r.AmountDue = r.AmountDue.Add(p.AmountDue())
		if due := DateOf(p.DueDate); due.Before(r.DueDate) {
			r.DueDate = due
		}
		r.PurchaseIDs = append(r.PurchaseIDs, p.ID)
	}

	out := make([]Reminder, 0, len(byCustomer))
	for _, r := range byCustomer {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}

const reminderSubject = "Reminder: Pending Payment for Your Account"

// FormatReminder renders the subject and plain text body of a reminder.
func FormatReminder(r Reminder) (subject, body string) {
	amount := r.AmountDue.StringFixed(CurrencyPlaces)
	due := r.DueDate.Format("2006-01-02")
	body = fmt.Sprintf(`Dear %s,

We are writing to remind you that you have a pending payment of %s for your recent purchase with EasyLedger.

Payment details:
- Amount Due: %s
- Due Date: %s

Please make sure to complete your payment to avoid any late fees or service disruptions.

If you have any questions, feel free to contact us.

Best regards,
The EasyLedger Team
`, r.CustomerName, amount, amount, due)
	return reminderSubject, body
}
