package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger-service/internal/ledger"
	"ledger-service/internal/model"
	"ledger-service/internal/notify"
	"ledger-service/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Report summarizes one pending payment check
type Report struct {
	Selected int `json:"selected"`
	Sent     int `json:"sent"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

type ReminderService struct {
	db           *gorm.DB
	log          *zap.Logger
	now          Clock
	notifiers    []notify.Notifier
	failSilently bool
}

// NewReminderService wires the delivery channels. With failSilently set,
// delivery errors are logged and counted but not returned.
func NewReminderService(db *gorm.DB, log *zap.Logger, now Clock, notifiers []notify.Notifier, failSilently bool) *ReminderService {
	return &ReminderService{
		db:           db,
		log:          log.With(zap.String("component", "ReminderService")),
		now:          now,
		notifiers:    notifiers,
		failSilently: failSilently,
	}
}

// Pending lists the reminders that would go to the owner's customers right now
func (s *ReminderService) Pending(ctx context.Context, ownerID uint) ([]ledger.Reminder, error) {
	ownedCustomers := s.db.WithContext(ctx).Model(&model.Customer{}).Select("id").Where("owner_id = ?", ownerID)
	return s.collect(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("customer_id IN (?)", ownedCustomers)
	})
}

// CheckPendingPayments derives the overdue set from scratch and sends one
// reminder per customer over every configured channel. It keeps going after a
// failed delivery; the failures are returned joined.
func (s *ReminderService) CheckPendingPayments(ctx context.Context) (Report, error) {
	var report Report

	reminders, err := s.collect(ctx, nil)
	if err != nil {
		prometheus.RecordReminderRun(err)
		return report, err
	}
	report.Selected = len(reminders)

	senders, err := s.whatsAppSenders(ctx, reminders)
	if err != nil {
		prometheus.RecordReminderRun(err)
		return report, err
	}

	var errs []error
	for _, r := range reminders {
		subject, body := ledger.FormatReminder(r)
		for _, n := range s.notifiers {
			msg := notify.Message{Subject: subject, Body: body}
			switch n.Channel() {
			case notify.ChannelEmail:
				msg.To = r.Email
			case notify.ChannelWhatsApp:
				msg.To = r.Phone
				msg.From = senders[r.OwnerID]
			}
			if msg.To == "" {
				report.Skipped++
				requestLog(ctx, s.log, "ReminderService").Debug("Customer has no address for channel",
					zap.Uint("customer_id", r.CustomerID),
					zap.String("channel", string(n.Channel())))
				continue
			}

			err := n.Send(ctx, msg)
			prometheus.RecordReminder(string(n.Channel()), err)
			if err != nil {
				report.Failed++
				errs = append(errs, err)
				requestLog(ctx, s.log, "ReminderService").Error("Payment reminder delivery failed",
					zap.Uint("customer_id", r.CustomerID),
					zap.String("channel", string(n.Channel())),
					zap.Error(err))
				continue
			}
			report.Sent++
		}
	}

	deliveryErr := errors.Join(errs...)
	prometheus.RecordReminderRun(deliveryErr)
	requestLog(ctx, s.log, "ReminderService").Info("Pending payment check finished",
		zap.Int("selected", report.Selected),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped))

	if s.failSilently {
		return report, nil
	}
	return report, deliveryErr
}

func (s *ReminderService) collect(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]ledger.Reminder, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	now := s.now()
	q := s.db.WithContext(ctx).
		Preload("Customer").
		Where("payment_status = ? AND due_date <= ?", model.PaymentPending, ledger.DateOf(now))
	if scope != nil {
		q = scope(q)
	}

	var purchases []model.Purchase
	if err := q.Order("id").Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("load pending purchases: %w", err)
	}
	return ledger.CollectReminders(purchases, now), nil
}

// whatsAppSenders maps owner id to the WhatsApp number reminders are sent from
func (s *ReminderService) whatsAppSenders(ctx context.Context, reminders []ledger.Reminder) (map[uint]string, error) {
	senders := make(map[uint]string)
	if len(reminders) == 0 {
		return senders, nil
	}
	ownerIDs := make([]uint, 0, len(reminders))
	for _, r := range reminders {
		ownerIDs = append(ownerIDs, r.OwnerID)
	}

	var profiles []model.Profile
	if err := s.db.WithContext(ctx).Where("owner_id IN ?", ownerIDs).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("load owner profiles: %w", err)
	}
	for _, p := range profiles {
		if p.WhatsAppNumber != nil {
			senders[p.OwnerID] = *p.WhatsAppNumber
		}
	}
	return senders, nil
}
