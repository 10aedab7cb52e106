package service

import (
	"context"
	"fmt"
	"time"

	"ledger-service/internal/ledger"
	"ledger-service/internal/model"
	"ledger-service/prometheus"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Summary is the dashboard view of one period
type Summary struct {
	Period        ledger.Period    `json:"period"`
	CustomerCount int64            `json:"customer_count"`
	TotalSales    decimal.Decimal  `json:"total_sales"`
	PaidCount     int64            `json:"paid_count"`
	UnpaidCount   int64            `json:"unpaid_count"`
	Sales         []model.Purchase `json:"sales"`
}

type salesTotals struct {
	TotalSales decimal.Decimal
}

type DashboardService struct {
	db  *gorm.DB
	log *zap.Logger
	now Clock
}

func NewDashboardService(db *gorm.DB, log *zap.Logger, now Clock) *DashboardService {
	return &DashboardService{db: db, log: log.With(zap.String("component", "DashboardService")), now: now}
}

// Summary aggregates the owner's sales for the period. An unrecognized period
// yields zero totals and no sales; the customer count is always reported.
func (s *DashboardService) Summary(ctx context.Context, ownerID uint, period ledger.Period) (*Summary, error) {
	defer prometheus.TrackDBOperation("aggregate")(time.Now())

	summary := &Summary{
		Period:     period,
		TotalSales: decimal.Zero,
		Sales:      []model.Purchase{},
	}

	db := s.db.WithContext(ctx)
	if err := db.Model(&model.Customer{}).Where("owner_id = ?", ownerID).Count(&summary.CustomerCount).Error; err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	window, ok := period.Window(s.now())
	if !ok {
		requestLog(ctx, s.log, "DashboardService").Debug("Unrecognized dashboard period", zap.String("period", string(period)))
		return summary, nil
	}

	// owner scope goes through the product, as a purchase has no owner column
	inWindow := func() *gorm.DB {
		ownedProducts := db.Model(&model.Product{}).Select("id").Where("owner_id = ?", ownerID)
		return db.Model(&model.Purchase{}).
			Where("product_id IN (?)", ownedProducts).
			Where("purchase_date >= ? AND purchase_date < ?", window.Start, window.End)
	}

	var totals salesTotals
	if err := inWindow().Select("COALESCE(SUM(total_amount), 0) AS total_sales").Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("sum sales: %w", err)
	}
	summary.TotalSales = totals.TotalSales.Round(ledger.CurrencyPlaces)

	if err := inWindow().Where("payment_status = ?", model.PaymentPaid).Count(&summary.PaidCount).Error; err != nil {
		return nil, fmt.Errorf("count paid sales: %w", err)
	}
	if err := inWindow().Where("payment_status = ?", model.PaymentPending).Count(&summary.UnpaidCount).Error; err != nil {
		return nil, fmt.Errorf("count unpaid sales: %w", err)
	}

	err := inWindow().
		Preload("Customer").
		Preload("Product").
		Order("purchase_date DESC, id DESC").
		Find(&summary.Sales).Error
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	return summary, nil
}
