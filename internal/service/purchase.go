package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger-service/internal/ledger"
	"ledger-service/internal/model"
	"ledger-service/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchaseInput describes a new purchase. TotalAmount is deliberately absent.
type PurchaseInput struct {
	ProductID     uint
	Quantity      int
	PaymentStatus model.PaymentStatus
}

// PurchaseUpdate changes an existing purchase; nil fields keep their value
type PurchaseUpdate struct {
	ProductID     *uint
	Quantity      *int
	PaymentStatus *model.PaymentStatus
}

type PurchaseService struct {
	db       *gorm.DB
	log      *zap.Logger
	now      Clock
	termDays int
}

func NewPurchaseService(db *gorm.DB, log *zap.Logger, now Clock, paymentTermDays int) *PurchaseService {
	return &PurchaseService{
		db:       db,
		log:      log.With(zap.String("component", "PurchaseService")),
		now:      now,
		termDays: paymentTermDays,
	}
}

// Create prices and stores a purchase for one of the owner's customers. The
// product is looked up without an owner filter so that a foreign product is
// reported as an ownership mismatch rather than as missing.
func (s *PurchaseService) Create(ctx context.Context, ownerID, customerID uint, in PurchaseInput) (*model.Purchase, error) {
	customer, err := findOwned(ctx, s.db, "customer", customerID, ownerID, customerOwner)
	if err != nil {
		return nil, err
	}
	product, err := s.loadProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	today := ledger.DateOf(s.now())
	purchase := &model.Purchase{
		PurchaseDate: today,
		DueDate:      ledger.DueDate(today, s.termDays),
	}
	draft := ledger.PurchaseDraft{Customer: customer, Product: product, Quantity: in.Quantity, Status: in.PaymentStatus}
	if err := s.save(ctx, purchase, draft); err != nil {
		return nil, err
	}

	prometheus.RecordEntityOperation("purchase", "create")
	requestLog(ctx, s.log, "PurchaseService").Info("Purchase created",
		zap.Uint("owner_id", ownerID),
		zap.Uint("purchase_id", purchase.ID),
		zap.Uint("customer_id", customer.ID),
		zap.Uint("product_id", purchase.ProductID),
		zap.String("total_amount", purchase.TotalAmount.StringFixed(ledger.CurrencyPlaces)))
	return purchase, nil
}

// Get returns one purchase with customer and product loaded
func (s *PurchaseService) Get(ctx context.Context, ownerID, id uint) (*model.Purchase, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var purchase model.Purchase
	err := s.db.WithContext(ctx).Preload("Customer").Preload("Product").First(&purchase, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load purchase %d: %w", id, err)
	}
	if purchase.Customer == nil {
		return nil, ErrNotFound
	}
	if purchase.Customer.OwnerID != ownerID {
		prometheus.RecordOwnershipDenial("purchase")
		return nil, ErrNotOwned
	}
	return &purchase, nil
}

// ListByCustomer returns the purchases of one of the owner's customers
func (s *PurchaseService) ListByCustomer(ctx context.Context, ownerID, customerID uint) ([]model.Purchase, error) {
	customer, err := findOwned(ctx, s.db, "customer", customerID, ownerID, customerOwner)
	if err != nil {
		return nil, err
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	purchases := []model.Purchase{}
	err = s.db.WithContext(ctx).
		Preload("Product").
		Where("customer_id = ?", customer.ID).
		Order("purchase_date DESC, id DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, fmt.Errorf("list purchases of customer %d: %w", customerID, err)
	}
	return purchases, nil
}

// Update re-validates and re-prices the purchase with the requested changes.
// The purchase and due dates never change.
func (s *PurchaseService) Update(ctx context.Context, ownerID, id uint, in PurchaseUpdate) (*model.Purchase, error) {
	purchase, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	draft := ledger.PurchaseDraft{
		Customer: purchase.Customer,
		Product:  purchase.Product,
		Quantity: purchase.Quantity,
		Status:   purchase.PaymentStatus,
	}
	if in.ProductID != nil {
		if draft.Product, err = s.loadProduct(ctx, *in.ProductID); err != nil {
			return nil, err
		}
	}
	if in.Quantity != nil {
		draft.Quantity = *in.Quantity
	}
	if in.PaymentStatus != nil {
		draft.Status = *in.PaymentStatus
	}

	if err := s.save(ctx, purchase, draft); err != nil {
		return nil, err
	}

	prometheus.RecordEntityOperation("purchase", "update")
	return purchase, nil
}

// SetPaymentStatus marks a purchase paid or pending
func (s *PurchaseService) SetPaymentStatus(ctx context.Context, ownerID, id uint, status model.PaymentStatus) (*model.Purchase, error) {
	return s.Update(ctx, ownerID, id, PurchaseUpdate{PaymentStatus: &status})
}

// Delete removes a purchase of one of the owner's customers
func (s *PurchaseService) Delete(ctx context.Context, ownerID, id uint) error {
	purchase, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := s.db.WithContext(ctx).Delete(&model.Purchase{}, purchase.ID).Error; err != nil {
		return fmt.Errorf("delete purchase %d: %w", id, err)
	}

	prometheus.RecordEntityOperation("purchase", "delete")
	return nil
}

// save is the only write path for purchases: the draft is priced first and the
// stored total is always the freshly computed one.
func (s *PurchaseService) save(ctx context.Context, purchase *model.Purchase, draft ledger.PurchaseDraft) error {
	priced, err := ledger.PricePurchase(draft)
	if err != nil {
		recordValidationFailure(err)
		requestLog(ctx, s.log, "PurchaseService").Info("Purchase rejected", zap.Uint("purchase_id", purchase.ID), zap.Error(err))
		return err
	}
	priced.Apply(purchase)

	defer prometheus.TrackDBOperation("upsert")(time.Now())
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(purchase).Error; err != nil {
		return fmt.Errorf("save purchase: %w", err)
	}
	purchase.Customer = draft.Customer
	purchase.Product = draft.Product
	return nil
}

// loadProduct returns nil for an unknown or zero id so the pricing rule reports
// the missing product.
func (s *PurchaseService) loadProduct(ctx context.Context, id uint) (*model.Product, error) {
	if id == 0 {
		return nil, nil
	}
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}
	return &product, nil
}
