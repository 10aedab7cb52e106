package service

import (
	"context"
	"fmt"
	"time"

	"ledger-service/internal/model"
	"ledger-service/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CustomerInput carries the editable customer fields
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CustomerDetail is a customer with its purchase history
type CustomerDetail struct {
	Customer  *model.Customer  `json:"customer"`
	Purchases []model.Purchase `json:"purchases"`
}

type CustomerService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCustomerService(db *gorm.DB, log *zap.Logger) *CustomerService {
	return &CustomerService{db: db, log: log.With(zap.String("component", "CustomerService"))}
}

func customerOwner(c *model.Customer) uint { return c.OwnerID }

// List returns the owner's customers ordered by name
func (s *CustomerService) List(ctx context.Context, ownerID uint) ([]model.Customer, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	customers := []model.Customer{}
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name, id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// Get returns one of the owner's customers
func (s *CustomerService) Get(ctx context.Context, ownerID, id uint) (*model.Customer, error) {
	return findOwned(ctx, s.db, "customer", id, ownerID, customerOwner)
}

// Detail returns a customer together with its purchases, newest first
func (s *CustomerService) Detail(ctx context.Context, ownerID, id uint) (*CustomerDetail, error) {
	customer, err := s.Get(ctx, ownerID, id)
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
		return nil, fmt.Errorf("list purchases of customer %d: %w", id, err)
	}
	return &CustomerDetail{Customer: customer, Purchases: purchases}, nil
}

// Create stores a new customer for the owner
func (s *CustomerService) Create(ctx context.Context, ownerID uint, in CustomerInput) (*model.Customer, error) {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	customer := model.Customer{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		OwnerID: ownerID,
	}
	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	prometheus.RecordEntityOperation("customer", "create")
	requestLog(ctx, s.log, "CustomerService").Info("Customer created", zap.Uint("owner_id", ownerID), zap.Uint("customer_id", customer.ID))
	return &customer, nil
}

// Update overwrites the editable fields of one of the owner's customers
func (s *CustomerService) Update(ctx context.Context, ownerID, id uint, in CustomerInput) (*model.Customer, error) {
	customer, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	customer.Name = in.Name
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.Address = in.Address
	if err := s.db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, fmt.Errorf("update customer %d: %w", id, err)
	}

	prometheus.RecordEntityOperation("customer", "update")
	return customer, nil
}

// Delete removes the customer and its purchases
func (s *CustomerService) Delete(ctx context.Context, ownerID, id uint) error {
	customer, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", customer.ID).Delete(&model.Purchase{}).Error; err != nil {
			return err
		}
		return tx.Delete(customer).Error
	})
	if err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}

	prometheus.RecordEntityOperation("customer", "delete")
	requestLog(ctx, s.log, "CustomerService").Info("Customer deleted", zap.Uint("owner_id", ownerID), zap.Uint("customer_id", id))
	return nil
}
