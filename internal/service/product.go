package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger-service/internal/ledger"
	"ledger-service/internal/model"
	"ledger-service/prometheus"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductInput carries the editable product fields
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description *string
}

type ProductService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProductService(db *gorm.DB, log *zap.Logger) *ProductService {
	return &ProductService{db: db, log: log.With(zap.String("component", "ProductService"))}
}

func productOwner(p *model.Product) uint { return p.OwnerID }

// List returns only the owner's products
func (s *ProductService) List(ctx context.Context, ownerID uint) ([]model.Product, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	products := []model.Product{}
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name, id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, ownerID, id uint) (*model.Product, error) {
	return findOwned(ctx, s.db, "product", id, ownerID, productOwner)
}

func (s *ProductService) Create(ctx context.Context, ownerID uint, in ProductInput) (*model.Product, error) {
	if err := ledger.ValidatePrice(in.Price); err != nil {
		recordValidationFailure(err)
		return nil, err
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	product := model.Product{
		Name:        in.Name,
		Price:       in.Price.Round(ledger.CurrencyPlaces),
		Description: in.Description,
		OwnerID:     ownerID,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	prometheus.RecordEntityOperation("product", "create")
	requestLog(ctx, s.log, "ProductService").Info("Product created",
		zap.Uint("owner_id", ownerID),
		zap.Uint("product_id", product.ID),
		zap.String("price", product.Price.StringFixed(ledger.CurrencyPlaces)))
	return &product, nil
}

// Update changes name, price and description. Existing purchases keep their
// totals until they are saved again.
func (s *ProductService) Update(ctx context.Context, ownerID, id uint, in ProductInput) (*model.Product, error) {
	if err := ledger.ValidatePrice(in.Price); err != nil {
		recordValidationFailure(err)
		return nil, err
	}
	product, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	oldPrice := product.Price
	product.Name = in.Name
	product.Price = in.Price.Round(ledger.CurrencyPlaces)
	product.Description = in.Description
	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}

	prometheus.RecordEntityOperation("product", "update")
	requestLog(ctx, s.log, "ProductService").Info("Product updated",
		zap.Uint("product_id", id),
		zap.String("old_price", oldPrice.StringFixed(ledger.CurrencyPlaces)),
		zap.String("new_price", product.Price.StringFixed(ledger.CurrencyPlaces)))
	return product, nil
}

// Delete removes the product and the purchases referencing it
func (s *ProductService) Delete(ctx context.Context, ownerID, id uint) error {
	product, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&model.Purchase{}).Error; err != nil {
			return err
		}
		return tx.Delete(product).Error
	})
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}

	prometheus.RecordEntityOperation("product", "delete")
	requestLog(ctx, s.log, "ProductService").Info("Product deleted", zap.Uint("owner_id", ownerID), zap.Uint("product_id", id))
	return nil
}

func recordValidationFailure(err error) {
	var verr *ledger.ValidationError
	if errors.As(err, &verr) {
		prometheus.RecordValidationFailure(verr.Code())
	}
}
