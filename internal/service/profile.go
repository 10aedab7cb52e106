package service

import (
	"context"
	"fmt"

	"ledger-service/internal/model"
	"ledger-service/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileInput replaces the owner's contact numbers; nil clears a number
type ProfileInput struct {
	PhoneNumber    *string
	WhatsAppNumber *string
}

type ProfileService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProfileService(db *gorm.DB, log *zap.Logger) *ProfileService {
	return &ProfileService{db: db, log: log.With(zap.String("component", "ProfileService"))}
}

// Get returns the owner's profile, creating an empty one on first access
func (s *ProfileService) Get(ctx context.Context, ownerID uint) (*model.Profile, error) {
	var profile model.Profile
	err := s.db.WithContext(ctx).Where(model.Profile{OwnerID: ownerID}).FirstOrCreate(&profile).Error
	if err != nil {
		return nil, fmt.Errorf("load profile of owner %d: %w", ownerID, err)
	}
	return &profile, nil
}

func (s *ProfileService) Update(ctx context.Context, ownerID uint, in ProfileInput) (*model.Profile, error) {
	profile, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	profile.PhoneNumber = in.PhoneNumber
	profile.WhatsAppNumber = in.WhatsAppNumber
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("update profile of owner %d: %w", ownerID, err)
	}

	prometheus.RecordEntityOperation("profile", "update")
	return profile, nil
}
