package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ledger-service/internal/model"
	"ledger-service/pkg/jwtutil"
	"ledger-service/prometheus"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RegisterInput is a new owner account
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthService struct {
	db  *gorm.DB
	log *zap.Logger
	jwt *jwtutil.JWTUtil
}

func NewAuthService(db *gorm.DB, log *zap.Logger, jwt *jwtutil.JWTUtil) *AuthService {
	return &AuthService{db: db, log: log.With(zap.String("component", "AuthService")), jwt: jwt}
}

// Register creates the owner and an empty profile in one transaction
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.Owner, error) {
	username := strings.TrimSpace(in.Username)

	defer prometheus.TrackDBOperation("insert")(time.Now())
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Owner{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		prometheus.RecordAuthAttempt("register", "username_taken")
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	owner := model.Owner{Username: username, Email: in.Email, PasswordHash: string(hash)}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}
		return tx.Create(&model.Profile{OwnerID: owner.ID}).Error
	})
	if err != nil {
		prometheus.RecordAuthAttempt("register", "error")
		return nil, fmt.Errorf("create owner: %w", err)
	}

	prometheus.RecordAuthAttempt("register", "success")
	requestLog(ctx, s.log, "AuthService").Info("Owner registered", zap.Uint("owner_id", owner.ID), zap.String("username", owner.Username))
	return &owner, nil
}

// Login checks the password and returns a signed token
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.Owner, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var owner model.Owner
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prometheus.RecordAuthAttempt("login", "unknown_user")
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("load owner: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(password)); err != nil {
		prometheus.RecordAuthAttempt("login", "invalid_password")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(owner.ID, owner.Username)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	prometheus.RecordAuthAttempt("login", "success")
	prometheus.ActiveTokensGauge.Inc()
	requestLog(ctx, s.log, "AuthService").Info("Owner logged in", zap.Uint("owner_id", owner.ID))
	return token, &owner, nil
}

// Logout only records the event; tokens are stateless and expire on their own.
func (s *AuthService) Logout(ctx context.Context, ownerID uint, username string) {
	prometheus.ActiveTokensGauge.Dec()
	requestLog(ctx, s.log, "AuthService").Info("Owner logged out", zap.Uint("owner_id", ownerID), zap.String("username", username))
}
