package service

import (
	"context"
	"testing"

	"ledger-service/internal/model"
	"ledger-service/internal/testutil"
	"ledger-service/pkg/jwtutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})
	svc := NewAuthService(db, zap.NewNop(), jwt)

	owner, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", owner.PasswordHash)

	var profiles int64
	require.NoError(t, db.Model(&model.Profile{}).Where("owner_id = ?", owner.ID).Count(&profiles).Error)
	assert.Equal(t, int64(1), profiles)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	token, loggedIn, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, loggedIn.ID)

	claims, err := jwt.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, claims.OwnerID)

	_, _, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfileUpdate(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	a := testutil.SeedOwner(t, db, "alice")
	svc := NewProfileService(db, zap.NewNop())

	profile, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, profile.WhatsAppNumber)

	wa := "+15550001"
	updated, err := svc.Update(ctx, a.ID, ProfileInput{WhatsAppNumber: &wa})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, updated.ID)

	again, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, again.WhatsAppNumber)
	assert.Equal(t, wa, *again.WhatsAppNumber)
}
