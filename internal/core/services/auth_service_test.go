package services

import (
	"context"
	"testing"

	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/config"
	"aerodesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg,
	)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	input := &RegisterInput{
		Username: "camila",
		Email:    "camila@example.com",
		Password: "supersecret1",
		Document: "1098765432",
	}

	registered, err := svc.Register(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RolePassenger), registered.User.Role)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)

	// Self-registration never grants admin, and duplicates are rejected.
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	logged, err := svc.Login(ctx, &LoginInput{Username: "camila", Password: "supersecret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, logged.User.ID)

	_, err = svc.Login(ctx, &LoginInput{Username: "camila", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Username: "nobody", Password: "supersecret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterValidatesDocument(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username: "baddoc",
		Email:    "baddoc@example.com",
		Password: "supersecret1",
		Document: "12-34",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRefreshTokenRotation(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{
		Username: "rotator",
		Email:    "rotator@example.com",
		Password: "supersecret1",
		Document: "2098765432",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The rotated-out token is revoked and cannot be replayed.
	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	// The new token still works.
	_, err = svc.RefreshToken(ctx, refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{
		Username: "multi",
		Email:    "multi@example.com",
		Password: "supersecret1",
		Document: "3098765432",
	})
	require.NoError(t, err)

	second, err := svc.Login(ctx, &LoginInput{Username: "multi", Password: "supersecret1"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, registered.User.ID))

	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
	_, err = svc.RefreshToken(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}
