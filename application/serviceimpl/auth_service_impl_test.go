package serviceimpl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"catsofasia/domain/models"
	"catsofasia/domain/services"
	"catsofasia/infrastructure/memstore"
	"catsofasia/infrastructure/postgres"
	"catsofasia/pkg/config"
	"catsofasia/pkg/utils"
)

func newAuthFixture(t *testing.T) services.AuthService {
	t.Helper()
	db := newTestDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		ID:           uuid.New(),
		Username:     "uploader",
		PasswordHash: string(hash),
		Role:         "uploader",
	}).Error)

	return NewAuthService(postgres.NewUserRepository(db), memstore.NewCSRFStore(), config.JWTConfig{
		Secret:   "test-secret",
		TTLHours: 1,
	})
}

func TestLogin(t *testing.T) {
	svc := newAuthFixture(t)

	token, err := svc.Login(context.Background(), "uploader", "correct-horse")
	require.NoError(t, err)

	userCtx, err := utils.ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "uploader", userCtx.Username)
	assert.Equal(t, "uploader", userCtx.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "uploader", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestCSRFTokenLifecycle(t *testing.T) {
	svc := newAuthFixture(t)

	token, err := svc.IssueCSRFToken(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ok, err := svc.ValidateCSRFToken(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ValidateCSRFToken(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.ValidateCSRFToken(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}
