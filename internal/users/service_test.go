package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	sharedauth "resume-builder/internal/shared/auth"
)

func newTestService() *Service {
	return NewService(NewMemoryRepo(), sharedauth.NewBcryptHasher(bcrypt.MinCost))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, " Ada ", "Ada@Example.com ", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.FullName)
	assert.Equal(t, ProviderLocal, user.Provider)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	got, err := svc.Login(ctx, "ADA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicatesAndBadInput(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "ADA@example.com", "secret2")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(ctx, "Ada", "ada2@example.com", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Register(ctx, "Ada", "not-an-email", "secret1")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertFromAuthReusesAccountWithSameEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	local, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	got, err := svc.UpsertFromAuth(ctx, User{ID: "google:123", Email: "ada@example.com", Provider: ProviderGoogle})
	require.NoError(t, err)
	assert.Equal(t, local.ID, got.ID)

	fresh, err := svc.UpsertFromAuth(ctx, User{ID: "google:456", Email: "grace@example.com", FullName: "Grace", Provider: ProviderGoogle})
	require.NoError(t, err)
	assert.Equal(t, "google:456", fresh.ID)
	assert.Equal(t, ProviderGoogle, fresh.Provider)

	again, err := svc.UpsertFromAuth(ctx, User{ID: "google:456", Email: "grace@example.com", FullName: "Grace Hopper", Provider: ProviderGoogle})
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", again.FullName)
	assert.Equal(t, fresh.CreatedAt, again.CreatedAt)

	// accounts without a password cannot log in locally
	_, err = svc.Login(ctx, "grace@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetByID(t *testing.T) {
	svc := newTestService()
	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetByID(context.Background(), "")
	assert.Error(t, err)
}
