package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestTokens(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService("test-secret-key-for-jwt-signing", time.Hour)
	require.NoError(t, err)
	return svc
}

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := newTestTokens(t)

	token, err := svc.Issue(Identity{UserID: "user-1", Email: "a@example.com", Name: "Ada"})
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc := newTestTokens(t)
	issuedAt := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(Identity{UserID: "user-1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = svc.Verify(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenServiceRejectsOtherSecret(t *testing.T) {
	svc := newTestTokens(t)
	other, err := NewTokenService("another-secret", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue(Identity{UserID: "user-1"})
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenServiceRejectsNoneAlgorithm(t *testing.T) {
	svc := newTestTokens(t)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenServiceRequiresSecretAndSubject(t *testing.T) {
	_, err := NewTokenService("  ", time.Hour)
	assert.Error(t, err)

	svc := newTestTokens(t)
	_, err = svc.Issue(Identity{})
	assert.Error(t, err)
	_, err = svc.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.NoError(t, h.Compare(hash, "s3cret!"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrPasswordMismatch)
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(1).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).Cost)
	assert.Equal(t, 12, NewBcryptHasher(12).Cost)
}
