package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newTestValidator(t *testing.T) *JWTValidator {
	t.Helper()
	v, err := NewJWTValidator(JWTConfig{
		SecretKey: testSecret,
		Issuer:    "markbase-backend",
		Audience:  []string{"markbase-api"},
	})
	require.NoError(t, err)
	return v
}

func newTestGenerator(t *testing.T, ttl time.Duration) *JWTGenerator {
	t.Helper()
	g, err := NewJWTGenerator(testSecret, "markbase-backend", []string{"markbase-api"}, ttl)
	require.NoError(t, err)
	return g
}

func TestValidateToken_RoundTrip(t *testing.T) {
	// Arrange
	generator := newTestGenerator(t, time.Hour)
	validator := newTestValidator(t)

	token, err := generator.GenerateToken("user-123", "user@example.com", []string{"authenticated"})
	require.NoError(t, err)

	// Act
	claims, err := validator.ValidateToken(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, []string{"authenticated"}, claims.Roles)
}

func TestValidateToken_BearerPrefixStripped(t *testing.T) {
	// Arrange
	generator := newTestGenerator(t, time.Hour)
	validator := newTestValidator(t)

	token, err := generator.GenerateToken("user-123", "", nil)
	require.NoError(t, err)

	// Act
	claims, err := validator.ValidateToken("Bearer " + token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestValidateToken_Expired(t *testing.T) {
	// Arrange
	generator := newTestGenerator(t, -time.Minute)
	validator := newTestValidator(t)

	token, err := generator.GenerateToken("user-123", "", nil)
	require.NoError(t, err)

	// Act
	_, err = validator.ValidateToken(token)

	// Assert
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	// Arrange
	otherGenerator, err := NewJWTGenerator("a-different-secret", "markbase-backend", []string{"markbase-api"}, time.Hour)
	require.NoError(t, err)
	validator := newTestValidator(t)

	token, err := otherGenerator.GenerateToken("user-123", "", nil)
	require.NoError(t, err)

	// Act
	_, err = validator.ValidateToken(token)

	// Assert
	assert.Error(t, err)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	// Arrange
	otherIssuer, err := NewJWTGenerator(testSecret, "someone-else", []string{"markbase-api"}, time.Hour)
	require.NoError(t, err)
	validator := newTestValidator(t)

	token, err := otherIssuer.GenerateToken("user-123", "", nil)
	require.NoError(t, err)

	// Act
	_, err = validator.ValidateToken(token)

	// Assert
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	// Arrange
	otherAudience, err := NewJWTGenerator(testSecret, "markbase-backend", []string{"another-api"}, time.Hour)
	require.NoError(t, err)
	validator := newTestValidator(t)

	token, err := otherAudience.GenerateToken("user-123", "", nil)
	require.NoError(t, err)

	// Act
	_, err = validator.ValidateToken(token)

	// Assert
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestValidateToken_Missing(t *testing.T) {
	// Arrange
	validator := newTestValidator(t)

	// Act
	_, err := validator.ValidateToken("")

	// Assert
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	// Act
	_, err := NewJWTValidator(JWTConfig{})

	// Assert
	assert.Error(t, err)
}

func TestUserContext_RoundTrip(t *testing.T) {
	// Arrange
	user := &UserContext{UserID: "user-123", Email: "user@example.com"}

	// Act
	ctx := SetUserInContext(context.Background(), user)
	got, err := GetUserFromContext(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestGetUserFromContext_Missing(t *testing.T) {
	// Act
	_, err := GetUserFromContext(context.Background())

	// Assert
	assert.Error(t, err)
}
