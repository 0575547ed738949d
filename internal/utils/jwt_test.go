package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/store-rating/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 42, model.RoleStoreOwner, 8)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	id, err := ParseAccessToken("test-secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id.UserID)
	assert.Equal(t, model.RoleStoreOwner, id.Role)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret-a", 1, model.RoleAdmin, 8)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret-b", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenExpired(t *testing.T) {
	// A negative TTL puts the expiry in the past.
	tok, err := NewAccessToken("test-secret", 1, model.RoleNormalUser, -1)
	require.NoError(t, err)

	_, err = ParseAccessToken("test-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	_, err := ParseAccessToken("test-secret", "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseAccessToken("test-secret", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenUnknownRole(t *testing.T) {
	// Issue with a role outside the closed set by going through the raw
	// claim value: ParseRole must reject it at verification time.
	tok, err := NewAccessToken("test-secret", 7, model.Role("superuser"), 8)
	require.NoError(t, err)

	_, err = ParseAccessToken("test-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
