package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func TestDecodeTokenUserIDClaim(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{
		"user_id": "42",
		"name":    "Jane",
		"email":   "jane@example.com",
		"role":    "admin",
	})

	claims, err := DecodeToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "Jane", claims.Name)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestDecodeTokenSubClaimFallback(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{
		"sub":      "user-9",
		"username": "jdoe",
	})

	claims, err := DecodeToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-9", claims.Subject)
	assert.Equal(t, "jdoe", claims.Name, "name falls back to username")
}

func TestDecodeTokenNoVerificationNeeded(t *testing.T) {
	// a token signed with a key we never see still decodes
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u"}).
		SignedString([]byte("remote-secret-we-do-not-hold"))
	require.NoError(t, err)

	claims, err := DecodeToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u", claims.Subject)
}

func TestDecodeTokenErrors(t *testing.T) {
	_, err := DecodeToken("")
	assert.Error(t, err)

	_, err = DecodeToken("not.a.jwt")
	assert.Error(t, err)

	noSubject := signedToken(t, jwt.MapClaims{"email": "x@y.z"})
	_, err = DecodeToken(noSubject)
	assert.ErrorContains(t, err, "no subject")
}
