package session

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the client reads out of the bearer token. The
// token is opaque as far as validity goes — the client holds no signing
// key and performs no expiry check; a dead token is discovered when a
// request comes back 401.
type TokenClaims struct {
	Subject string
	Name    string
	Email   string
	Role    string
}

type rawClaims struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeToken parses the token payload without verifying the signature.
// Every consumer goes through here; there is exactly one place that
// knows the subject id may live under "user_id" or "sub".
func DecodeToken(token string) (*TokenClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}

	var claims rawClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	subject := claims.UserID
	if subject == "" {
		subject = claims.RegisteredClaims.Subject
	}
	if subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	name := claims.Name
	if name == "" {
		name = claims.Username
	}

	return &TokenClaims{
		Subject: subject,
		Name:    name,
		Email:   claims.Email,
		Role:    claims.Role,
	}, nil
}
