package jwtinfra

import (
	"errors"
	"time"

	"github.com/auth-flow-api/internal/config"
	"github.com/auth-flow-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Purpose discriminates the three token classes. Each purpose signs with
// its own secret and expiry, so tokens are never interchangeable across
// call sites: verifying an access token with the reset secret fails.
type Purpose string

const (
	PurposeAccess  Purpose = "access"
	PurposeRefresh Purpose = "refresh"
	PurposeReset   Purpose = "reset"
)

// Claims holds the JWT payload fields.
type Claims struct {
	AccountID    string  `json:"account_id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	ProfileImage string  `json:"profile_image,omitempty"`
	Status       string  `json:"status"`
	Purpose      Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs for the three token purposes.
type Provider struct {
	secrets  map[Purpose][]byte
	expiries map[Purpose]time.Duration
}

func NewProvider(cfg config.JWTConfig) *Provider {
	return &Provider{
		secrets: map[Purpose][]byte{
			PurposeAccess:  []byte(cfg.AccessSecret),
			PurposeRefresh: []byte(cfg.RefreshSecret),
			PurposeReset:   []byte(cfg.ResetSecret),
		},
		expiries: map[Purpose]time.Duration{
			PurposeAccess:  cfg.AccessExpiry,
			PurposeRefresh: cfg.RefreshExpiry,
			PurposeReset:   cfg.ResetExpiry,
		},
	}
}

// Sign issues a token for the account under the given purpose.
func (p *Provider) Sign(account *domain.Account, purpose Purpose) (string, error) {
	secret, ok := p.secrets[purpose]
	if !ok || len(secret) == 0 {
		return "", domain.E(domain.KindInternal, "no signing secret configured for "+string(purpose)+" tokens")
	}
	now := time.Now()
	claims := Claims{
		AccountID:    account.AccountID,
		Email:        account.Email,
		Name:         account.Name,
		ProfileImage: account.ProfileImage,
		Status:       account.Status,
		Purpose:      purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiries[purpose])),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", domain.Wrap(domain.KindInternal, "sign token", err)
	}
	return signed, nil
}

// Verify parses tokenStr against the secret for the given purpose and maps
// every failure mode to an unauthorized domain error.
func (p *Provider) Verify(tokenStr string, purpose Purpose) (*Claims, error) {
	secret, ok := p.secrets[purpose]
	if !ok || len(secret) == 0 {
		return nil, domain.E(domain.KindInternal, "no verification secret configured for "+string(purpose)+" tokens")
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.Wrap(domain.KindUnauthorized, "token has expired", err)
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, domain.Wrap(domain.KindUnauthorized, "token is not valid yet", err)
		default:
			return nil, domain.Wrap(domain.KindUnauthorized, "invalid token", err)
		}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.E(domain.KindUnauthorized, "invalid token claims")
	}
	if claims.Purpose != purpose {
		return nil, domain.E(domain.KindUnauthorized, "token purpose mismatch")
	}
	return claims, nil
}
