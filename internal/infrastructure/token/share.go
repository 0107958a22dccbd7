// Package token signs and verifies the read-only share codes embedded
// in account QR images.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/moneyman/moneyman/internal/domain"
)

// shareClaims binds a share code to its owner. Scope is fixed: a share
// code only ever grants the read-only snapshot.
type shareClaims struct {
	OwnerID string `json:"owner_id"`
	Scope   string `json:"scope"`
	jwt.RegisteredClaims
}

const shareScope = "shared-read"

// ShareCodec issues and parses HMAC-signed share codes. It implements
// usecase.ShareCodec.
type ShareCodec struct {
	secretKey []byte
	ttl       time.Duration
}

// NewShareCodec creates a codec with the given signing secret and code
// lifetime.
func NewShareCodec(secretKey string, ttl time.Duration) *ShareCodec {
	return &ShareCodec{
		secretKey: []byte(secretKey),
		ttl:       ttl,
	}
}

// Issue signs a new share code for the owner.
func (c *ShareCodec) Issue(ownerID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(c.ttl)

	claims := shareClaims{
		OwnerID: ownerID,
		Scope:   shareScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	code, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign share code: %w", err)
	}
	return code, expiresAt, nil
}

// Parse verifies the code and returns the owner it was issued for.
// Tampered, expired, or foreign-scope codes all come back as
// domain.ErrShareCodeInvalid.
func (c *ShareCodec) Parse(code string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		code,
		&shareClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.secretKey, nil
		},
	)
	if err != nil {
		return "", domain.ErrShareCodeInvalid
	}

	claims, ok := parsed.Claims.(*shareClaims)
	if !ok || !parsed.Valid || claims.Scope != shareScope || claims.OwnerID == "" {
		return "", domain.ErrShareCodeInvalid
	}
	return claims.OwnerID, nil
}
