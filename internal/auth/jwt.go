package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired unlock token")
	ErrMissingToken = errors.New("dashboard is locked")
)

const unlockSubject = "dashboard"

// UnlockTokens issues and validates tokens for an unlocked dashboard session.
// A token is bound to the PIN hash it was issued under, so changing the PIN
// invalidates every outstanding token.
type UnlockTokens struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// UnlockClaims are the JWT claims of an unlock token.
type UnlockClaims struct {
	PinFingerprint string `json:"pfp"`
	jwt.RegisteredClaims
}

// NewUnlockTokens creates a token issuer with the given secret and lifetime.
func NewUnlockTokens(secretKey string, tokenDuration time.Duration) *UnlockTokens {
	return &UnlockTokens{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// Fingerprint returns a short digest of a PIN hash.
func Fingerprint(pinHash string) string {
	sum := sha256.Sum256([]byte(pinHash))
	return hex.EncodeToString(sum[:8])
}

// key mixes the PIN hash into the signing key so tokens stay unforgeable
// even when no secret is configured.
func (u *UnlockTokens) key(pinHash string) []byte {
	key := make([]byte, 0, len(u.secretKey)+len(pinHash))
	key = append(key, u.secretKey...)
	return append(key, pinHash...)
}

// Issue creates a token for the session unlocked under pinHash.
func (u *UnlockTokens) Issue(pinHash string) (string, error) {
	now := u.now()
	claims := &UnlockClaims{
		PinFingerprint: Fingerprint(pinHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   unlockSubject,
			ExpiresAt: jwt.NewNumericDate(now.Add(u.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(u.key(pinHash))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate checks a token against the current PIN hash.
func (u *UnlockTokens) Validate(tokenString, pinHash string) (*UnlockClaims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(unlockSubject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(u.now),
	)

	token, err := parser.ParseWithClaims(tokenString, &UnlockClaims{}, func(*jwt.Token) (interface{}, error) {
		return u.key(pinHash), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*UnlockClaims)
	if !ok || !token.Valid || claims.PinFingerprint != Fingerprint(pinHash) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
