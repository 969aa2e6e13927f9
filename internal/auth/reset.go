package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultResetTTL bounds the lifetime of a password reset link.
const DefaultResetTTL = time.Hour

const resetAudience = "password-reset"

var ErrInvalidResetToken = errors.New("lien de réinitialisation invalide ou expiré")

// ResetClaims are carried by a reset token. Fingerprint binds the token to the
// password hash it was issued for, so it stops working once the password changes.
type ResetClaims struct {
	Email       string `json:"email"`
	Fingerprint string `json:"fp"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject.
func (c ResetClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, ErrInvalidResetToken
	}
	return uint(id), nil
}

// ResetTokens issues and verifies HS256 password reset tokens.
type ResetTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewResetTokens returns a signer. A non-positive ttl uses DefaultResetTTL.
func NewResetTokens(secret []byte, ttl time.Duration) *ResetTokens {
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}
	return &ResetTokens{secret: secret, ttl: ttl, now: time.Now}
}

func (t *ResetTokens) fingerprint(passwordHash string) string {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(passwordHash))
	return hex.EncodeToString(mac.Sum(nil))[:32]
}

// Issue signs a token for the user owning passwordHash.
func (t *ResetTokens) Issue(userID uint, email, passwordHash string) (string, error) {
	now := t.now()
	claims := ResetClaims{
		Email:       email,
		Fingerprint: t.fingerprint(passwordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Audience:  jwt.ClaimStrings{resetAudience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}
	return signed, nil
}

// Parse checks signature, audience and expiry.
func (t *ResetTokens) Parse(token string) (ResetClaims, error) {
	var claims ResetClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(resetAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return ResetClaims{}, fmt.Errorf("%w: %v", ErrInvalidResetToken, err)
	}
	return claims, nil
}

// Verify checks that claims were issued for currentHash.
func (t *ResetTokens) Verify(claims ResetClaims, currentHash string) error {
	if !hmac.Equal([]byte(claims.Fingerprint), []byte(t.fingerprint(currentHash))) {
		return ErrInvalidResetToken
	}
	return nil
}
