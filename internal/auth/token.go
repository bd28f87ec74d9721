package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed validity window of issued tokens. There is no
// refresh endpoint; expiry forces a new login.
const TokenTTL = time.Hour

// Distinguishable verification failures. The gate maps each to its own
// client-facing message.
var (
	// ErrTokenExpired means the signature may be fine but the expiry
	// instant has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed means the string is not a parseable JWT.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenInvalid covers bad signatures, wrong signing methods and
	// missing or unusable claims.
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenIssuer signs and verifies compact HS256 bearer tokens bound to a
// single user ID. Verification is stateless and safe for concurrent use.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer returns a TokenIssuer signing with the given symmetric secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue mints a signed token whose subject is the user ID, valid for TokenTTL.
func (t *TokenIssuer) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry and returns the user ID the token is
// bound to. An expired token is rejected even when its signature is valid.
func (t *TokenIssuer) Verify(tokenString string) (uint, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return t.secret, nil
	}, jwt.WithExpirationRequired())

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return 0, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return 0, ErrTokenMalformed
	case err != nil:
		return 0, ErrTokenInvalid
	}

	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || userID == 0 {
		return 0, ErrTokenInvalid
	}
	return uint(userID), nil
}
