package auth

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

// signToken builds a raw token with arbitrary claims for negative tests.
func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	token, err := issuer.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	// Correctly signed but past its expiry instant
	expired := signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   "42",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	_, err := issuer.Verify(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_RejectsMissingExpiry(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	noExp := signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:  "42",
		IssuedAt: jwt.NewNumericDate(time.Now()),
	})

	_, err := issuer.Verify(noExp)
	assert.Error(t, err)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	forged := signToken(t, "some-other-secret", jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	_, err := issuer.Verify(forged)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenIssuer_Tampered(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	token, err := issuer.Issue(42)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = issuer.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	for _, bad := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := issuer.Verify(bad)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", bad)
	}
}

func TestTokenIssuer_BadSubject(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	tests := []string{"", "not-a-number", "-1", "0"}
	for _, sub := range tests {
		token := signToken(t, testSecret, jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		_, err := issuer.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, "subject %q", sub)
	}
}

func TestTokenIssuer_SubjectRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	for _, id := range []uint{1, 999, 4294967295} {
		token, err := issuer.Issue(id)
		require.NoError(t, err)

		got, err := issuer.Verify(token)
		require.NoError(t, err, "id "+strconv.FormatUint(uint64(id), 10))
		assert.Equal(t, id, got)
	}
}
