package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFTokenRoundTrip(t *testing.T) {
	now := time.Now()
	token := GenerateCSRFToken("42", "secret", now)
	require.NotEmpty(t, token)

	err := VerifyCSRFToken(token, "42", "secret", 30*time.Minute, now.Add(time.Minute))
	assert.NoError(t, err)
}

func TestCSRFTokenWrongSubject(t *testing.T) {
	now := time.Now()
	token := GenerateCSRFToken("42", "secret", now)

	err := VerifyCSRFToken(token, "43", "secret", 30*time.Minute, now)
	assert.ErrorIs(t, err, ErrCSRFTokenInvalid)
}

func TestCSRFTokenWrongSecret(t *testing.T) {
	now := time.Now()
	token := GenerateCSRFToken("42", "secret", now)

	err := VerifyCSRFToken(token, "42", "other-secret", 30*time.Minute, now)
	assert.ErrorIs(t, err, ErrCSRFTokenInvalid)
}

func TestCSRFTokenExpiry(t *testing.T) {
	now := time.Now()
	token := GenerateCSRFToken("42", "secret", now)

	err := VerifyCSRFToken(token, "42", "secret", 30*time.Minute, now.Add(31*time.Minute))
	assert.ErrorIs(t, err, ErrCSRFTokenExpired)

	err = VerifyCSRFToken(token, "42", "secret", 30*time.Minute, now.Add(29*time.Minute))
	assert.NoError(t, err)
}

func TestCSRFTokenTampered(t *testing.T) {
	err := VerifyCSRFToken("not-base64!!", "42", "secret", 30*time.Minute, time.Now())
	assert.ErrorIs(t, err, ErrCSRFTokenInvalid)

	// Valid base64 but a garbage payload.
	err = VerifyCSRFToken("Zm9vYmFy", "42", "secret", 30*time.Minute, time.Now())
	assert.ErrorIs(t, err, ErrCSRFTokenInvalid)
}
