package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrCSRFTokenInvalid = errors.New("invalid csrf token")
	ErrCSRFTokenExpired = errors.New("csrf token expired")
)

// GenerateCSRFToken mints an expiring token bound to a subject (the user or
// session identity): base64(subject|issuedAtUnix|hmac-sha256).
func GenerateCSRFToken(subject, secret string, now time.Time) string {
	issued := strconv.FormatInt(now.Unix(), 10)
	mac := signCSRF(subject, issued, secret)
	raw := fmt.Sprintf("%s|%s|%s", subject, issued, mac)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// VerifyCSRFToken checks the signature and TTL of a token and confirms it
// was minted for the given subject.
func VerifyCSRFToken(token, subject, secret string, ttl time.Duration, now time.Time) error {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return ErrCSRFTokenInvalid
	}

	parts := strings.Split(string(raw), "|")
	if len(parts) != 3 {
		return ErrCSRFTokenInvalid
	}
	tokenSubject, issued, mac := parts[0], parts[1], parts[2]

	if tokenSubject != subject {
		return ErrCSRFTokenInvalid
	}

	expected := signCSRF(tokenSubject, issued, secret)
	if !hmac.Equal([]byte(mac), []byte(expected)) {
		return ErrCSRFTokenInvalid
	}

	issuedAt, err := strconv.ParseInt(issued, 10, 64)
	if err != nil {
		return ErrCSRFTokenInvalid
	}
	if now.Sub(time.Unix(issuedAt, 0)) > ttl {
		return ErrCSRFTokenExpired
	}

	return nil
}

func signCSRF(subject, issued, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(subject))
	h.Write([]byte("|"))
	h.Write([]byte(issued))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}
