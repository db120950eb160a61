package utils

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ErrPasswordTooNumeric rejects passwords made up entirely of digits.
var ErrPasswordTooNumeric = errors.New("password cannot be entirely numeric")

// ValidatePassword applies the password strength policy: a configurable
// minimum length and a not-all-digits rule. It runs before any hashing so
// weak passwords never reach the store.
func ValidatePassword(plain string, minLen int) error {
	if len(plain) < minLen {
		return fmt.Errorf("password must be at least %d characters long", minLen)
	}
	allDigits := true
	for _, r := range plain {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return ErrPasswordTooNumeric
	}
	return nil
}
