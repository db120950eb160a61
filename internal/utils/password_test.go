package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword(hash, "correct horse") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong horse") {
		t.Error("wrong password accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name    string
		pw      string
		minLen  int
		wantErr bool
	}{
		{"ok", "s3cure-enough", 8, false},
		{"too short", "abc1234", 8, true},
		{"exactly min length", "abcd1234", 8, false},
		{"all digits", "123456789", 8, true},
		{"digits with letter", "12345678a", 8, false},
		{"empty", "", 8, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.pw, tc.minLen)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidatePassword(%q, %d) = %v, wantErr=%v", tc.pw, tc.minLen, err, tc.wantErr)
			}
		})
	}
}
