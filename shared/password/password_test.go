package password_test

import (
	"errors"
	"strings"
	"testing"

	"tourbook/shared/password"

	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedError error
	}{
		{name: "valid password", password: "validPassword123"},
		{name: "empty password", password: "", expectedError: password.ErrEmptyPassword},
		{name: "special characters", password: "P@ssw0rd!#$%^&*()"},
		{name: "unicode password", password: "كلمةالسر123"},
		{name: "longer than bcrypt accepts", password: strings.Repeat("a", 73), expectedError: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)
			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected %v, got %v", tt.expectedError, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			cost, err := bcrypt.Cost([]byte(hash))
			if err != nil {
				t.Fatalf("hash is not bcrypt: %v", err)
			}

			if cost != password.DefaultCost {
				t.Errorf("expected cost %d, got %d", password.DefaultCost, cost)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tests := []struct {
		name          string
		password      string
		hash          string
		expectedError error
	}{
		{name: "match", password: "secret123", hash: hash},
		{name: "mismatch", password: "secret124", hash: hash, expectedError: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, expectedError: password.ErrInvalidPassword},
		{name: "empty hash", password: "secret123", hash: "", expectedError: password.ErrInvalidPassword},
		{name: "malformed hash", password: "secret123", hash: "not-a-hash", expectedError: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)
			if tt.expectedError == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.expectedError != nil && !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected %v, got %v", tt.expectedError, err)
			}
		})
	}
}
