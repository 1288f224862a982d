package mocks

import (
	"errors"

	"github.com/primetrade/taskboard-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
type MockPasswordVerifier struct {
	// CompareFn allows test cases to mock the Compare behavior
	CompareFn func(hashedPassword, password string) error

	// ShouldSucceed makes Compare succeed or fail when CompareFn is unset
	ShouldSucceed bool
}

// Ensure MockPasswordVerifier implements auth.PasswordVerifier
var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the auth.PasswordVerifier interface.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}

// MockPasswordHasher implements auth.PasswordHasher for testing.
type MockPasswordHasher struct {
	// HashFn allows test cases to mock the Hash behavior
	HashFn func(password string) (string, error)

	Err error
}

// Ensure MockPasswordHasher implements auth.PasswordHasher
var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return "hashed:" + password, nil
}
