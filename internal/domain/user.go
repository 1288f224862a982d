package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Role identifies the authorization level of a user.
type Role string

// Valid user roles. RoleAdmin bypasses task ownership checks.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Common user validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrPasswordTooWeak     = errors.New("password must contain an uppercase letter, a lowercase letter, and a digit")
	ErrInvalidRole         = errors.New("role must be either user or admin")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

var emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w.-]+\.\w+$`)

// User represents a registered account of the taskboard application.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, only set during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email and plaintext password.
// The email is normalized to lower case. The caller is responsible for
// hashing the password before the user is stored.
func NewUser(email, password string, role Role) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  password,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !emailPattern.MatchString(u.Email) {
		return ErrInvalidEmail
	}

	if !u.Role.IsValid() {
		return ErrInvalidRole
	}

	if u.Password != "" {
		return ValidatePassword(u.Password)
	}

	// Existing users loaded from storage carry only the hash.
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// ValidatePassword checks a plaintext password against the registration
// policy: 8 to 72 characters with at least one uppercase letter, one
// lowercase letter, and one digit. The 72 character ceiling is bcrypt's
// practical input limit.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit {
		return ErrPasswordTooWeak
	}

	return nil
}
