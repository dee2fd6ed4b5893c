package domain

import (
	"errors"
	"time"
)

// User is the core credential record. Email is stored case-sensitively and
// looked up as given; the record is created at signup and never mutated.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role is the coarse permission tier attached to a user and propagated into
// access tokens. It is a closed enumeration; the canonical string appears only
// at the token and database boundaries.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ErrUnknownRole is returned by ParseRole for anything outside the enumeration.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole maps a canonical role string back to the enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// String returns the canonical serialized form of the role.
func (r Role) String() string { return string(r) }

// Validate validates the user for persistence. Returns an error describing the
// first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}
