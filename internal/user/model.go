package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrUsernameRequired   = errors.New("username is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// User represents an account whose calendar can be booked.
type User struct {
	ID           string // UUID
	Username     string
	Email        string
	PasswordHash string
	DisplayName  *string
	AvatarFileID *string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}
