package entity

import (
	"strings"
	"time"
)

// Base role labels carried through to issued tokens.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is the aggregate root for the authentication domain.
// PasswordHash holds a bcrypt hash and is never compared by equality;
// Locked is a one-way latch set by the lockout policy and cleared only
// out of band.
type Account struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	PasswordHash  string
	City          string
	Roles         []string
	Enabled       bool
	Locked        bool
	LoginAttempts int
	LastLogin     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NormalizeEmail canonicalizes an email address for lookup and storage.
// Exactly one account may exist per normalized email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone trims surrounding whitespace; case is not affected.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}
