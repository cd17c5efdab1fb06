package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system (matches user_role enum)
type Role string

const (
	RoleUser     Role = "USER"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

// User represents a user account (matches users table)
type User struct {
	ID           uuid.UUID      `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	FullName     string         `db:"full_name"`
	Phone        sql.NullString `db:"phone"`
	Role         Role           `db:"role"`
	AvatarKey    sql.NullString `db:"avatar_key"`
	IsBanned     bool           `db:"is_banned"`

	// Login tracking
	LastLoginAt sql.NullTime   `db:"last_login_at"`
	LastLoginIP sql.NullString `db:"last_login_ip"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsProvider returns true if user owns at least one approved provider
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive returns true if user is not banned
func (u *User) IsActive() bool {
	return !u.IsBanned
}

// ValidRoles returns list of valid roles for registration
func ValidRoles() []Role {
	return []Role{RoleUser}
}

// IsValidRole checks if role is valid for admin user creation
func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleUser, RoleProvider, RoleAdmin:
		return true
	default:
		return false
	}
}
