package domain

import "time"

// UserRole enumerates account roles.
type UserRole string

const (
	UserRoleMember UserRole = "MEMBER"
	UserRoleAdmin  UserRole = "ADMIN"
)

// User is the account identity behind portal logins, event organizers and
// operation authors.
type User struct {
	ID           string
	Handle       string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
