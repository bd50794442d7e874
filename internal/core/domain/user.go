package domain

import "fmt"

// Role is the access level stored on every user record.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleUser     Role = "User"
	RoleDisabled Role = "Disabled"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleDisabled:
		return true
	}
	return false
}

// User is the full user record as held by the store.
type User struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// BasicUser is the projection of User without id and password.
type BasicUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
}

// Basic returns the non-sensitive projection of u.
func (u *User) Basic() BasicUser {
	return BasicUser{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Role:      u.Role,
	}
}

// RoleError is returned when the caller's role does not grant an operation.
// It unwraps to ErrForbidden.
type RoleError struct {
	Role Role
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("user with role %s not permitted to perform this action", e.Role)
}

func (e *RoleError) Unwrap() error {
	return ErrForbidden
}
