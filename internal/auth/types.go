package auth

import "time"

// User is the persisted identity record. The password hash never leaves the
// package boundary: callers receive a UserView instead.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role is a named permission tier. Users hold roles through the user_roles
// join table; a single-role user is just a join table with one row.
type Role struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenPayload is the verified identity claim carried inside a signed token.
// It is never persisted and never mutated after issuance.
type TokenPayload struct {
	UserID    int64
	Email     string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// UserView is the sanitized user representation returned to callers.
type UserView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sanitize strips the password hash and flattens role associations into the
// canonical role name list.
func (u *User) Sanitize() UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Roles:     CanonicalRoles(u.Roles),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
