package auth

import "context"

// Store describes the persistence operations the auth core depends on. The
// core never caches users or roles beyond a single call. Lookups that find
// nothing return ErrNotFound; any other failure is surfaced as-is.
type Store interface {
	// FindUserByEmail returns the user with its role associations loaded.
	FindUserByEmail(ctx context.Context, email string) (*User, error)

	// FindUserByID returns the user with its role associations loaded.
	FindUserByID(ctx context.Context, id int64) (*User, error)

	// CreateUser persists the user and its role associations in a single
	// transaction: a user is never stored with zero roles. A uniqueness
	// violation on email yields ErrDuplicateEmail; the constraint is the
	// authoritative arbiter for racing registrations.
	CreateUser(ctx context.Context, u *User, roleIDs []int64) error

	// FindRolesByNames returns the subset of roles whose names exist.
	FindRolesByNames(ctx context.Context, names []string) ([]Role, error)

	// ListUsers returns every user with role associations loaded.
	ListUsers(ctx context.Context) ([]*User, error)

	// Ping reports store reachability for health checks.
	Ping(ctx context.Context) error
}
