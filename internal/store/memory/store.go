// Package memory implements the auth persistence contract in process memory.
// It backs tests and storeless development runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gatehouse.dev/internal/auth"
)

var _ auth.Store = (*Store)(nil)

// Store is a mutex-guarded in-memory auth.Store.
type Store struct {
	mu         sync.Mutex
	users      map[int64]*auth.User
	byEmail    map[string]int64
	roles      map[int64]auth.Role
	nextUserID int64
	nextRoleID int64
	now        func() time.Time
}

// NewStore returns an empty store. Seed roles with SeedRoles before
// registering users.
func NewStore() *Store {
	return &Store{
		users:   make(map[int64]*auth.User),
		byEmail: make(map[string]int64),
		roles:   make(map[int64]auth.Role),
		now:     time.Now,
	}
}

// SeedRoles creates the named roles, skipping ones that already exist.
func (s *Store) SeedRoles(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		if s.roleByNameLocked(name) != nil {
			continue
		}
		s.nextRoleID++
		now := s.now().UTC()
		s.roles[s.nextRoleID] = auth.Role{
			ID:        s.nextRoleID,
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
}

func (s *Store) roleByNameLocked(name string) *auth.Role {
	for id, r := range s.roles {
		if r.Name == name {
			role := s.roles[id]
			return &role
		}
	}
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) FindUserByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, auth.ErrNotFound
	}
	return cloneUser(s.users[id]), nil
}

func (s *Store) FindUserByID(_ context.Context, id int64) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) CreateUser(_ context.Context, u *auth.User, roleIDs []int64) error {
	if len(roleIDs) == 0 {
		return auth.ErrInvalidRoles
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[u.Email]; exists {
		return auth.ErrDuplicateEmail
	}
	roles := make([]auth.Role, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		role, ok := s.roles[roleID]
		if !ok {
			return auth.ErrInvalidRoles
		}
		roles = append(roles, role)
	}
	s.nextUserID++
	now := s.now().UTC()
	u.ID = s.nextUserID
	u.Roles = roles
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = cloneUser(u)
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *Store) FindRolesByNames(_ context.Context, names []string) ([]auth.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []auth.Role
	for _, name := range names {
		if role := s.roleByNameLocked(name); role != nil {
			result = append(result, *role)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) ListUsers(context.Context) ([]*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	users := make([]*auth.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, cloneUser(s.users[id]))
	}
	return users, nil
}

func cloneUser(u *auth.User) *auth.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]auth.Role(nil), u.Roles...)
	return &clone
}
