package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse.dev/internal/auth"
)

func TestCreateAndFindUser(t *testing.T) {
	s := NewStore()
	s.SeedRoles("USER", "ADMIN")

	roles, err := s.FindRolesByNames(context.Background(), []string{"USER"})
	require.NoError(t, err)
	require.Len(t, roles, 1)

	u := &auth.User{Email: "u1@x.com", PasswordHash: "hash", Name: "U One"}
	require.NoError(t, s.CreateUser(context.Background(), u, []int64{roles[0].ID}))
	assert.NotZero(t, u.ID)

	byEmail, err := s.FindUserByEmail(context.Background(), "u1@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	require.Len(t, byEmail.Roles, 1)
	assert.Equal(t, "USER", byEmail.Roles[0].Name)

	byID, err := s.FindUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1@x.com", byID.Email)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := NewStore()
	s.SeedRoles("USER")

	u := &auth.User{Email: "u1@x.com", PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(context.Background(), u, []int64{1}))

	again := &auth.User{Email: "u1@x.com", PasswordHash: "hash"}
	err := s.CreateUser(context.Background(), again, []int64{1})
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
}

func TestCreateUserUnknownRole(t *testing.T) {
	s := NewStore()
	s.SeedRoles("USER")

	u := &auth.User{Email: "u1@x.com", PasswordHash: "hash"}
	assert.ErrorIs(t, s.CreateUser(context.Background(), u, []int64{99}), auth.ErrInvalidRoles)
	assert.ErrorIs(t, s.CreateUser(context.Background(), u, nil), auth.ErrInvalidRoles)

	_, err := s.FindUserByEmail(context.Background(), "u1@x.com")
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestFindRolesByNamesSubset(t *testing.T) {
	s := NewStore()
	s.SeedRoles("USER", "ADMIN", "MODERATOR")

	roles, err := s.FindRolesByNames(context.Background(), []string{"MODERATOR", "USER", "GHOST"})
	require.NoError(t, err)
	require.Len(t, roles, 2)
	// Ordered by role id, not by the requested order.
	assert.Equal(t, "USER", roles[0].Name)
	assert.Equal(t, "MODERATOR", roles[1].Name)
}

func TestSeedRolesIdempotent(t *testing.T) {
	s := NewStore()
	s.SeedRoles("USER")
	s.SeedRoles("USER", "ADMIN")

	roles, err := s.FindRolesByNames(context.Background(), []string{"USER", "ADMIN"})
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}

func TestReturnedUsersAreCopies(t *testing.T) {
	s := NewStore()
	s.SeedRoles("USER")

	u := &auth.User{Email: "u1@x.com", PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(context.Background(), u, []int64{1}))

	got, err := s.FindUserByEmail(context.Background(), "u1@x.com")
	require.NoError(t, err)
	got.Email = "mutated@x.com"
	got.Roles[0].Name = "MUTATED"

	fresh, err := s.FindUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1@x.com", fresh.Email)
	assert.Equal(t, "USER", fresh.Roles[0].Name)
}

func TestListUsersOrderedByID(t *testing.T) {
	s := NewStore()
	s.SeedRoles("USER")

	for _, email := range []string{"b@x.com", "a@x.com", "c@x.com"} {
		u := &auth.User{Email: email, PasswordHash: "hash"}
		require.NoError(t, s.CreateUser(context.Background(), u, []int64{1}))
	}

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "b@x.com", users[0].Email)
	assert.Equal(t, "a@x.com", users[1].Email)
	assert.Equal(t, "c@x.com", users[2].Email)
}
