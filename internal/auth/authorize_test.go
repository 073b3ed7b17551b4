package auth

import "testing"

func TestAllow(t *testing.T) {
	user := &TokenPayload{UserID: 1, Roles: []string{"USER"}}
	adminUser := &TokenPayload{UserID: 2, Roles: []string{"ADMIN", "USER"}}

	if Allow(user, "ADMIN") {
		t.Fatal("USER must not pass an ADMIN gate")
	}
	if !Allow(adminUser, "ADMIN") {
		t.Fatal("ADMIN+USER must pass an ADMIN gate")
	}
	if !Allow(user, "MODERATOR", "USER") {
		t.Fatal("USER must pass a MODERATOR|USER gate")
	}
	if Allow(nil, "USER") {
		t.Fatal("nil payload must always deny")
	}
	if Allow(user) {
		t.Fatal("empty allowed set must deny")
	}
}

func TestAllowIsCaseSensitive(t *testing.T) {
	user := &TokenPayload{UserID: 1, Roles: []string{"admin"}}
	if Allow(user, "ADMIN") {
		t.Fatal("role matching must be exact")
	}
}
