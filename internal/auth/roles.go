package auth

import "strings"

// CanonicalRoles flattens persisted role associations into the canonical
// role name list: order follows the persistence return order, duplicates and
// blank names are dropped.
func CanonicalRoles(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return dedupeNames(names)
}

// ResolveRoles returns the canonical role list for a stored user. A user
// with no resolvable roles is a configuration error, not a silent empty-role
// user: an authenticated user must always carry at least one role for
// authorization checks to be meaningful.
func ResolveRoles(u *User) ([]string, error) {
	names := CanonicalRoles(u.Roles)
	if len(names) == 0 {
		return nil, ErrInvalidRoles
	}
	return names, nil
}

func dedupeNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}
