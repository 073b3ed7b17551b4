package auth

// Allow decides access for a route restricted to allowedRoles: true iff the
// intersection of the payload's roles and allowedRoles is non-empty. A nil
// payload (unauthenticated caller) always denies. Matching is exact and
// case-sensitive. The decision is pure; callers map false to 403 and a nil
// payload to 401.
func Allow(payload *TokenPayload, allowedRoles ...string) bool {
	if payload == nil || len(allowedRoles) == 0 {
		return false
	}
	for _, role := range payload.Roles {
		for _, allowed := range allowedRoles {
			if role == allowed {
				return true
			}
		}
	}
	return false
}
