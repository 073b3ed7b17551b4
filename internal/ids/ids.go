// Package ids generates request identifiers.
package ids

import "github.com/oklog/ulid/v2"

// NewRequestID returns a lexicographically sortable identifier used to tag
// requests in logs and audit events.
func NewRequestID() string {
	return ulid.Make().String()
}
