// Package uuid generates time-ordered identifiers for database rows.
package uuid

import googleuuid "github.com/google/uuid"

// New returns a UUIDv7 string. Time-ordered IDs keep freshly inserted rows
// adjacent in the primary key index, and give transaction rows a stable
// insertion-order tiebreak when two trades share the same timestamp.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Random source exhausted; fall back to a v4.
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
