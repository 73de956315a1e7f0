package nanotasks

import (
	"github.com/google/uuid"
)

// maxIDAttempts bounds the re-draws when a candidate id is already taken
const maxIDAttempts = 8

// IDGenerator produces task identifiers.
// The default is a UUIDv7: a millisecond timestamp followed by random bits,
// so ids created in the same tick still differ.
type IDGenerator func() string

// NewID returns a UUIDv7 string, falling back to a random UUIDv4
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// uniqueID draws from gen until the result is not in taken
func uniqueID(gen IDGenerator, taken func(string) bool) string {
	for i := 0; i < maxIDAttempts; i++ {
		if id := gen(); id != "" && !taken(id) {
			return id
		}
	}
	// gen keeps colliding; a random UUID cannot realistically collide
	for {
		if id := uuid.New().String(); !taken(id) {
			return id
		}
	}
}
