package utils

import "github.com/google/uuid"

// IDGenerator produces identifiers for runs and requests.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// FixedIDGenerator always returns ID, for tests.
type FixedIDGenerator struct {
	ID string
}

func (f FixedIDGenerator) NewID() string {
	return f.ID
}
