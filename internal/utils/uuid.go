package utils

import "github.com/google/uuid"

// IDGenerator produces globally unique record identifiers.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator hands out time-ordered UUIDv7 ids so records created on
// different devices sort by creation time.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// NewTraceID returns a fresh random trace id.
func NewTraceID() string {
	return uuid.NewString()
}
