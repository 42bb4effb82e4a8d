package service

import (
	"time"

	"github.com/google/uuid"
)

// Clock produces every timestamp in the service layer, injected so tests
// can pin time.
type Clock interface {
	Now() time.Time
}

type utcClock struct{}

// NewClock returns a Clock backed by the system time, in UTC.
func NewClock() Clock {
	return utcClock{}
}

func (utcClock) Now() time.Time {
	return time.Now().UTC()
}

// IDGenerator is the opaque unique-ID source for users, workouts, shared
// workouts and catalog exercises.
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

// NewIDGenerator returns an IDGenerator backed by random UUIDs.
func NewIDGenerator() IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}
