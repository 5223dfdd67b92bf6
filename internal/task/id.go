package task

import "github.com/google/uuid"

// IDFunc generates a new task id.
type IDFunc func() (string, error)

// NewID returns a UUIDv7: a millisecond timestamp followed by random bits,
// so ids sort by creation time and do not collide under rapid creation.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
