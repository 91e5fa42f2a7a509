package hospital

import (
	"strconv"

	"github.com/eshaffer321/hospitalnav-go/internal/session"
	"github.com/pkg/errors"
)

// Storage is the key/value store holding the session token and the mock flag
type Storage = session.Store

// NewMemoryStorage returns a Storage that lives as long as the process
func NewMemoryStorage() Storage {
	return session.NewMemoryStore()
}

// NewFileStorage returns a Storage persisted as JSON at path
func NewFileStorage(path string) Storage {
	return session.NewFileStore(path)
}

// SetMockMode persists the mock mode flag. It takes effect for clients
// created afterwards.
func SetMockMode(storage Storage, enabled bool) error {
	if err := storage.Set(MockModeKey, strconv.FormatBool(enabled)); err != nil {
		return errors.Wrap(err, "failed to store mock mode")
	}
	return nil
}

// MockModeEnabled reads the persisted mock mode flag; anything but "true" is off
func MockModeEnabled(storage Storage) (bool, error) {
	value, err := storage.Get(MockModeKey)
	if err != nil {
		return false, errors.Wrap(err, "failed to read mock mode")
	}
	return value == "true", nil
}
