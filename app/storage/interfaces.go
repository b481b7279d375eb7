package storage

import "context"

// Repository is the local storage area: one JSON document per key, each write
// overwriting the whole value.
type Repository interface {
	// Get decodes the value under key into dest, or returns models.ErrRecordNotFound.
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	// Delete removes key. Removing a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}
