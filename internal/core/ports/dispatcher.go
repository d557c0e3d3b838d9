package ports

import "context"

// Serializer runs fn only after every job previously submitted under the
// same key has finished, and returns fn's error.
type Serializer interface {
	Submit(ctx context.Context, key string, fn func(context.Context) error) error
}
