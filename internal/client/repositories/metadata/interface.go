// Package metadata is the durable key/value store behind the client session.
package metadata

import (
	"context"
)

// Repository stores small string values by key. List returns every entry;
// an absent key is simply missing from the map.
type Repository interface {
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
