// Package metadata implements the durable client storage: a string-keyed,
// string-valued store kept in the local SQLite database.
package metadata

import (
	"context"
)

// Repository is the key-value contract. Get reports a missing key with
// ok == false and a nil error; Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}

// Store is a Repository able to run a group of operations atomically.
type Store interface {
	Repository
	InTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
