// Package store provides the flat key/value storage that saved layouts
// live in.
//
// Backends:
//   - file: one JSON file per key under a directory, for the CLI
//   - redis: a Redis database, for servers sharing layouts
//   - mongo: a MongoDB collection, for servers sharing layouts
//   - null: stores nothing
//
// Every backend treats a missing or expired key as a miss, never as an
// error. Wrap a store with [Instrument] to report reads and writes to the
// observability hooks.
package store

import (
	"context"
	"fmt"
	"time"
)

// Store is a flat key/value store.
type Store interface {
	// Get returns the value at key. A missing or expired key returns
	// hit == false and a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data at key. A ttl of zero keeps the value forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNull  = "null"
)

// Options selects and configures a backend.
type Options struct {
	Backend string

	Dir string

	RedisAddr   string
	RedisDB     int
	RedisPrefix string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open connects to the backend named in opts and instruments it. Network
// backends are pinged before Open returns.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		s   Store
		err error
	)
	switch opts.Backend {
	case BackendFile, "":
		s, err = openFile(opts.Dir)
	case BackendRedis:
		s, err = openRedis(ctx, opts)
	case BackendMongo:
		s, err = openMongo(ctx, opts)
	case BackendNull:
		s = NewNullStore()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(s, backendName(opts.Backend)), nil
}

func backendName(b string) string {
	if b == "" {
		return BackendFile
	}
	return b
}

func openFile(dir string) (Store, error) {
	s, err := NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openRedis(ctx context.Context, opts Options) (Store, error) {
	s, err := NewRedisStore(ctx, opts.RedisAddr, opts.RedisDB, opts.RedisPrefix)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openMongo(ctx context.Context, opts Options) (Store, error) {
	s, err := NewMongoStore(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
	if err != nil {
		return nil, err
	}
	return s, nil
}
