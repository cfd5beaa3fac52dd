// Package gist persists rendered snippets.
//
// A gist is created for every inline query so the rendered image can be
// served by URL. It starts out ephemeral: unless the user sends it or saves
// it, the Sweeper (or the backend's own expiry) deletes it after the
// retention period.
//
// Three backends implement Store: MemoryStore for tests and single-process
// deployments, RedisStore and MongoStore for persistence across restarts.
package gist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for gist operations.
var (
	// ErrNotFound is returned when a requested gist does not exist.
	ErrNotFound = errors.New("gist: not found")

	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("gist: unknown driver")
)

// Gist is a stored snippet and its rendered image.
type Gist struct {
	ID        string
	Source    string
	Hint      string
	Syntax    string
	PNG       []byte
	Ephemeral bool
	CreatedAt time.Time
}

// Store persists gists. Implementations are safe for concurrent use.
type Store interface {
	// Put stores g, replacing any gist with the same ID.
	Put(ctx context.Context, g *Gist) error

	// Get returns the gist with id or ErrNotFound.
	Get(ctx context.Context, id string) (*Gist, error)

	// SetEphemeral marks or unmarks a gist for expiry.
	// Returns ErrNotFound if id does not exist.
	SetEphemeral(ctx context.Context, id string, ephemeral bool) error

	// DeleteExpired removes ephemeral gists created before cutoff and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)

	// Close releases backend connections.
	Close() error
}

// NewID returns a new random gist identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the form NewID produces.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// Config selects and configures a Store backend.
type Config struct {
	// Driver is "memory", "redis" or "mongo".
	Driver string

	// Retention is how long ephemeral gists live.
	Retention time.Duration

	RedisURL      string
	MongoURI      string
	MongoDatabase string
}

// Open connects to the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(ctx, cfg.RedisURL, cfg.Retention)
	case "mongo":
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// clone returns a deep copy of g.
func clone(g *Gist) *Gist {
	c := *g
	c.PNG = append([]byte(nil), g.PNG...)
	return &c
}
