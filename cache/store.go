package cache

import (
	"time"

	e "github.com/microcosm-cc/ensresolver/errors"
)

const (
	// DefaultMax is the number of entries held before eviction starts
	DefaultMax int = 100

	// DefaultMaxAge is how long an entry lives when Set is not given a TTL
	DefaultMaxAge time.Duration = 24 * time.Hour
)

// Store is the contract every cache backend satisfies. None of the
// operations fail: a backend that cannot reach its storage behaves as if the
// key were absent.
type Store interface {
	// Get returns the value and true, or false if the key is absent or
	// expired. An expired entry is removed.
	Get(key string) (string, bool)

	// Set writes key with an expiry of now plus ttl. Any ttl that is zero or
	// negative means "no override": the entry gets the store's configured
	// maximum age, so a zero ttl can never be used to request immediate
	// expiry. Configure MaxAge as 0 for that.
	Set(key string, value string, ttl time.Duration)

	// Delete removes key if present.
	Delete(key string)

	// Clear removes every entry.
	Clear()
}

// Sweeper is implemented by stores that can proactively drop expired entries.
type Sweeper interface {
	Sweep() int
}

// Options bounds a store. Options are fixed once the store is constructed.
type Options struct {
	Max    int
	MaxAge time.Duration
}

// DefaultOptions returns {Max: 100, MaxAge: 24h}
func DefaultOptions() Options {
	return Options{Max: DefaultMax, MaxAge: DefaultMaxAge}
}

// Validate rejects a non-positive Max or negative MaxAge
func (o Options) Validate() error {
	if o.Max <= 0 {
		return e.New("", "cache.Options", e.InvalidConfiguration,
			"cache max must be a positive number of entries")
	}
	if o.MaxAge < 0 {
		return e.New("", "cache.Options", e.InvalidConfiguration,
			"cache max age must not be negative")
	}
	return nil
}

// Backend selects the store a resolver uses: either a default store built
// from Options, or a store supplied by the caller.
type Backend struct {
	provided bool
	store    Store
	options  Options
}

// Default selects a MemoryStore built from opts
func Default(opts Options) Backend {
	return Backend{options: opts}
}

// Provided selects an existing store, e.g. a MemcacheStore
func Provided(s Store) Backend {
	return Backend{provided: true, store: s}
}

// Open returns the selected store, constructing it when necessary
func (b Backend) Open() (Store, error) {
	if b.provided {
		if b.store == nil {
			return nil, e.New("", "cache.Backend", e.InvalidConfiguration,
				"provided cache store is nil")
		}
		return b.store, nil
	}

	s, err := New(b.options)
	if err != nil {
		return nil, err
	}
	return s, nil
}
