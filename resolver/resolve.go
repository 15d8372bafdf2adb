package resolver

import (
	"context"
	"sync"

	"github.com/golang/glog"

	"github.com/microcosm-cc/ensresolver/cache"
	e "github.com/microcosm-cc/ensresolver/errors"
)

// Resolver performs a single, uncached lookup of a name to an address. It
// returns an error for any failure: network, unknown name, malformed input.
type Resolver interface {
	ResolveOnce(ctx context.Context, name string) (string, error)
}

// ResolverFunc adapts an ordinary function to a Resolver
type ResolverFunc func(ctx context.Context, name string) (string, error)

// ResolveOnce calls f(ctx, name)
func (f ResolverFunc) ResolveOnce(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// CachingResolver memoizes a linked Resolver through a cache.Store.
//
// Concurrent calls for the same uncached name each call the linked Resolver;
// the last to finish wins the cache write.
type CachingResolver struct {
	store cache.Store

	mu       sync.RWMutex
	resolver Resolver
}

// NewCaching opens the selected backend. The returned resolver cannot resolve
// anything until Link has been called.
func NewCaching(backend cache.Backend) (*CachingResolver, error) {
	store, err := backend.Open()
	if err != nil {
		return nil, err
	}

	return &CachingResolver{store: store}, nil
}

// Link attaches the Resolver used on cache misses, replacing any previous one
func (c *CachingResolver) Link(r Resolver) error {
	if r == nil {
		return e.New("", "Link", e.NotLinked, "cannot link a nil resolver")
	}

	c.mu.Lock()
	c.resolver = r
	c.mu.Unlock()

	return nil
}

// Store returns the cache in use
func (c *CachingResolver) Store() cache.Store {
	return c.store
}

// Resolve returns the address for name, from cache when possible.
//
// ok is false when no address could be obtained; the reason has been logged.
// An error is only returned when no Resolver has been linked.
func (c *CachingResolver) Resolve(
	ctx context.Context,
	name string,
) (
	string,
	bool,
	error,
) {
	c.mu.RLock()
	r := c.resolver
	c.mu.RUnlock()

	if r == nil {
		return "", false, e.New(name, "Resolve", e.NotLinked,
			"ENS resolver not initialised, link a resolver first")
	}

	key, err := Normalize(name)
	if err != nil {
		glog.Errorf("Failed to resolve ENS name: %s %+v", name, err)
		return "", false, nil
	}

	if address, ok := c.store.Get(key); ok && address != "" {
		if glog.V(3) {
			glog.Infof("cache hit for %s", key)
		}
		return address, true, nil
	}

	address, err := r.ResolveOnce(ctx, key)
	if err != nil {
		glog.Errorf("Failed to resolve ENS name: %s %+v", key, err)
		return "", false, nil
	}

	// Empty answers are returned but never cached
	if address != "" {
		c.store.Set(key, address, 0)
	}

	return address, true, nil
}

// Invalidate drops any cached address for name
func (c *CachingResolver) Invalidate(name string) error {
	key, err := Normalize(name)
	if err != nil {
		return err
	}

	c.store.Delete(key)
	return nil
}

// Purge drops every cached address
func (c *CachingResolver) Purge() {
	c.store.Clear()
}
