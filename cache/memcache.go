package cache

import (
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/golang/glog"
)

// KeyPrefix namespaces our keys on a memcached that may be shared with other
// applications
const KeyPrefix string = "ens_"

// HashedKeyPrefix is used instead of KeyPrefix for keys that had to be hashed.
// The two prefixes differ before either ends, so a hashed key never equals a
// plain one.
const HashedKeyPrefix string = "ensh_"

// memcached rejects keys longer than this
const maxKeyLength int = 250

// memcacheClient is the subset of *memcache.Client used by MemcacheStore
type memcacheClient interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
	DeleteAll() error
}

// MemcacheStore is a Store backed by memcached. Capacity is memcached's
// concern; MaxAge is only used as the default TTL.
type MemcacheStore struct {
	mc     memcacheClient
	maxAge time.Duration
}

// NewMemcacheStore creates the memcache client. The connection is made lazily
// by the client on first use.
func NewMemcacheStore(host string, port int64, maxAge time.Duration) (*MemcacheStore, error) {
	opts := Options{Max: DefaultMax, MaxAge: maxAge}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &MemcacheStore{
		mc:     memcache.New(fmt.Sprintf("%s:%d", host, port)),
		maxAge: maxAge,
	}, nil
}

// Get gets the value for the given key, if it is in the cache
func (s *MemcacheStore) Get(key string) (string, bool) {
	item, err := s.mc.Get(memcacheKey(key))
	if err != nil {
		// Cache misses are expected, but other errors are logged.
		if err != memcache.ErrCacheMiss {
			glog.Warningf("mc.Get(key) %+v", err)
		}
		return "", false
	}

	value, err := decodeString(item.Value)
	if err != nil {
		glog.Errorf("decodeString(item.Value) %+v", err)
		return "", false
	}

	return value, true
}

// Set puts the given value into the cache
func (s *MemcacheStore) Set(key string, value string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.maxAge
	}

	data, err := encodeString(value)
	if err != nil {
		glog.Errorf("encodeString(value) %+v", err)
		return
	}

	err = s.mc.Set(
		&memcache.Item{
			Key:        memcacheKey(key),
			Value:      data,
			Expiration: expirationSeconds(ttl),
		},
	)
	if err != nil {
		glog.Errorf("mc.Set() %+v", err)
		return
	}
}

// Delete removes the given key from the cache, if it is in the cache
func (s *MemcacheStore) Delete(key string) {
	err := s.mc.Delete(memcacheKey(key))
	if err != nil && err != memcache.ErrCacheMiss {
		glog.Warningf("mc.Delete(key) %+v", err)
	}
}

// Clear flushes the whole memcached, not just our prefix
func (s *MemcacheStore) Clear() {
	if err := s.mc.DeleteAll(); err != nil {
		glog.Warningf("mc.DeleteAll() %+v", err)
	}
}

// expirationSeconds rounds up to memcached's one second granularity. Values
// beyond 30 days are interpreted by memcached as a unix timestamp, so those
// are converted to one.
func expirationSeconds(ttl time.Duration) int32 {
	secs := int64(ttl / time.Second)
	if ttl%time.Second != 0 {
		secs++
	}
	if secs < 1 {
		secs = 1
	}

	const thirtyDays int64 = 60 * 60 * 24 * 30
	if secs > thirtyDays {
		return int32(time.Now().Unix() + secs)
	}
	return int32(secs)
}
