package cache

import (
	"testing"
	"time"

	e "github.com/microcosm-cc/ensresolver/errors"
)

type stubStore struct {
	values map[string]string
}

func (s *stubStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *stubStore) Set(key string, value string, ttl time.Duration) {
	s.values[key] = value
}

func (s *stubStore) Delete(key string) { delete(s.values, key) }

func (s *stubStore) Clear() { s.values = map[string]string{} }

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Max != 100 {
		t.Errorf("DefaultOptions().Max = %d should be 100", opts.Max)
	}
	if opts.MaxAge != 86400000*time.Millisecond {
		t.Errorf("DefaultOptions().MaxAge = %s should be 24h", opts.MaxAge)
	}
}

func TestBackendDefault(t *testing.T) {
	store, err := Default(Options{Max: 2, MaxAge: time.Minute}).Open()
	if err != nil {
		t.Fatalf("Open() returned %v", err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Errorf("Open() = %T should be *MemoryStore", store)
	}
}

func TestBackendDefaultInvalid(t *testing.T) {
	_, err := Default(Options{Max: 0}).Open()
	if !e.HasCode(err, e.InvalidConfiguration) {
		t.Errorf("Open() with Max 0 = %v should be InvalidConfiguration", err)
	}
}

func TestBackendProvided(t *testing.T) {
	stub := &stubStore{values: map[string]string{"k": "v"}}

	store, err := Provided(stub).Open()
	if err != nil {
		t.Fatalf("Open() returned %v", err)
	}
	if v, ok := store.Get("k"); !ok || v != "v" {
		t.Errorf("provided store Get(k) = %q, %v", v, ok)
	}
}

func TestBackendProvidedNil(t *testing.T) {
	_, err := Provided(nil).Open()
	if !e.HasCode(err, e.InvalidConfiguration) {
		t.Errorf("Provided(nil).Open() = %v should be InvalidConfiguration", err)
	}
}

func TestMemoryStoreImplementsSweeper(t *testing.T) {
	var store Store
	store, _ = New(DefaultOptions())
	if _, ok := store.(Sweeper); !ok {
		t.Error("*MemoryStore should implement Sweeper")
	}
}
