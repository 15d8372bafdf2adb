package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "api.conf")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `[api]
listen_port: 8080
`)

	if err := Load(path); err != nil {
		t.Fatalf("Load returned %v", err)
	}

	if ConfigInt64s[ListenPort] != 8080 {
		t.Errorf("listen_port = %d should be 8080", ConfigInt64s[ListenPort])
	}
	if ConfigInt64s[CacheMax] != 100 {
		t.Errorf("cache_max = %d should default to 100", ConfigInt64s[CacheMax])
	}
	if ConfigInt64s[CacheMaxAge] != 86400000 {
		t.Errorf("cache_max_age = %d should default to 86400000", ConfigInt64s[CacheMaxAge])
	}
	if ConfigStrings[ResolverBackend] != ResolverPostgres {
		t.Errorf("resolver_backend = %q should default to postgres", ConfigStrings[ResolverBackend])
	}
	if ConfigStrings[CacheBackend] != CacheMemory {
		t.Errorf("cache_backend = %q should default to memory", ConfigStrings[CacheBackend])
	}
	if ConfigStrings[SweepSchedule] != "" {
		t.Errorf("sweep_schedule = %q should default to empty", ConfigStrings[SweepSchedule])
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `[api]
listen_port: 9000
resolver_backend: gateway
gateway_url: https://gateway.example/ens
cache_backend: memcached
cache_max: 500
cache_max_age: 60000
memcached_host: cache.internal
sweep_schedule: @every 5m
`)

	if err := Load(path); err != nil {
		t.Fatalf("Load returned %v", err)
	}

	if ConfigStrings[GatewayURL] != "https://gateway.example/ens" {
		t.Errorf("gateway_url = %q", ConfigStrings[GatewayURL])
	}
	if ConfigInt64s[CacheMax] != 500 || ConfigInt64s[CacheMaxAge] != 60000 {
		t.Errorf("cache_max = %d, cache_max_age = %d", ConfigInt64s[CacheMax], ConfigInt64s[CacheMaxAge])
	}
	if ConfigStrings[MemcachedHost] != "cache.internal" {
		t.Errorf("memcached_host = %q", ConfigStrings[MemcachedHost])
	}
	if ConfigInt64s[MemcachedPort] != 11211 {
		t.Errorf("memcached_port = %d should default to 11211", ConfigInt64s[MemcachedPort])
	}
	if ConfigStrings[SweepSchedule] != "@every 5m" {
		t.Errorf("sweep_schedule = %q", ConfigStrings[SweepSchedule])
	}
}

func TestLoadRejects(t *testing.T) {
	bodies := map[string]string{
		"missing port":     "[api]\ncache_max: 10\n",
		"bad port":         "[api]\nlisten_port: eighty\n",
		"zero max":         "[api]\nlisten_port: 80\ncache_max: 0\n",
		"negative max age": "[api]\nlisten_port: 80\ncache_max_age: -1\n",
		"unknown resolver": "[api]\nlisten_port: 80\nresolver_backend: dns\n",
		"gateway no url":   "[api]\nlisten_port: 80\nresolver_backend: gateway\n",
		"unknown cache":    "[api]\nlisten_port: 80\ncache_backend: redis\n",
	}

	for name, body := range bodies {
		if err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: Load should return an error", name)
		}
	}

	if err := Load(filepath.Join(t.TempDir(), "absent.conf")); err == nil {
		t.Error("Load of a missing file should return an error")
	}
}
