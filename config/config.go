package config

import (
	"fmt"
	"strconv"

	"github.com/robfig/config"
)

// ConfigFilePath is the default path to the config file
const ConfigFilePath string = "/etc/ensresolver/api.conf"

// APISection is the [api] section of the config file
const APISection string = "api"

// Config file keys
const (
	ListenPort = "listen_port"

	ResolverBackend = "resolver_backend"

	DatabaseHost     = "database_host"
	DatabasePort     = "database_port"
	DatabaseName     = "database_database"
	DatabaseUsername = "database_username"
	DatabasePassword = "database_password"

	GatewayURL          = "gateway_url"
	GatewayClientID     = "gateway_client_id"
	GatewayClientSecret = "gateway_client_secret"
	GatewayTokenURL     = "gateway_token_url"

	CacheBackend = "cache_backend"
	CacheMax     = "cache_max"
	CacheMaxAge  = "cache_max_age" // milliseconds

	MemcachedHost = "memcached_host"
	MemcachedPort = "memcached_port"

	SweepSchedule = "sweep_schedule"
)

// Values for ResolverBackend
const (
	ResolverPostgres = "postgres"
	ResolverGateway  = "gateway"
)

// Values for CacheBackend
const (
	CacheMemory    = "memory"
	CacheMemcached = "memcached"
)

var configRequiredInt64s = []string{
	ListenPort,
}

var configDefaultStrings = map[string]string{
	ResolverBackend:     ResolverPostgres,
	CacheBackend:        CacheMemory,
	DatabaseHost:        "localhost",
	DatabaseName:        "ens",
	DatabaseUsername:    "ens",
	DatabasePassword:    "",
	GatewayURL:          "",
	GatewayClientID:     "",
	GatewayClientSecret: "",
	GatewayTokenURL:     "",
	MemcachedHost:       "localhost",
	SweepSchedule:       "",
}

var configDefaultInt64s = map[string]int64{
	DatabasePort:  5432,
	CacheMax:      100,
	CacheMaxAge:   1000 * 60 * 60 * 24, // 24 hours
	MemcachedPort: 11211,
}

// ConfigStrings contains the string values for the given config keys
var ConfigStrings = map[string]string{}

// ConfigInt64s contains the int64 values for the given config keys
var ConfigInt64s = map[string]int64{}

// Load reads the config file at path into ConfigStrings and ConfigInt64s,
// applying defaults for optional keys. It is the responsibility of main to
// call this before anything reads the maps.
func Load(path string) error {
	c, err := config.ReadDefault(path)
	if err != nil {
		return err
	}

	strs := map[string]string{}
	ints := map[string]int64{}

	for _, key := range configRequiredInt64s {
		ii, err := readInt64(c, key)
		if err != nil {
			return err
		}
		ints[key] = ii
	}

	for key, def := range configDefaultStrings {
		strs[key] = def
		if !c.HasOption(APISection, key) {
			continue
		}
		s, err := c.String(APISection, key)
		if err != nil {
			return err
		}
		strs[key] = s
	}

	for key, def := range configDefaultInt64s {
		ints[key] = def
		if !c.HasOption(APISection, key) {
			continue
		}
		ii, err := readInt64(c, key)
		if err != nil {
			return err
		}
		ints[key] = ii
	}

	if err := validate(strs, ints); err != nil {
		return err
	}

	ConfigStrings = strs
	ConfigInt64s = ints

	return nil
}

func readInt64(c *config.Config, key string) (int64, error) {
	s, err := c.String(APISection, key)
	if err != nil {
		return 0, err
	}

	ii, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, s)
	}
	return ii, nil
}

func validate(strs map[string]string, ints map[string]int64) error {
	switch strs[ResolverBackend] {
	case ResolverPostgres:
	case ResolverGateway:
		if strs[GatewayURL] == "" {
			return fmt.Errorf("%s is required when %s = %s",
				GatewayURL, ResolverBackend, ResolverGateway)
		}
	default:
		return fmt.Errorf("%s: unknown resolver %q", ResolverBackend, strs[ResolverBackend])
	}

	switch strs[CacheBackend] {
	case CacheMemory, CacheMemcached:
	default:
		return fmt.Errorf("%s: unknown cache %q", CacheBackend, strs[CacheBackend])
	}

	if ints[CacheMax] <= 0 {
		return fmt.Errorf("%s must be a positive number of entries", CacheMax)
	}
	if ints[CacheMaxAge] < 0 {
		return fmt.Errorf("%s must not be negative", CacheMaxAge)
	}

	return nil
}
