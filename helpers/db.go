package helpers

import (
	"database/sql"
	"fmt"
	"strings"

	// Registers the "postgres" driver
	_ "github.com/lib/pq"
)

// DBConfig stores the connection information used by OpenDB to establish a
// connection to the database
type DBConfig struct {
	Host     string
	Port     int64
	Database string
	Username string
	Password string
	SSLMode  string
}

// DSN renders the config as a lib/pq connection string. Every value is
// single-quoted so that an empty value, or one containing spaces, cannot
// swallow the key that follows it.
func (c DBConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"user=%s dbname=%s host=%s port=%d password=%s sslmode=%s",
		quoteDSNValue(c.Username),
		quoteDSNValue(c.Database),
		quoteDSNValue(c.Host),
		c.Port,
		quoteDSNValue(c.Password),
		quoteDSNValue(sslMode),
	)
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteDSNValue wraps v in single quotes, backslash-escaping \ and '
func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

// OpenDB establishes the connection pool and checks the database is reachable
func OpenDB(c DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", c.DSN())
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %v", err)
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, err
	}

	// Lookups are short single-row reads, a small pool is plenty and leaves
	// room under PostgreSQL's connection limit for other clients
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)

	return db, nil
}
