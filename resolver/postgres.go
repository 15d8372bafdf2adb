package resolver

import (
	"context"
	"database/sql"

	e "github.com/microcosm-cc/ensresolver/errors"
)

// PostgresResolver resolves names from a table of previously imported ENS
// records:
//
//	CREATE TABLE ens_names (
//	    name    text PRIMARY KEY,
//	    address text NOT NULL
//	);
type PostgresResolver struct {
	db *sql.DB
}

// NewPostgresResolver returns a resolver reading from db
func NewPostgresResolver(db *sql.DB) *PostgresResolver {
	return &PostgresResolver{db: db}
}

// ResolveOnce looks the name up. A missing row is reported as NameNotFound so
// that the caching layer does not remember it.
func (r *PostgresResolver) ResolveOnce(ctx context.Context, name string) (string, error) {
	if r.db == nil {
		return "", e.New(name, "PostgresResolver.ResolveOnce", e.ResolutionFailed,
			"no database connection")
	}

	var address string
	err := r.db.QueryRowContext(ctx, `
SELECT address
  FROM ens_names
 WHERE name = $1`,
		name,
	).Scan(
		&address,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", e.New(name, "PostgresResolver.ResolveOnce", e.NameNotFound,
				"name is not registered")
		}
		return "", e.Wrap(name, "PostgresResolver.ResolveOnce", e.ResolutionFailed, err)
	}

	return address, nil
}
