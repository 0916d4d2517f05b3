package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/danielerenburg1/address-checker/internal/db"
	"github.com/danielerenburg1/address-checker/internal/neighborhood"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_neighborhood": `INSERT INTO neighborhoods (id, name, coordinates, created_at) VALUES ($1, $2, $3, $4)`,
	"list_neighborhoods":  `SELECT id, name, coordinates, created_at FROM neighborhoods ORDER BY seq`,
	"get_neighborhood":    `SELECT id, name, coordinates, created_at FROM neighborhoods WHERE id = $1`,
	"delete_neighborhood": `DELETE FROM neighborhoods WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS neighborhoods (
	seq         BIGSERIAL PRIMARY KEY,
	id          TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL,
	coordinates JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_neighborhoods_name ON neighborhoods(name);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, n neighborhood.Neighborhood) (*neighborhood.Neighborhood, error) {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now().UTC()

	coords, err := json.Marshal(n.Polygon)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal coordinates")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO neighborhoods (id, name, coordinates, created_at) VALUES ($1, $2, $3, $4)`,
		n.ID, n.Name, coords, n.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert neighborhood")
	}
	return &n, nil
}

func (s *PostgresStore) List(ctx context.Context) (neighborhood.Set, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, coordinates, created_at FROM neighborhoods ORDER BY seq`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list neighborhoods")
	}
	defer rows.Close()

	var set neighborhood.Set
	for rows.Next() {
		var n neighborhood.Neighborhood
		var coords []byte
		if err := rows.Scan(&n.ID, &n.Name, &coords, &n.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan neighborhood")
		}
		if err := json.Unmarshal(coords, &n.Polygon); err != nil {
			return nil, eris.Wrap(err, "postgres: parse coordinates")
		}
		set = append(set, n)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate neighborhoods")
	}
	return set, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*neighborhood.Neighborhood, error) {
	var n neighborhood.Neighborhood
	var coords []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, coordinates, created_at FROM neighborhoods WHERE id = $1`, id,
	).Scan(&n.ID, &n.Name, &coords, &n.CreatedAt)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "id %s", id)
		}
		return nil, eris.Wrap(err, "postgres: get neighborhood")
	}
	if err := json.Unmarshal(coords, &n.Polygon); err != nil {
		return nil, eris.Wrap(err, "postgres: parse coordinates")
	}
	return &n, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM neighborhoods WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete neighborhood %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "id %s", id)
	}
	return nil
}
