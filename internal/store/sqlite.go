package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/danielerenburg1/address-checker/internal/neighborhood"
	"github.com/danielerenburg1/address-checker/pkg/geocode"
)

// SQLiteStore implements Store using modernc.org/sqlite. It also hosts
// the geocode result cache.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS neighborhoods (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL,
	coordinates TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS geocode_cache (
	address_hash      TEXT PRIMARY KEY,
	latitude          REAL NOT NULL,
	longitude         REAL NOT NULL,
	formatted_address TEXT,
	quality           TEXT,
	matched           INTEGER NOT NULL,
	cached_at         DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_neighborhoods_name ON neighborhoods(name);
CREATE INDEX IF NOT EXISTS idx_geocode_cache_cached_at ON geocode_cache(cached_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Create(ctx context.Context, n neighborhood.Neighborhood) (*neighborhood.Neighborhood, error) {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now().UTC()

	coords, err := json.Marshal(n.Polygon)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal coordinates")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO neighborhoods (id, name, coordinates, created_at) VALUES (?, ?, ?, ?)`,
		n.ID, n.Name, string(coords), n.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert neighborhood")
	}
	return &n, nil
}

func (s *SQLiteStore) List(ctx context.Context) (neighborhood.Set, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, coordinates, created_at FROM neighborhoods ORDER BY seq`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list neighborhoods")
	}
	defer rows.Close()

	var set neighborhood.Set
	for rows.Next() {
		n, err := scanNeighborhood(rows.Scan)
		if err != nil {
			return nil, err
		}
		set = append(set, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate neighborhoods")
	}
	return set, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*neighborhood.Neighborhood, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, coordinates, created_at FROM neighborhoods WHERE id = ?`, id,
	)
	n, err := scanNeighborhood(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "id %s", id)
		}
		return nil, err
	}
	return n, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM neighborhoods WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete neighborhood %s", id)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if affected == 0 {
		return eris.Wrapf(ErrNotFound, "id %s", id)
	}
	return nil
}

// scanNeighborhood reads one neighborhood row via the given Scan func.
func scanNeighborhood(scan func(...any) error) (*neighborhood.Neighborhood, error) {
	var n neighborhood.Neighborhood
	var coords string
	if err := scan(&n.ID, &n.Name, &coords, &n.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, eris.Wrap(err, "sqlite: scan neighborhood")
	}
	if err := json.Unmarshal([]byte(coords), &n.Polygon); err != nil {
		return nil, eris.Wrap(err, "sqlite: parse coordinates")
	}
	return &n, nil
}

// GeocodeCache returns a geocode.Cache backed by this database. Entries
// older than ttlDays are treated as misses; ttlDays <= 0 disables expiry.
func (s *SQLiteStore) GeocodeCache(ttlDays int) geocode.Cache {
	return &sqliteGeocodeCache{db: s.db, ttlDays: ttlDays}
}

type sqliteGeocodeCache struct {
	db      *sql.DB
	ttlDays int
}

func (c *sqliteGeocodeCache) Get(ctx context.Context, key string) (*geocode.Result, error) {
	query := `SELECT latitude, longitude, formatted_address, quality, matched FROM geocode_cache WHERE address_hash = ?`
	args := []any{key}
	if c.ttlDays > 0 {
		query += ` AND cached_at > datetime('now', ?)`
		args = append(args, fmt.Sprintf("-%d days", c.ttlDays))
	}

	var r geocode.Result
	var formatted, quality sql.NullString
	err := c.db.QueryRowContext(ctx, query, args...).
		Scan(&r.Latitude, &r.Longitude, &formatted, &quality, &r.Matched)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "sqlite: geocode cache lookup")
	}
	r.FormattedAddress = formatted.String
	r.Quality = quality.String
	r.Source = "google"
	return &r, nil
}

func (c *sqliteGeocodeCache) Put(ctx context.Context, key string, result *geocode.Result) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO geocode_cache (address_hash, latitude, longitude, formatted_address, quality, matched, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT (address_hash) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			formatted_address = excluded.formatted_address,
			quality = excluded.quality,
			matched = excluded.matched,
			cached_at = datetime('now')`,
		key, result.Latitude, result.Longitude, result.FormattedAddress, result.Quality, result.Matched,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: geocode cache store")
	}
	return nil
}
