package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// storeSchema is executed on every open; IF NOT EXISTS keeps it idempotent.
const storeSchema = `
CREATE TABLE IF NOT EXISTS species (
    number     INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    types      TEXT NOT NULL DEFAULT '',
    evolves_to TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS forms (
    species    INTEGER NOT NULL REFERENCES species(number) ON DELETE CASCADE,
    position   INTEGER NOT NULL,
    name       TEXT NOT NULL,
    types      TEXT NOT NULL DEFAULT '',
    evolves_to TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (species, position),
    UNIQUE (species, name)
);

CREATE TABLE IF NOT EXISTS generations (
    label TEXT PRIMARY KEY,
    first INTEGER NOT NULL,
    last  INTEGER NOT NULL
);
`

// Store persists catalog snapshots in a local SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite database at path and creates the
// schema if needed. Missing parent directories are created.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("catalog store: create directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("catalog store: open database: %w", err)
	}
	// SQLite has a single writer; one connection keeps PRAGMAs consistent.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with c in a single transaction.
func (s *Store) Save(ctx context.Context, c *Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, table := range []string{"forms", "species", "generations"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("catalog store: clear %s: %w", table, err)
		}
	}

	speciesStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO species (number, name, types, evolves_to) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("catalog store: prepare species insert: %w", err)
	}
	defer speciesStmt.Close()

	formStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO forms (species, position, name, types, evolves_to) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("catalog store: prepare form insert: %w", err)
	}
	defer formStmt.Close()

	for _, sp := range c.order {
		if _, err := speciesStmt.ExecContext(ctx,
			sp.Number, sp.Name, strings.Join(sp.Types, " "), sp.EvolvesTo.String()); err != nil {
			return fmt.Errorf("catalog store: insert species %d: %w", sp.Number, err)
		}
		for i, f := range sp.Forms {
			if _, err := formStmt.ExecContext(ctx,
				sp.Number, i, f.Name, strings.Join(f.Types, " "), f.EvolvesTo.String()); err != nil {
				return fmt.Errorf("catalog store: insert form %d-%s: %w", sp.Number, f.Name, err)
			}
		}
	}

	for _, g := range c.generations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO generations (label, first, last) VALUES (?, ?, ?)`,
			g.Label, g.First, g.Last); err != nil {
			return fmt.Errorf("catalog store: insert generation %s: %w", g.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog store: commit: %w", err)
	}
	return nil
}

// Load rebuilds and revalidates the stored snapshot.
func (s *Store) Load(ctx context.Context) (*Catalog, error) {
	f := catalogFile{}
	index := make(map[int]int)

	rows, err := s.db.QueryContext(ctx,
		`SELECT number, name, types, evolves_to FROM species ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("catalog store: query species: %w", err)
	}
	for rows.Next() {
		var e speciesEntry
		var types string
		if err := rows.Scan(&e.Number, &e.Name, &types, &e.EvolvesTo); err != nil {
			rows.Close()
			return nil, fmt.Errorf("catalog store: scan species: %w", err)
		}
		e.Types = strings.Fields(types)
		index[e.Number] = len(f.Species)
		f.Species = append(f.Species, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("catalog store: iterate species: %w", err)
	}
	rows.Close()
	if len(f.Species) == 0 {
		return nil, fmt.Errorf("catalog store: %w; run `dexline store import`", ErrEmptySnapshot)
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT species, name, types, evolves_to FROM forms ORDER BY species, position`)
	if err != nil {
		return nil, fmt.Errorf("catalog store: query forms: %w", err)
	}
	for rows.Next() {
		var number int
		var fe formEntry
		var types string
		if err := rows.Scan(&number, &fe.Name, &types, &fe.EvolvesTo); err != nil {
			rows.Close()
			return nil, fmt.Errorf("catalog store: scan form: %w", err)
		}
		fe.Types = strings.Fields(types)
		i, ok := index[number]
		if !ok {
			rows.Close()
			return nil, fmt.Errorf("catalog store: form %q belongs to missing species %d", fe.Name, number)
		}
		f.Species[i].Forms = append(f.Species[i].Forms, fe)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("catalog store: iterate forms: %w", err)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `SELECT label, first, last FROM generations ORDER BY first`)
	if err != nil {
		return nil, fmt.Errorf("catalog store: query generations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var g generationEntry
		if err := rows.Scan(&g.Label, &g.First, &g.Last); err != nil {
			return nil, fmt.Errorf("catalog store: scan generation: %w", err)
		}
		f.Generations = append(f.Generations, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog store: iterate generations: %w", err)
	}

	return f.decode()
}
