// Package archive stores generated levels in SQLite or PostgreSQL so a seed
// that produced an interesting map can be looked up again.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/lawnchairsociety/towergen/internal/config"
	"github.com/lawnchairsociety/towergen/internal/logger"
)

// Archive wraps the connection pool and the dialect in use.
type Archive struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open connects using the archive section of the configuration and
// migrates the schema.
func Open(cfg config.ArchiveConfig) (*Archive, error) {
	switch DialectType(cfg.Driver) {
	case DialectPostgres:
		return OpenPostgres(cfg.Postgres)
	case DialectSQLite, "":
		return OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown archive driver %q", cfg.Driver)
	}
}

// OpenSQLite opens or creates the SQLite archive at path.
func OpenSQLite(path string) (*Archive, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	dialect := NewDialect(DialectSQLite)
	db, err := sql.Open(dialect.DriverName(), path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return setup(db, dialect)
}

// OpenPostgres connects to a PostgreSQL archive and applies the pool limits.
func OpenPostgres(pg config.PostgresConfig) (*Archive, error) {
	dialect := NewDialect(DialectPostgres)

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.User, pg.Password, pg.Database, pg.SSLMode,
	)
	db, err := sql.Open(dialect.DriverName(), connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	if pg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pg.MaxOpenConns)
	}
	if pg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pg.MaxIdleConns)
	}
	if pg.ConnMaxLifetimeSeconds > 0 {
		db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifetimeSeconds) * time.Second)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	logger.Info("Connected to level archive", "driver", "postgres", "host", pg.Host, "database", pg.Database)
	return setup(db, dialect)
}

func setup(db *sql.DB, dialect Dialect) (*Archive, error) {
	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize archive (%s): %w", stmt, err)
		}
	}

	a := &Archive{
		db:      db,
		dialect: dialect,
		qb:      NewQueryBuilder(dialect),
	}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return a, nil
}

// Close closes the connection pool.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Dialect returns the dialect in use
func (a *Archive) Dialect() Dialect {
	return a.dialect
}

func (a *Archive) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS levels (
			id ` + a.dialect.SerialPrimaryKey() + `,
			fingerprint TEXT UNIQUE NOT NULL,
			depth INTEGER NOT NULL,
			seed BIGINT NOT NULL,
			attempt INTEGER NOT NULL DEFAULT 0,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			start_x INTEGER NOT NULL,
			start_y INTEGER NOT NULL,
			exit_x INTEGER NOT NULL,
			exit_y INTEGER NOT NULL,
			tiles TEXT NOT NULL,
			spawns TEXT NOT NULL DEFAULT '[]',
			stages TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_levels_depth ON levels(depth)`,
		`CREATE INDEX IF NOT EXISTS idx_levels_depth_seed ON levels(depth, seed)`,
	}

	for _, m := range migrations {
		if _, err := a.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
