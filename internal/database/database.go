package database

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

type DB struct {
	conn   *sql.DB
	logger *log.Logger
}

// Open opens (creating if necessary) the SQLite cache database at path and
// brings its schema up to date. WAL mode plus a busy timeout let overlapping
// writers queue on the file lock instead of failing immediately.
func Open(path string, migrationsFS fs.FS, logger *log.Logger) (*DB, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(conn, migrationsFS, logger); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &DB{conn: conn, logger: logger}, nil
}

func runMigrations(conn *sql.DB, migrationsFS fs.FS, logger *log.Logger) error {
	driver, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	var m *migrate.Migrate

	if migrationsFS != nil {
		// Use embedded migrations
		d, err := iofs.New(migrationsFS, "migrations")
		if err != nil {
			return fmt.Errorf("could not create iofs source: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", d, "sqlite3", driver)
		if err != nil {
			return fmt.Errorf("could not create migrate instance: %w", err)
		}
	} else {
		// Fallback to file system (useful for dev without build)
		m, err = migrate.NewWithDatabaseInstance("file://db/migrations", "sqlite3", driver)
		if err != nil {
			return fmt.Errorf("could not create migrate instance: %w", err)
		}
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("an error occurred while syncing the database: %w", err)
	}

	logger.Println("Database schema is up to date")
	return nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}
