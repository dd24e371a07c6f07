package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // postgres driver
	_ "github.com/mattn/go-sqlite3"                      // sqlite3 driver
)

// Dialect is a supported SQL database
type Dialect string

// dialect constants
const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// DB is a database handle that knows its dialect
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open opens and pings the database
func Open(dialect Dialect, dsn string) (*DB, error) {
	switch dialect {
	case Postgres, SQLite:
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, err
	}

	if dialect == SQLite {
		// sqlite only allows a single writer
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// Migrate runs the migrations in migrationsPath, i.e., "file://sql/postgres"
func (d *DB) Migrate(migrationsPath string) error {
	logrus.WithField("migrationsPath", migrationsPath).WithField("dialect", d.Dialect).Info("running migrations")

	var driver database.Driver
	var err error
	switch d.Dialect {
	case Postgres:
		driver, err = postgres.WithInstance(d.DB, &postgres.Config{})
	case SQLite:
		driver, err = sqlite3.WithInstance(d.DB, &sqlite3.Config{})
	default:
		err = fmt.Errorf("unsupported dialect: %s", d.Dialect)
	}

	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, string(d.Dialect), driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Rebind converts "?" placeholders to the dialect's placeholders
func (d *DB) Rebind(query string) string {
	if d.Dialect != Postgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}
