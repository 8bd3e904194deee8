// Package postgres persists the career in a single-row game_saves table,
// for deployments where the game state lives server side.
package postgres

import (
	"embed"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open connects with OTel query instrumentation enabled and verifies the
// connection with a ping.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName("benchboss"),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "connect postgres")
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	return db, nil
}

// Migrate applies the embedded schema migrations.
func Migrate(dbURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return crerr.Wrap(err, "open embedded migrations")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return crerr.Wrap(err, "create migrator")
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return crerr.Wrap(err, "apply migrations")
	}
	return nil
}
