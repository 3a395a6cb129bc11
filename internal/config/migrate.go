package config

import (
	"database/sql"
	"errors"
	"fmt"

	"backoffice/internal/db"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// newMigrator opens a dedicated connection for dsn; closing the migrator
// closes that connection, never the shared pool.
func newMigrator(dsn string) (*migrate.Migrate, error) {
	source, err := iofs.New(db.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("could not open migrations: %w", err)
	}
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	driver, err := mysql.WithInstance(conn, &mysql.Config{})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("could not create migration driver: %w", err)
	}
	return withDriver(driver, func(d database.Driver) (*migrate.Migrate, error) {
		return migrate.NewWithInstance("iofs", source, "mysql", d)
	})
}

// withDriver builds a migrator on driver, closing driver if that fails.
func withDriver(driver database.Driver, build func(database.Driver) (*migrate.Migrate, error)) (*migrate.Migrate, error) {
	m, err := build(driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration.
func MigrateUp(dsn string) error {
	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// MigrateDown rolls back steps migrations.
func MigrateDown(dsn string, steps int) error {
	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	if steps < 1 {
		steps = 1
	}
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not roll back migrations: %w", err)
	}
	return nil
}
