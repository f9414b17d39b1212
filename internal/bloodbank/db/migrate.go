package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/bloodbank-services/internal/bloodbank/config"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies the embedded schema for driver. It opens its own handle and
// closes it when done.
func Migrate(driver, dsn string) error {
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("open %s database: %w", driver, err)
	}

	var (
		dbDriver database.Driver
		dir      string
	)
	switch driver {
	case config.DriverSQLite:
		dir = "migrations/sqlite3"
		dbDriver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	case config.DriverPostgres:
		dir = "migrations/postgres"
		dbDriver, err = migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	default:
		err = fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		_ = dbDriver.Close()
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		_ = src.Close()
		_ = dbDriver.Close()
		return fmt.Errorf("migration setup: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warnf("closing migrator: source=%v database=%v", srcErr, dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		log.Infof("schema at version %d (dirty=%v)", version, dirty)
	}
	return nil
}
