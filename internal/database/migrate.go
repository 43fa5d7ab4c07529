package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/iliyamo/venue-booking/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every pending migration. It uses its own connection so
// closing the migrator does not close the application pool.
func Migrate(cfg config.DBConfig, logger *log.Logger) error {
	myCfg, err := mysql.ParseDSN(DSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to parse dsn: %w", err)
	}
	myCfg.MultiStatements = true

	db, err := sql.Open("mysql", myCfg.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, cfg.Name, driver)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("migrations complete", "version", version, "dirty", dirty)
	return nil
}
