package sqlite

import (
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/mattn/go-sqlite3"
)

// ApplyMigrations runs database migrations
func ApplyMigrations(sourceURL, dbPath string) {
	m, err := migrate.New(sourceURL, "sqlite3://"+dbPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}

	fmt.Println("Migrations applied successfully!")
}

func RollbackLastMigration(sourceURL, dbPath string) {
	m, err := migrate.New(sourceURL, "sqlite3://"+dbPath)
	if err != nil {
		log.Fatal("Failed to initialize migrations:", err)
	}

	if err := m.Steps(-1); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Failed to rollback migration:", err)
	}

	fmt.Println("Rolled back last migration successfully!")
}
