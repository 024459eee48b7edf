package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"shopcore-be/internal/config"
	"shopcore-be/internal/db"
)

func main() {
	mode := flag.String("mode", "up", "up applies pending migrations, down rolls back the last one")
	dir := flag.String("dir", "./migrations", "directory holding the .sql migration files")
	flag.Parse()

	cfg := config.LoadConfig()

	database := db.InitDB(cfg)
	defer database.Close()

	if err := run(database, *mode, *dir); err != nil {
		log.Fatal(err)
	}
}

func run(database *sql.DB, mode, dir string) error {
	if err := ensureVersionTable(database); err != nil {
		return err
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	switch mode {
	case "up":
		return migrateUp(database, files)
	case "down":
		return migrateDown(database, files)
	default:
		return fmt.Errorf("unknown mode %q, want up or down", mode)
	}
}

func ensureVersionTable(database *sql.DB) error {
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare schema_migrations: %w", err)
	}
	return nil
}

func migrateUp(database *sql.DB, files []string) error {
	applied := 0
	for _, file := range files {
		version := filepath.Base(file)

		var exists bool
		if err := database.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check %s: %w", version, err)
		}
		if exists {
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", version, err)
		}

		log.Printf("applying %s", version)
		if _, err := database.Exec(sectionSQL(string(content), "Up")); err != nil {
			return fmt.Errorf("migration %s failed: %w", version, err)
		}
		if _, err := database.Exec(
			`INSERT INTO schema_migrations (version) VALUES ($1)`, version,
		); err != nil {
			return fmt.Errorf("failed to record %s: %w", version, err)
		}
		applied++
	}

	log.Printf("done, %d migration(s) applied", applied)
	return nil
}

func migrateDown(database *sql.DB, files []string) error {
	var last string
	err := database.QueryRow(
		`SELECT version FROM schema_migrations ORDER BY applied_at DESC LIMIT 1`,
	).Scan(&last)
	if err == sql.ErrNoRows {
		log.Print("nothing to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find last applied migration: %w", err)
	}

	var path string
	for _, f := range files {
		if filepath.Base(f) == last {
			path = f
			break
		}
	}
	if path == "" {
		return fmt.Errorf("no migration file for applied version %s", last)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", last, err)
	}

	log.Printf("rolling back %s", last)
	if _, err := database.Exec(sectionSQL(string(content), "Down")); err != nil {
		return fmt.Errorf("rollback of %s failed: %w", last, err)
	}
	if _, err := database.Exec(
		`DELETE FROM schema_migrations WHERE version = $1`, last,
	); err != nil {
		return fmt.Errorf("failed to unrecord %s: %w", last, err)
	}

	return nil
}

// sectionSQL returns the statements between "-- +migrate <name>" and the
// next marker, or everything after the marker when it is the last section.
func sectionSQL(content, name string) string {
	marker := "-- +migrate " + name
	var b strings.Builder
	in := false

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, marker):
			in = true
		case in && strings.HasPrefix(line, "-- +migrate"):
			return b.String()
		case in:
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
