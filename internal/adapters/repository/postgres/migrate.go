package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/vote/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

func Open(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

// Migrate applies every embedded up migration in file name order.
func Migrate(ctx context.Context, db *sql.DB) error {
	entries, err := fs.ReadDir(migrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if err := applyMigration(ctx, db, name); err != nil {
			return err
		}
	}
	return nil
}

// MigrateNamed applies the single embedded migration whose file name ends
// with name + ".sql", e.g. "create_vote_queue.down".
func MigrateNamed(ctx context.Context, db *sql.DB, name string) error {
	file, err := migrationFile(name)
	if err != nil {
		return err
	}
	return applyMigration(ctx, db, file)
}

func applyMigration(ctx context.Context, db *sql.DB, name string) error {
	content, err := migrations.ReadFile(migrationsDir + "/" + name)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", name, err)
	}
	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", name, err)
	}
	return nil
}

func migrationFile(name string) (string, error) {
	pattern := regexp.MustCompile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(name)))

	entries, err := fs.ReadDir(migrations, migrationsDir)
	if err != nil {
		return "", fmt.Errorf("failed to read migrations directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if pattern.MatchString(entry.Name()) {
			return entry.Name(), nil
		}
	}
	return "", fmt.Errorf("migration file not found: %s", name)
}
