package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vncsmyrnk/vote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/vote/internal/config"
)

// Usage: migrations [name]
//
// Without a name every up migration is applied. With a name only the file
// ending in <name>.sql runs, e.g. "create_vote_queue.down".
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if len(os.Args) < 2 {
		err = postgres.Migrate(ctx, db)
	} else {
		err = postgres.MigrateNamed(ctx, db, os.Args[1])
	}
	if err != nil {
		log.Fatalf("Failed to execute migration: %v", err)
	}

	fmt.Println("Migration executed successfully.")
}
