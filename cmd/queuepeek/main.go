package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/vncsmyrnk/vote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/vote/internal/adapters/repository/redis"
	"github.com/vncsmyrnk/vote/internal/config"
	"github.com/vncsmyrnk/vote/internal/core/ports"
)

// queuepeek prints queued vote records as JSON lines without consuming them.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var backend string
	var start, stop int64
	flag.StringVar(&backend, "backend", cfg.Queue.Backend, "Queue backend (redis or postgres)")
	flag.Int64Var(&start, "start", 0, "First index to print")
	flag.Int64Var(&stop, "stop", -1, "Last index to print, negative counts from the tail")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var queue ports.VoteQueue
	switch backend {
	case config.QueueBackendPostgres:
		var db *sql.DB
		db, err = postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			log.Fatal(err)
		}
		queue = postgres.NewVoteQueue(db)
	case config.QueueBackendRedis:
		queue = redis.NewVoteQueue(redis.NewClient(cfg.Redis, cfg.Queue.Timeout), cfg.Queue.Key)
	default:
		log.Fatalf("unsupported queue backend %q", backend)
	}
	defer queue.Close()

	votes, err := queue.Range(ctx, start, stop)
	if err != nil {
		log.Fatalf("Error reading votes: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, vote := range votes {
		if err := enc.Encode(vote); err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("%d vote(s) on the queue", len(votes))
}
