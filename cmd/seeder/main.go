// Command seeder loads flashcard decks from JSON files into a user's
// collection.
//
// Usage:
//
//	seeder --dir ./decks --user-email recruit@example.com [--dry-run]
//
// Each JSON file in --dir is one deck: an ASVAB category plus its cards.
// With --dry-run the decks are parsed and counted but nothing is written.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	cardrepo "github.com/asvabprep/backend/internal/adapter/postgres/flashcard"
	userrepo "github.com/asvabprep/backend/internal/adapter/postgres/user"

	"github.com/asvabprep/backend/internal/adapter/postgres"
	"github.com/asvabprep/backend/internal/app"
	"github.com/asvabprep/backend/internal/config"
	"github.com/asvabprep/backend/internal/seeder"
)

func main() {
	var (
		dir    = flag.String("dir", "", "directory with deck JSON files")
		email  = flag.String("user-email", "", "email of the user to seed cards for")
		dryRun = flag.Bool("dry-run", false, "parse and count decks without writing")
	)
	flag.Parse()

	if *dir == "" || *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	s := seeder.New(
		logger,
		cardrepo.New(pool),
		userrepo.New(pool),
		postgres.NewTxManager(pool),
		cfg.SRS.DefaultEaseFactor,
		*dryRun,
	)

	count, err := s.Run(ctx, os.DirFS(*dir), *email)
	if err != nil {
		log.Fatalf("seed decks: %v", err)
	}

	if *dryRun {
		fmt.Printf("Dry run: %d cards across all decks.\n", count)
		return
	}
	fmt.Printf("Seeded %d cards for %s.\n", count, *email)
}
