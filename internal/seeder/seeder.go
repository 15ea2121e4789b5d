package seeder

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/google/uuid"

	"github.com/asvabprep/backend/internal/domain"
)

// cardRepo is the flashcard repository surface the seeder needs.
type cardRepo interface {
	Create(ctx context.Context, card *domain.Flashcard) (*domain.Flashcard, error)
}

// userRepo resolves the target user by email.
type userRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// txManager runs each deck in its own transaction.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Seeder inserts deck cards for one user.
type Seeder struct {
	log   *slog.Logger
	cards cardRepo
	users userRepo
	tx    txManager

	defaultEase float64
	dryRun      bool
}

// New creates a Seeder. When dryRun is set, decks are parsed and counted but
// nothing is written.
func New(logger *slog.Logger, cards cardRepo, users userRepo, tx txManager, defaultEase float64, dryRun bool) *Seeder {
	return &Seeder{
		log:         logger.With("service", "seeder"),
		cards:       cards,
		users:       users,
		tx:          tx,
		defaultEase: defaultEase,
		dryRun:      dryRun,
	}
}

// Run loads all decks from fsys and inserts their cards for the user with
// the given email. Each deck is one transaction, so a bad deck does not
// leave half its cards behind.
func (s *Seeder) Run(ctx context.Context, fsys fs.FS, email string) (int, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("resolve user %s: %w", email, err)
	}

	decks, err := LoadDecks(fsys)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, deck := range decks {
		if s.dryRun {
			total += len(deck.Cards)
			s.log.InfoContext(ctx, "dry run: deck parsed",
				slog.String("category", deck.Category),
				slog.Int("cards", len(deck.Cards)))
			continue
		}

		if err := s.seedDeck(ctx, user.ID, deck); err != nil {
			return total, fmt.Errorf("seed deck %s: %w", deck.Category, err)
		}
		total += len(deck.Cards)
		s.log.InfoContext(ctx, "deck seeded",
			slog.String("category", deck.Category),
			slog.Int("cards", len(deck.Cards)))
	}

	return total, nil
}

func (s *Seeder) seedDeck(ctx context.Context, userID uuid.UUID, deck *Deck) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, dc := range deck.Cards {
			difficulty := domain.DifficultyTier(dc.Difficulty)
			if dc.Difficulty == "" {
				difficulty = domain.DifficultyMedium
			}

			_, err := s.cards.Create(ctx, &domain.Flashcard{
				UserID:     userID,
				Category:   domain.AsvabCategory(deck.Category),
				Front:      dc.Front,
				Back:       dc.Back,
				Difficulty: difficulty,
				Status:     domain.CardStatusNew,
				EaseFactor: s.defaultEase,
			})
			if err != nil {
				return fmt.Errorf("create card %q: %w", dc.Front, err)
			}
		}
		return nil
	})
}
