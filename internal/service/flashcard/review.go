package flashcard

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/internal/service/flashcard/sm2"
	"github.com/asvabprep/backend/pkg/ctxutil"
)

// ReviewOutcome is the result returned to the client after a review.
type ReviewOutcome struct {
	Card     *domain.Flashcard
	Rating   int // the sanitized rating actually applied
	Mastered bool
}

// ReviewCard records a review and updates the card's spaced-repetition state.
// The rating is sanitized, never rejected: a review submission cannot fail
// scheduling because of an out-of-range rating.
func (s *Service) ReviewCard(ctx context.Context, input ReviewCardInput) (*ReviewOutcome, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	card, err := s.cards.GetByID(ctx, userID, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("get flashcard: %w", err)
	}

	// Snapshot state before review, for undo and first-review accounting.
	snapshot := &domain.CardSnapshot{
		Status:       card.Status,
		IntervalDays: card.IntervalDays,
		Repetitions:  card.Repetitions,
		EaseFactor:   card.EaseFactor,
		NextReviewAt: card.NextReviewAt,
	}

	rating := sm2.ClampRating(input.Rating)

	prior := sm2.State{
		IntervalDays: card.IntervalDays,
		Repetitions:  card.Repetitions,
		EaseFactor:   card.EaseFactor,
		LastReview:   card.LastReviewedAt,
	}

	// Seed the jitter source from the card identity, review moment and card
	// state so the outcome is reproducible per review but spread across cards.
	rng := rand.New(rand.NewSource(sm2.JitterSeed(card.ID, now, prior.Repetitions, prior.EaseFactor)))

	outcome := sm2.Schedule(s.srsConfig, prior, rating, now, rng)

	var updated *domain.Flashcard
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.cards.UpdateSRS(txCtx, userID, card.ID, domain.SRSUpdateParams{
			Status:         outcome.Status,
			IntervalDays:   outcome.IntervalDays,
			Repetitions:    outcome.Repetitions,
			EaseFactor:     outcome.EaseFactor,
			NextReviewAt:   outcome.NextReview,
			LastReviewedAt: now,
		})
		if updateErr != nil {
			return fmt.Errorf("update flashcard: %w", updateErr)
		}

		_, eventErr := s.reviews.Create(txCtx, &domain.ReviewEvent{
			ID:           uuid.New(),
			FlashcardID:  card.ID,
			UserID:       userID,
			Rating:       rating,
			TimeSpentSec: input.TimeSpentSec,
			WasCorrect:   input.WasCorrect,
			PrevState:    snapshot,
			ReviewedAt:   now,
		})
		if eventErr != nil {
			return fmt.Errorf("create review event: %w", eventErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeFlashcard,
			EntityID:   &card.ID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"rating": map[string]any{"new": rating},
				"status": map[string]any{
					"old": card.Status,
					"new": outcome.Status,
				},
				"interval_days": map[string]any{
					"old": card.IntervalDays,
					"new": outcome.IntervalDays,
				},
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated == nil {
		return nil, fmt.Errorf("flashcard update failed: no result returned")
	}

	s.log.InfoContext(ctx, "flashcard reviewed",
		slog.String("user_id", userID.String()),
		slog.String("card_id", card.ID.String()),
		slog.Int("rating", rating),
		slog.String("old_status", string(card.Status)),
		slog.String("new_status", string(updated.Status)),
		slog.Int("interval_days", updated.IntervalDays),
	)

	return &ReviewOutcome{
		Card:     updated,
		Rating:   rating,
		Mastered: updated.Status == domain.CardStatusMastered && card.Status != domain.CardStatusMastered,
	}, nil
}
