package flashcard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/pkg/ctxutil"
)

// UndoReview reverts the most recent review of a card: the card's
// spaced-repetition state is restored from the snapshot stored on the event,
// and the event itself is removed. Only the latest review is undoable, and
// only within the undo window.
func (s *Service) UndoReview(ctx context.Context, input UndoReviewInput) (*domain.Flashcard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.cards.GetByID(ctx, userID, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("get flashcard: %w", err)
	}

	event, err := s.reviews.GetLastByCardID(ctx, card.ID)
	if err != nil {
		return nil, fmt.Errorf("get last review: %w", err)
	}
	if event.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if event.PrevState == nil {
		return nil, fmt.Errorf("review has no prior state: %w", domain.ErrConflict)
	}

	now := s.clock.Now()
	if now.Sub(event.ReviewedAt) > s.undoWindow {
		return nil, fmt.Errorf("undo window of %s elapsed: %w", s.undoWindow, domain.ErrConflict)
	}

	var restored *domain.Flashcard
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var restoreErr error
		restored, restoreErr = s.cards.RestoreSRS(txCtx, userID, card.ID, *event.PrevState)
		if restoreErr != nil {
			return fmt.Errorf("restore flashcard state: %w", restoreErr)
		}

		if delErr := s.reviews.Delete(txCtx, event.ID); delErr != nil {
			return fmt.Errorf("delete review event: %w", delErr)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeFlashcard,
			EntityID:   &card.ID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"undo": map[string]any{"event_id": event.ID},
				"status": map[string]any{
					"old": card.Status,
					"new": event.PrevState.Status,
				},
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "review undone",
		slog.String("user_id", userID.String()),
		slog.String("card_id", card.ID.String()),
		slog.String("event_id", event.ID.String()),
	)

	return restored, nil
}
