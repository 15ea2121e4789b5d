package flashcard

import (
	"context"
	"fmt"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/pkg/ctxutil"
)

// DifficultySuggestion is an advisory re-tiering for a card. Nothing is
// persisted; the client decides whether to apply it.
type DifficultySuggestion struct {
	CardID        string
	Current       domain.DifficultyTier
	Suggested     domain.DifficultyTier
	AverageRating float64
	SampleSize    int
}

// SuggestDifficulty proposes a difficulty tier for a card from its review
// history.
func (s *Service) SuggestDifficulty(ctx context.Context, input SuggestDifficultyInput) (*DifficultySuggestion, error) {
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

	agg, err := s.reviews.GetStatsByCardID(ctx, card.ID)
	if err != nil {
		return nil, fmt.Errorf("get card review stats: %w", err)
	}

	suggested := AdjustDifficulty(card.Difficulty, agg.AverageRating, agg.TotalReviews)

	return &DifficultySuggestion{
		CardID:        card.ID.String(),
		Current:       card.Difficulty,
		Suggested:     suggested,
		AverageRating: agg.AverageRating,
		SampleSize:    agg.TotalReviews,
	}, nil
}
