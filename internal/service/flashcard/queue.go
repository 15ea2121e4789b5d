package flashcard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/pkg/ctxutil"
)

// GetStudyQueue returns cards ready for review: due cards first, then new
// cards up to the user's remaining daily allowance.
func (s *Service) GetStudyQueue(ctx context.Context, input GetQueueInput) ([]*domain.Flashcard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.defaultQueueLimit
	}

	now := s.clock.Now()

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	tz := ParseTimezone(settings.Timezone)
	dayStart := DayStart(now, tz)

	newToday, err := s.reviews.CountNewToday(ctx, userID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("count new today: %w", err)
	}

	newRemaining := max(0, settings.NewCardsPerDay-newToday)

	dueCards, err := s.cards.GetDueCards(ctx, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("get due cards: %w", err)
	}

	queue := dueCards
	if len(dueCards) < limit && newRemaining > 0 {
		newLimit := min(limit-len(dueCards), newRemaining)
		newCards, err := s.cards.GetNewCards(ctx, userID, newLimit)
		if err != nil {
			return nil, fmt.Errorf("get new cards: %w", err)
		}
		queue = append(queue, newCards...)
	}

	s.log.InfoContext(ctx, "study queue generated",
		slog.String("user_id", userID.String()),
		slog.Int("due_count", len(dueCards)),
		slog.Int("new_count", len(queue)-len(dueCards)),
		slog.Int("total", len(queue)),
	)

	return queue, nil
}

// PlanStudySession computes the recommended session composition from the
// user's deck size, time budget, and proficiency tier.
func (s *Service) PlanStudySession(ctx context.Context, input PlanSessionInput) (domain.StudyLoadPlan, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.StudyLoadPlan{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.StudyLoadPlan{}, err
	}

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return domain.StudyLoadPlan{}, fmt.Errorf("load settings: %w", err)
	}

	timeMinutes := input.TimeMinutes
	if timeMinutes == 0 {
		timeMinutes = settings.StudyTimeMinutes
	}

	totalCards, err := s.cards.CountByUser(ctx, userID)
	if err != nil {
		return domain.StudyLoadPlan{}, fmt.Errorf("count cards: %w", err)
	}

	plan := CalculateStudyLoad(totalCards, timeMinutes, settings.Proficiency)

	s.log.InfoContext(ctx, "study session planned",
		slog.String("user_id", userID.String()),
		slog.Int("time_minutes", timeMinutes),
		slog.Int("new_cards", plan.NewCards),
		slog.Int("review_cards", plan.ReviewCards),
	)

	return plan, nil
}
