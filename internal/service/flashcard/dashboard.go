package flashcard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/pkg/ctxutil"
)

// statsWindowDays bounds how far back GetStudyStats reads the event log.
const statsWindowDays = 90

// GetDashboard returns the headline study numbers for the user.
func (s *Service) GetDashboard(ctx context.Context) (domain.Dashboard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Dashboard{}, domain.ErrUnauthorized
	}

	now := s.clock.Now()

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("load settings: %w", err)
	}

	tz := ParseTimezone(settings.Timezone)
	dayStart := DayStart(now, tz)

	dueCount, err := s.cards.CountDue(ctx, userID, now)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count due cards: %w", err)
	}

	newCount, err := s.cards.CountNew(ctx, userID)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count new cards: %w", err)
	}

	reviewedToday, err := s.reviews.CountToday(ctx, userID, dayStart)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count reviewed today: %w", err)
	}

	newToday, err := s.reviews.CountNewToday(ctx, userID, dayStart)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count new today: %w", err)
	}

	statusCounts, err := s.cards.CountByStatus(ctx, userID)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count by status: %w", err)
	}

	dayCounts, err := s.reviews.GetDayCounts(ctx, userID, now.AddDate(-1, 0, 0))
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("get day counts: %w", err)
	}

	activeDays := make(map[string]bool, len(dayCounts))
	for _, d := range dayCounts {
		if d.Count > 0 {
			activeDays[dayKey(d.Date, tz)] = true
		}
	}
	streak := streakFromActiveDays(activeDays, now, tz)

	overdueCount, err := s.cards.CountOverdue(ctx, userID, dayStart)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count overdue cards: %w", err)
	}

	dashboard := domain.Dashboard{
		DueCount:      dueCount,
		NewCount:      newCount,
		ReviewedToday: reviewedToday,
		NewToday:      newToday,
		Streak:        streak,
		StatusCounts:  statusCounts,
		OverdueCount:  overdueCount,
	}

	s.log.InfoContext(ctx, "dashboard loaded",
		slog.String("user_id", userID.String()),
		slog.Int("due_count", dueCount),
		slog.Int("new_count", newCount),
		slog.Int("streak", streak),
	)

	return dashboard, nil
}

// GetStudyStats derives aggregate statistics from the trailing 90 days of
// review events.
func (s *Service) GetStudyStats(ctx context.Context) (domain.StudyStats, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.StudyStats{}, domain.ErrUnauthorized
	}

	now := s.clock.Now()

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return domain.StudyStats{}, fmt.Errorf("load settings: %w", err)
	}
	tz := ParseTimezone(settings.Timezone)

	from := now.AddDate(0, 0, -statsWindowDays)
	events, err := s.reviews.GetByPeriod(ctx, userID, from, now)
	if err != nil {
		return domain.StudyStats{}, fmt.Errorf("get review events: %w", err)
	}

	flat := make([]domain.ReviewEvent, len(events))
	for i, ev := range events {
		flat[i] = *ev
	}

	stats := GenerateStudyStats(flat, now, tz)

	s.log.InfoContext(ctx, "study stats calculated",
		slog.String("user_id", userID.String()),
		slog.Int("total_reviews", stats.TotalReviews),
		slog.Int("retention_rate", stats.RetentionRate),
		slog.Int("streak", stats.Streak),
	)

	return stats, nil
}

// GetCardHistory returns the review history of a card with pagination.
func (s *Service) GetCardHistory(ctx context.Context, input GetCardHistoryInput) ([]*domain.ReviewEvent, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	// Check ownership before exposing history.
	if _, err := s.cards.GetByID(ctx, userID, input.CardID); err != nil {
		return nil, 0, fmt.Errorf("get flashcard: %w", err)
	}

	limit := input.Limit
	if limit == 0 {
		limit = 50
	}

	events, total, err := s.reviews.GetByCardID(ctx, input.CardID, limit, input.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("get review events: %w", err)
	}

	return events, total, nil
}
