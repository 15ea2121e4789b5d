// Package review implements the ReviewEvent repository using PostgreSQL.
// The event log is append-only; Delete exists solely for the undo flow.
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/asvabprep/backend/internal/adapter/postgres"
	"github.com/asvabprep/backend/internal/domain"
)

// Repo provides review event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const eventColumns = `id, flashcard_id, user_id, rating, time_spent_sec, was_correct,
       prev_status, prev_interval_days, prev_repetitions, prev_ease_factor,
       prev_next_review_at, reviewed_at`

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO review_events (id, flashcard_id, user_id, rating, time_spent_sec, was_correct,
                           prev_status, prev_interval_days, prev_repetitions,
                           prev_ease_factor, prev_next_review_at, reviewed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + eventColumns

const getByCardIDSQL = `
SELECT ` + eventColumns + `
FROM review_events
WHERE flashcard_id = $1
ORDER BY reviewed_at DESC
LIMIT $2 OFFSET $3`

const countByCardIDSQL = `
SELECT count(*)
FROM review_events
WHERE flashcard_id = $1`

const getLastByCardIDSQL = `
SELECT ` + eventColumns + `
FROM review_events
WHERE flashcard_id = $1
ORDER BY reviewed_at DESC
LIMIT 1`

const deleteSQL = `
DELETE FROM review_events
WHERE id = $1`

const getByPeriodSQL = `
SELECT ` + eventColumns + `
FROM review_events
WHERE user_id = $1 AND reviewed_at >= $2 AND reviewed_at <= $3
ORDER BY reviewed_at ASC`

const countTodaySQL = `
SELECT count(*)
FROM review_events
WHERE user_id = $1 AND reviewed_at >= $2`

const countNewTodaySQL = `
SELECT count(*)
FROM review_events
WHERE user_id = $1 AND reviewed_at >= $2 AND prev_repetitions = 0 AND prev_status = 'NEW'`

const getDayCountsSQL = `
SELECT date_trunc('day', reviewed_at) AS day, count(*)
FROM review_events
WHERE user_id = $1 AND reviewed_at >= $2
GROUP BY day
ORDER BY day ASC`

const getStatsByCardIDSQL = `
SELECT count(*),
       coalesce(avg(rating), 0),
       count(*) FILTER (WHERE rating >= 3),
       avg(time_spent_sec)
FROM review_events
WHERE flashcard_id = $1`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create appends a review event and returns the persisted row.
func (r *Repo) Create(ctx context.Context, event *domain.ReviewEvent) (*domain.ReviewEvent, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		prevStatus       *string
		prevInterval     *int
		prevRepetitions  *int
		prevEaseFactor   *float64
		prevNextReviewAt *time.Time
	)
	if snap := event.PrevState; snap != nil {
		status := string(snap.Status)
		prevStatus = &status
		prevInterval = &snap.IntervalDays
		prevRepetitions = &snap.Repetitions
		prevEaseFactor = &snap.EaseFactor
		prevNextReviewAt = snap.NextReviewAt
	}

	created, err := scanEvent(q.QueryRow(ctx, createSQL,
		event.ID, event.FlashcardID, event.UserID, event.Rating,
		event.TimeSpentSec, event.WasCorrect,
		prevStatus, prevInterval, prevRepetitions, prevEaseFactor,
		prevNextReviewAt, event.ReviewedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "review_event", event.ID)
	}

	return created, nil
}

// Delete removes a review event. Used only when undoing the latest review.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "review_event", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review_event %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByCardID returns the review history of a card, newest first, plus the
// total event count for pagination.
func (r *Repo) GetByCardID(ctx context.Context, cardID uuid.UUID, limit, offset int) ([]*domain.ReviewEvent, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, countByCardIDSQL, cardID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count review events: %w", err)
	}

	rows, err := q.Query(ctx, getByCardIDSQL, cardID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("get review events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("get review events: %w", err)
	}

	return events, total, nil
}

// GetLastByCardID returns the most recent review event of a card.
func (r *Repo) GetLastByCardID(ctx context.Context, cardID uuid.UUID) (*domain.ReviewEvent, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	event, err := scanEvent(q.QueryRow(ctx, getLastByCardIDSQL, cardID))
	if err != nil {
		return nil, postgres.MapError(err, "review_event", cardID)
	}

	return event, nil
}

// GetByPeriod returns the user's review events within [from, to], in
// chronological order.
func (r *Repo) GetByPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.ReviewEvent, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, getByPeriodSQL, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get review events by period: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("get review events by period: %w", err)
	}

	return events, nil
}

// CountToday returns the number of reviews since dayStart.
func (r *Repo) CountToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	return r.countOne(ctx, countTodaySQL, userID, dayStart)
}

// CountNewToday returns the number of first-time reviews since dayStart.
// A first-time review is one whose card had never been answered before.
func (r *Repo) CountNewToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	return r.countOne(ctx, countNewTodaySQL, userID, dayStart)
}

// GetDayCounts returns per-day review counts since the given time.
// Days in UTC; callers regroup into the user's timezone.
func (r *Repo) GetDayCounts(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.DayReviewCount, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, getDayCountsSQL, userID, since)
	if err != nil {
		return nil, fmt.Errorf("get day counts: %w", err)
	}
	defer rows.Close()

	counts := []domain.DayReviewCount{}
	for rows.Next() {
		var dc domain.DayReviewCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan day count: %w", err)
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day counts: %w", err)
	}

	return counts, nil
}

// GetStatsByCardID returns aggregate review stats for one card.
func (r *Repo) GetStatsByCardID(ctx context.Context, cardID uuid.UUID) (domain.CardReviewAggregation, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var agg domain.CardReviewAggregation
	err := q.QueryRow(ctx, getStatsByCardIDSQL, cardID).Scan(
		&agg.TotalReviews, &agg.AverageRating, &agg.CorrectCount, &agg.AvgTimeSec,
	)
	if err != nil {
		return domain.CardReviewAggregation{}, fmt.Errorf("get card review stats: %w", err)
	}

	return agg, nil
}

func (r *Repo) countOne(ctx context.Context, sql string, args ...any) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count review events: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanEvent(row pgx.Row) (*domain.ReviewEvent, error) {
	var (
		ev               domain.ReviewEvent
		prevStatus       *string
		prevInterval     *int
		prevRepetitions  *int
		prevEaseFactor   *float64
		prevNextReviewAt *time.Time
	)
	err := row.Scan(
		&ev.ID, &ev.FlashcardID, &ev.UserID, &ev.Rating, &ev.TimeSpentSec,
		&ev.WasCorrect, &prevStatus, &prevInterval, &prevRepetitions,
		&prevEaseFactor, &prevNextReviewAt, &ev.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}

	if prevStatus != nil {
		ev.PrevState = &domain.CardSnapshot{
			Status:       domain.CardStatus(*prevStatus),
			IntervalDays: *prevInterval,
			Repetitions:  *prevRepetitions,
			EaseFactor:   *prevEaseFactor,
			NextReviewAt: prevNextReviewAt,
		}
	}

	return &ev, nil
}

func scanEvents(rows pgx.Rows) ([]*domain.ReviewEvent, error) {
	events := []*domain.ReviewEvent{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
