// Package flashcard implements the Flashcard repository using PostgreSQL.
// Simple lookups use raw SQL constants; the dynamic listing query is built
// with squirrel.
package flashcard

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/asvabprep/backend/internal/adapter/postgres"
	"github.com/asvabprep/backend/internal/domain"
)

// Repo provides flashcard persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// New creates a new flashcard repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const cardColumns = `id, user_id, category, front, back, difficulty, status,
       interval_days, repetitions, ease_factor, next_review_at, last_reviewed_at,
       created_at, updated_at`

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT ` + cardColumns + `
FROM flashcards
WHERE id = $1 AND user_id = $2`

const createSQL = `
INSERT INTO flashcards (id, user_id, category, front, back, difficulty, status,
                        interval_days, repetitions, ease_factor, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
RETURNING ` + cardColumns

const updateSRSSQL = `
UPDATE flashcards
SET status = $3, interval_days = $4, repetitions = $5, ease_factor = $6,
    next_review_at = $7, last_reviewed_at = $8, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + cardColumns

const restoreSRSSQL = `
UPDATE flashcards
SET status = $3, interval_days = $4, repetitions = $5, ease_factor = $6,
    next_review_at = $7,
    last_reviewed_at = (SELECT max(reviewed_at) FROM review_events WHERE flashcard_id = $1),
    updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + cardColumns

const deleteSQL = `
DELETE FROM flashcards
WHERE id = $1 AND user_id = $2`

const getDueCardsSQL = `
SELECT ` + cardColumns + `
FROM flashcards
WHERE user_id = $1
  AND status <> 'NEW'
  AND next_review_at <= $2
ORDER BY next_review_at ASC
LIMIT $3`

const getNewCardsSQL = `
SELECT ` + cardColumns + `
FROM flashcards
WHERE user_id = $1 AND status = 'NEW'
ORDER BY created_at ASC
LIMIT $2`

const countByStatusSQL = `
SELECT status, count(*)
FROM flashcards
WHERE user_id = $1
GROUP BY status`

const countDueSQL = `
SELECT count(*)
FROM flashcards
WHERE user_id = $1
  AND status <> 'NEW'
  AND next_review_at <= $2`

const countNewSQL = `
SELECT count(*)
FROM flashcards
WHERE user_id = $1 AND status = 'NEW'`

const countOverdueSQL = `
SELECT count(*)
FROM flashcards
WHERE user_id = $1
  AND status <> 'NEW'
  AND next_review_at < $2`

const countByUserSQL = `
SELECT count(*)
FROM flashcards
WHERE user_id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a flashcard by primary key filtered by user_id.
func (r *Repo) GetByID(ctx context.Context, userID, cardID uuid.UUID) (*domain.Flashcard, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	card, err := scanCard(q.QueryRow(ctx, getByIDSQL, cardID, userID))
	if err != nil {
		return nil, postgres.MapError(err, "flashcard", cardID)
	}

	return card, nil
}

// List returns flashcards matching the filter plus the total match count.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter domain.CardFilter) ([]*domain.Flashcard, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	where := squirrel.And{squirrel.Eq{"user_id": userID}}
	if filter.Category != nil {
		where = append(where, squirrel.Eq{"category": *filter.Category})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}

	countSQL, countArgs, err := r.sb.Select("count(*)").From("flashcards").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count flashcards: %w", err)
	}

	listSQL, listArgs, err := r.sb.Select(cardColumns).
		From("flashcards").
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list flashcards: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list flashcards: %w", err)
	}

	return cards, total, nil
}

// GetDueCards returns non-new cards whose next review is at or before now,
// most overdue first.
func (r *Repo) GetDueCards(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.Flashcard, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, getDueCardsSQL, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("get due cards: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, fmt.Errorf("get due cards: %w", err)
	}

	return cards, nil
}

// GetNewCards returns never-reviewed cards, oldest first.
func (r *Repo) GetNewCards(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Flashcard, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, getNewCardsSQL, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("get new cards: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, fmt.Errorf("get new cards: %w", err)
	}

	return cards, nil
}

// CountByStatus returns card counts per lifecycle status.
func (r *Repo) CountByStatus(ctx context.Context, userID uuid.UUID) (domain.CardStatusCounts, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, countByStatusSQL, userID)
	if err != nil {
		return domain.CardStatusCounts{}, fmt.Errorf("count cards by status: %w", err)
	}
	defer rows.Close()

	var counts domain.CardStatusCounts
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return domain.CardStatusCounts{}, fmt.Errorf("scan status count: %w", err)
		}
		switch domain.CardStatus(status) {
		case domain.CardStatusNew:
			counts.New = count
		case domain.CardStatusLearning:
			counts.Learning = count
		case domain.CardStatusReview:
			counts.Review = count
		case domain.CardStatusMastered:
			counts.Mastered = count
		}
		counts.Total += count
	}
	if err := rows.Err(); err != nil {
		return domain.CardStatusCounts{}, fmt.Errorf("iterate status counts: %w", err)
	}

	return counts, nil
}

// CountDue returns the count of cards due for review.
func (r *Repo) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	return r.countOne(ctx, countDueSQL, userID, now)
}

// CountNew returns the count of NEW cards.
func (r *Repo) CountNew(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.countOne(ctx, countNewSQL, userID)
}

// CountOverdue returns the count of cards whose next review fell before the
// start of the current day.
func (r *Repo) CountOverdue(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	return r.countOne(ctx, countOverdueSQL, userID, dayStart)
}

// CountByUser returns the total number of cards the user owns.
func (r *Repo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.countOne(ctx, countByUserSQL, userID)
}

func (r *Repo) countOne(ctx context.Context, sql string, args ...any) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count flashcards: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new flashcard and returns the persisted row.
func (r *Repo) Create(ctx context.Context, card *domain.Flashcard) (*domain.Flashcard, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	created, err := scanCard(q.QueryRow(ctx, createSQL,
		card.ID, card.UserID, card.Category, card.Front, card.Back,
		card.Difficulty, card.Status, card.IntervalDays, card.Repetitions,
		card.EaseFactor, now,
	))
	if err != nil {
		return nil, postgres.MapError(err, "flashcard", card.ID)
	}

	return created, nil
}

// UpdateSRS updates the spaced-repetition fields after a review.
// Returns domain.ErrNotFound if the card does not exist or belongs to another user.
func (r *Repo) UpdateSRS(ctx context.Context, userID, cardID uuid.UUID, params domain.SRSUpdateParams) (*domain.Flashcard, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	card, err := scanCard(q.QueryRow(ctx, updateSRSSQL,
		cardID, userID, params.Status, params.IntervalDays, params.Repetitions,
		params.EaseFactor, params.NextReviewAt, params.LastReviewedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "flashcard", cardID)
	}

	return card, nil
}

// RestoreSRS rewinds the spaced-repetition fields to a prior snapshot.
// last_reviewed_at is recomputed from the remaining review events.
func (r *Repo) RestoreSRS(ctx context.Context, userID, cardID uuid.UUID, snapshot domain.CardSnapshot) (*domain.Flashcard, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	card, err := scanCard(q.QueryRow(ctx, restoreSRSSQL,
		cardID, userID, snapshot.Status, snapshot.IntervalDays,
		snapshot.Repetitions, snapshot.EaseFactor, snapshot.NextReviewAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "flashcard", cardID)
	}

	return card, nil
}

// Delete removes a flashcard and, via FK cascade, its review events.
// Returns domain.ErrNotFound if the card does not exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, cardID, userID)
	if err != nil {
		return postgres.MapError(err, "flashcard", cardID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("flashcard %s: %w", cardID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanCard(row pgx.Row) (*domain.Flashcard, error) {
	var c domain.Flashcard
	err := row.Scan(
		&c.ID, &c.UserID, &c.Category, &c.Front, &c.Back, &c.Difficulty,
		&c.Status, &c.IntervalDays, &c.Repetitions, &c.EaseFactor,
		&c.NextReviewAt, &c.LastReviewedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCards(rows pgx.Rows) ([]*domain.Flashcard, error) {
	cards := []*domain.Flashcard{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}
