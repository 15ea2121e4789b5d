package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asvabprep/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user and user_settings with default values.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtesth",
		Role:         domain.UserRoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	settings := domain.DefaultUserSettings(user.ID)
	settings.UpdatedAt = now

	_, err = pool.Exec(ctx,
		`INSERT INTO user_settings (user_id, proficiency, new_cards_per_day, study_time_minutes, timezone, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		settings.UserID, settings.Proficiency, settings.NewCardsPerDay,
		settings.StudyTimeMinutes, settings.Timezone, settings.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user_settings: %v", err)
	}

	return user
}

// SeedFlashcard creates a NEW flashcard for the given user.
// Returns a filled domain.Flashcard.
func SeedFlashcard(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Flashcard {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	card := domain.Flashcard{
		ID:         uuid.New(),
		UserID:     userID,
		Category:   domain.CategoryWordKnowledge,
		Front:      "Define: test-" + suffix,
		Back:       "A trial or examination",
		Difficulty: domain.DifficultyMedium,
		Status:     domain.CardStatusNew,
		EaseFactor: 2.5,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO flashcards (id, user_id, category, front, back, difficulty, status,
		                         interval_days, repetitions, ease_factor, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		card.ID, card.UserID, card.Category, card.Front, card.Back, card.Difficulty,
		card.Status, card.IntervalDays, card.Repetitions, card.EaseFactor,
		card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFlashcard insert: %v", err)
	}

	return card
}

// SeedReviewEvent creates a review event for the given card at the given time.
// The prior-state snapshot records a NEW card.
func SeedReviewEvent(t *testing.T, pool *pgxpool.Pool, userID, cardID uuid.UUID, rating int, reviewedAt time.Time) domain.ReviewEvent {
	t.Helper()
	ctx := context.Background()

	event := domain.ReviewEvent{
		ID:          uuid.New(),
		FlashcardID: cardID,
		UserID:      userID,
		Rating:      rating,
		PrevState: &domain.CardSnapshot{
			Status:     domain.CardStatusNew,
			EaseFactor: 2.5,
		},
		ReviewedAt: reviewedAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO review_events (id, flashcard_id, user_id, rating, time_spent_sec,
		                            prev_status, prev_interval_days, prev_repetitions,
		                            prev_ease_factor, reviewed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		event.ID, event.FlashcardID, event.UserID, event.Rating, event.TimeSpentSec,
		event.PrevState.Status, event.PrevState.IntervalDays, event.PrevState.Repetitions,
		event.PrevState.EaseFactor, event.ReviewedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReviewEvent insert: %v", err)
	}

	return event
}
