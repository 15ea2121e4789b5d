package domain

import (
	"time"

	"github.com/google/uuid"
)

// Flashcard represents a single prep-question card owned by a user, together
// with its current spaced-repetition state. IntervalDays is 0 and
// NextReviewAt/LastReviewedAt are nil until the first review.
type Flashcard struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Category       AsvabCategory
	Front          string
	Back           string
	Difficulty     DifficultyTier
	Status         CardStatus
	IntervalDays   int
	Repetitions    int
	EaseFactor     float64
	NextReviewAt   *time.Time
	LastReviewedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsDue returns true if the card needs review at the given time.
//   - NEW cards are always due.
//   - Other cards are due when NextReviewAt <= now.
func (f *Flashcard) IsDue(now time.Time) bool {
	if f.Status == CardStatusNew {
		return true
	}
	if f.NextReviewAt == nil {
		return true
	}
	return !f.NextReviewAt.After(now)
}

// ReviewEvent records a single review of a flashcard. Events are immutable
// and append-only: the full chronological sequence for a card is sufficient
// to reconstruct its spaced-repetition state at any point in time.
type ReviewEvent struct {
	ID           uuid.UUID
	FlashcardID  uuid.UUID
	UserID       uuid.UUID
	Rating       int
	TimeSpentSec int
	WasCorrect   *bool
	PrevState    *CardSnapshot
	ReviewedAt   time.Time
}

// CardSnapshot captures the SRS state of a flashcard before a review.
// Stored on the review event for undo and for counting first-time reviews.
type CardSnapshot struct {
	Status       CardStatus
	IntervalDays int
	Repetitions  int
	EaseFactor   float64
	NextReviewAt *time.Time
}

// SRSUpdateParams holds the fields to update on a flashcard after a review
// outcome has been computed.
type SRSUpdateParams struct {
	Status         CardStatus
	IntervalDays   int
	Repetitions    int
	EaseFactor     float64
	NextReviewAt   time.Time
	LastReviewedAt time.Time
}

// CardFilter narrows a flashcard listing.
type CardFilter struct {
	Category *AsvabCategory
	Status   *CardStatus
	Limit    int
	Offset   int
}

// AuditRecord describes a single mutation for the audit log.
type AuditRecord struct {
	UserID     uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
}
