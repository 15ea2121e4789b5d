package flashcard

import (
	"strings"

	"github.com/google/uuid"

	"github.com/asvabprep/backend/internal/domain"
)

// ReviewCardInput holds the parameters for reviewing a flashcard.
// Rating is accepted as a raw number and sanitized by the scheduler, so it
// carries no validation here — a review must never fail on a bad rating.
type ReviewCardInput struct {
	CardID       uuid.UUID
	Rating       float64
	TimeSpentSec int
	WasCorrect   *bool
}

// Validate checks all fields and collects all errors.
func (i *ReviewCardInput) Validate() error {
	var errs []domain.FieldError

	if i.CardID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if i.TimeSpentSec < 0 {
		errs = append(errs, domain.FieldError{Field: "time_spent_sec", Message: "must be non-negative"})
	}
	if i.TimeSpentSec > 3600 {
		errs = append(errs, domain.FieldError{Field: "time_spent_sec", Message: "max 1 hour"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateCardInput holds the parameters for creating a flashcard.
type CreateCardInput struct {
	Category   domain.AsvabCategory
	Front      string
	Back       string
	Difficulty domain.DifficultyTier
}

// Validate checks all fields and collects all errors.
func (i *CreateCardInput) Validate() error {
	var errs []domain.FieldError

	if !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown ASVAB category"})
	}
	if strings.TrimSpace(i.Front) == "" {
		errs = append(errs, domain.FieldError{Field: "front", Message: "required"})
	} else if len(i.Front) > 2000 {
		errs = append(errs, domain.FieldError{Field: "front", Message: "too long (max 2000)"})
	}
	if strings.TrimSpace(i.Back) == "" {
		errs = append(errs, domain.FieldError{Field: "back", Message: "required"})
	} else if len(i.Back) > 2000 {
		errs = append(errs, domain.FieldError{Field: "back", Message: "too long (max 2000)"})
	}
	if !i.Difficulty.IsValid() {
		errs = append(errs, domain.FieldError{Field: "difficulty", Message: "must be EASY, MEDIUM, or HARD"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// DeleteCardInput holds the parameters for deleting a flashcard.
type DeleteCardInput struct {
	CardID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *DeleteCardInput) Validate() error {
	if i.CardID == uuid.Nil {
		return domain.NewValidationError("card_id", "required")
	}
	return nil
}

// GetCardInput holds the parameters for fetching a single flashcard.
type GetCardInput struct {
	CardID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *GetCardInput) Validate() error {
	if i.CardID == uuid.Nil {
		return domain.NewValidationError("card_id", "required")
	}
	return nil
}

// ListCardsInput holds the parameters for listing flashcards.
type ListCardsInput struct {
	Filter domain.CardFilter
}

// Validate checks all fields and collects all errors.
func (i *ListCardsInput) Validate() error {
	var errs []domain.FieldError

	if i.Filter.Limit < 0 || i.Filter.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Filter.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}
	if i.Filter.Category != nil && !i.Filter.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown ASVAB category"})
	}
	if i.Filter.Status != nil && !i.Filter.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown card status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GetQueueInput holds the parameters for fetching the study queue.
type GetQueueInput struct {
	Limit int
}

// Validate checks all fields and collects all errors.
func (i *GetQueueInput) Validate() error {
	if i.Limit < 0 || i.Limit > 200 {
		return domain.NewValidationError("limit", "must be between 0 and 200")
	}
	return nil
}

// PlanSessionInput holds the parameters for planning a study session.
// A zero TimeMinutes falls back to the user's configured session budget.
type PlanSessionInput struct {
	TimeMinutes int
}

// Validate checks all fields and collects all errors.
func (i *PlanSessionInput) Validate() error {
	if i.TimeMinutes < 0 || i.TimeMinutes > 480 {
		return domain.NewValidationError("time_minutes", "must be between 0 and 480")
	}
	return nil
}

// GetCardHistoryInput holds the parameters for fetching card review history.
type GetCardHistoryInput struct {
	CardID uuid.UUID
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i *GetCardHistoryInput) Validate() error {
	var errs []domain.FieldError

	if i.CardID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SuggestDifficultyInput holds the parameters for a difficulty suggestion.
type SuggestDifficultyInput struct {
	CardID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *SuggestDifficultyInput) Validate() error {
	if i.CardID == uuid.Nil {
		return domain.NewValidationError("card_id", "required")
	}
	return nil
}

// UndoReviewInput holds the parameters for undoing the most recent review.
type UndoReviewInput struct {
	CardID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *UndoReviewInput) Validate() error {
	if i.CardID == uuid.Nil {
		return domain.NewValidationError("card_id", "required")
	}
	return nil
}
