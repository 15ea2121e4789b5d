package flashcard

import (
	"github.com/asvabprep/backend/internal/domain"
)

// Thresholds for difficulty adjustment. Fewer than minSampleSize reviews is
// not enough evidence to move a card.
const (
	minSampleSize      = 3
	stepUpAvgRating    = 4.5
	stepDownAvgRating  = 2.5
)

// AdjustDifficulty proposes a revised difficulty tier for a card based on its
// recent average rating. The suggestion is advisory — callers decide whether
// to persist it. Pure function.
func AdjustDifficulty(current domain.DifficultyTier, averageRating float64, sampleSize int) domain.DifficultyTier {
	if sampleSize < minSampleSize {
		return current
	}

	switch {
	case averageRating >= stepUpAvgRating:
		return stepUp(current)
	case averageRating <= stepDownAvgRating:
		return stepDown(current)
	default:
		return current
	}
}

func stepUp(tier domain.DifficultyTier) domain.DifficultyTier {
	switch tier {
	case domain.DifficultyEasy:
		return domain.DifficultyMedium
	case domain.DifficultyMedium:
		return domain.DifficultyHard
	default:
		return domain.DifficultyHard
	}
}

func stepDown(tier domain.DifficultyTier) domain.DifficultyTier {
	switch tier {
	case domain.DifficultyHard:
		return domain.DifficultyMedium
	case domain.DifficultyMedium:
		return domain.DifficultyEasy
	default:
		return domain.DifficultyEasy
	}
}
