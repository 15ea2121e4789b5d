package flashcard

import (
	"math"

	"github.com/asvabprep/backend/internal/domain"
)

// Per-card time cost in minutes by proficiency tier. Beginners read more
// slowly and second-guess more; advanced users clear cards quickly.
const (
	perCardMinutesBeginner     = 2.5
	perCardMinutesIntermediate = 2.0
	perCardMinutesAdvanced     = 1.5
)

// Session composition: a fifth of the budget goes to unseen material, the
// rest to reviews. New cards are additionally capped at a tenth of the deck —
// they are a scarce, self-limiting resource.
const (
	newCardShare    = 0.2
	reviewCardShare = 0.8
	newCardDeckCap  = 0.1
)

// PerCardMinutes returns the estimated minutes per card for a tier.
// Unknown tiers fall back to the beginner cost.
func PerCardMinutes(tier domain.ProficiencyTier) float64 {
	switch tier {
	case domain.ProficiencyAdvanced:
		return perCardMinutesAdvanced
	case domain.ProficiencyIntermediate:
		return perCardMinutesIntermediate
	default:
		return perCardMinutesBeginner
	}
}

// CalculateStudyLoad computes how many new and review cards fit into the
// given time budget for a user at the given proficiency tier. Pure function;
// negative inputs are treated as zero.
func CalculateStudyLoad(totalCardsAvailable, availableTimeMinutes int, tier domain.ProficiencyTier) domain.StudyLoadPlan {
	if totalCardsAvailable < 0 {
		totalCardsAvailable = 0
	}
	if availableTimeMinutes < 0 {
		availableTimeMinutes = 0
	}

	perCard := PerCardMinutes(tier)
	maxCards := int(math.Floor(float64(availableTimeMinutes) / perCard))

	newCards := int(math.Floor(float64(maxCards) * newCardShare))
	if deckCap := int(math.Floor(float64(totalCardsAvailable) * newCardDeckCap)); newCards > deckCap {
		newCards = deckCap
	}

	reviewCards := int(math.Floor(float64(maxCards) * reviewCardShare))
	if remaining := maxCards - newCards; reviewCards > remaining {
		reviewCards = remaining
	}

	return domain.StudyLoadPlan{
		NewCards:             newCards,
		ReviewCards:          reviewCards,
		EstimatedTimeMinutes: float64(newCards+reviewCards) * perCard,
	}
}
