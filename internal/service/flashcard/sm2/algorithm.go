// Package sm2 implements the modified SM-2 scheduling algorithm used by the
// flashcard subsystem. Everything in this package is pure: state in,
// outcome out, no I/O. The only source of non-determinism is the interval
// jitter, which is driven by an injected *rand.Rand (nil disables it).
package sm2

import (
	"math"
	"math/rand"
	"time"

	"github.com/asvabprep/backend/internal/domain"
)

// Config holds the tunable constants of the scheduler. They are passed in
// explicitly rather than read from package globals so the algorithm stays
// pure and testable.
type Config struct {
	DefaultEaseFactor   float64 // ease assigned to never-reviewed cards
	MinEaseFactor       float64
	MaxEaseFactor       float64
	GraduatingInterval  int // days granted on the second consecutive qualifying review
	MasteryRepetitions  int // minimum consecutive qualifying reviews for MASTERED
	MasteryIntervalDays int // minimum interval for MASTERED
	JitterSpread        float64 // 0.1 → uniform factor in [0.9, 1.1]; 0 disables
}

// DefaultConfig returns the standard scheduler constants.
func DefaultConfig() Config {
	return Config{
		DefaultEaseFactor:   2.5,
		MinEaseFactor:       1.3,
		MaxEaseFactor:       5.0,
		GraduatingInterval:  4,
		MasteryRepetitions:  8,
		MasteryIntervalDays: 30,
		JitterSpread:        0.1,
	}
}

// State is the prior spaced-repetition state of a card. The zero value is a
// never-reviewed card (ease is normalized to the configured default).
type State struct {
	IntervalDays int
	Repetitions  int
	EaseFactor   float64
	LastReview   *time.Time
}

// Outcome is the result of scheduling one review.
type Outcome struct {
	IntervalDays int
	Repetitions  int
	EaseFactor   float64
	NextReview   time.Time
	Status       domain.CardStatus
}

// ClampRating sanitizes a client-supplied rating: floored to an integer,
// then clamped to [0, 5]. Out-of-range input is silently corrected, never
// rejected — review submission must not fail on a malformed rating.
func ClampRating(v float64) int {
	r := int(math.Floor(v))
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

// Schedule computes the next review outcome for a card given its prior state
// and a rating in [0, 5]. rng drives the interval jitter; pass nil for a
// fully deterministic result.
func Schedule(cfg Config, prior State, rating int, now time.Time, rng *rand.Rand) Outcome {
	if rating < 0 {
		rating = 0
	} else if rating > 5 {
		rating = 5
	}

	ease := prior.EaseFactor
	if ease == 0 {
		ease = cfg.DefaultEaseFactor
	}
	ease = clampEase(cfg, ease)

	// Ease moves only on qualifying reviews. A lapse leaves it untouched.
	if rating >= 3 {
		q := float64(rating)
		ease = clampEase(cfg, ease+(0.1-(5-q)*(0.08+(5-q)*0.02)))
	}

	var repetitions, interval int
	if rating < 3 {
		repetitions = 0
		interval = 1
	} else {
		repetitions = prior.Repetitions + 1
		switch repetitions {
		case 1:
			interval = 1
		case 2:
			interval = cfg.GraduatingInterval
		default:
			interval = int(math.Round(float64(prior.IntervalDays) * ease))
			if interval < 1 {
				interval = 1
			}
		}
	}

	interval = applyJitter(interval, cfg.JitterSpread, rng)

	return Outcome{
		IntervalDays: interval,
		Repetitions:  repetitions,
		EaseFactor:   ease,
		NextReview:   now.AddDate(0, 0, interval),
		Status:       DeriveStatus(cfg, repetitions, interval),
	}
}

// DeriveStatus returns the lifecycle status implied by a post-review
// (repetitions, interval) pair. Status is never stored independently; it is
// recomputed from this canonical pair after every review so it cannot drift.
func DeriveStatus(cfg Config, repetitions, intervalDays int) domain.CardStatus {
	switch {
	case intervalDays == 0:
		return domain.CardStatusNew
	case repetitions <= 1:
		return domain.CardStatusLearning
	case repetitions >= cfg.MasteryRepetitions && intervalDays >= cfg.MasteryIntervalDays:
		return domain.CardStatusMastered
	default:
		return domain.CardStatusReview
	}
}

// Replay folds a chronological sequence of review events into the state the
// card would hold after the last of them. The scheduler is a pure fold over
// the event log, so persisted state is always reconstructible.
func Replay(cfg Config, events []domain.ReviewEvent, rng *rand.Rand) State {
	var st State
	for i := range events {
		ev := events[i]
		out := Schedule(cfg, st, ev.Rating, ev.ReviewedAt, rng)
		reviewedAt := ev.ReviewedAt
		st = State{
			IntervalDays: out.IntervalDays,
			Repetitions:  out.Repetitions,
			EaseFactor:   out.EaseFactor,
			LastReview:   &reviewedAt,
		}
	}
	return st
}

func clampEase(cfg Config, ease float64) float64 {
	if ease < cfg.MinEaseFactor {
		return cfg.MinEaseFactor
	}
	if ease > cfg.MaxEaseFactor {
		return cfg.MaxEaseFactor
	}
	return ease
}
