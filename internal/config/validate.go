package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if c.Study.MaxCardsPerUser <= 0 {
		return fmt.Errorf("study.max_cards_per_user must be > 0 (got %d)", c.Study.MaxCardsPerUser)
	}
	if c.Study.UndoWindow <= 0 {
		return fmt.Errorf("study.undo_window must be > 0 (got %v)", c.Study.UndoWindow)
	}

	if err := c.SRS.validate(); err != nil {
		return fmt.Errorf("srs: %w", err)
	}

	return nil
}

func (s *SRSConfig) validate() error {
	if s.MinEaseFactor <= 0 {
		return fmt.Errorf("min_ease_factor must be > 0 (got %v)", s.MinEaseFactor)
	}
	if s.MaxEaseFactor < s.MinEaseFactor {
		return fmt.Errorf("max_ease_factor must be >= min_ease_factor (got %v < %v)",
			s.MaxEaseFactor, s.MinEaseFactor)
	}
	if s.DefaultEaseFactor < s.MinEaseFactor || s.DefaultEaseFactor > s.MaxEaseFactor {
		return fmt.Errorf("default_ease_factor %v outside [%v, %v]",
			s.DefaultEaseFactor, s.MinEaseFactor, s.MaxEaseFactor)
	}
	if s.GraduatingInterval <= 0 {
		return fmt.Errorf("graduating_interval must be > 0 (got %d)", s.GraduatingInterval)
	}
	if s.MasteryRepetitions <= 0 || s.MasteryIntervalDays <= 0 {
		return fmt.Errorf("mastery thresholds must be > 0 (got reps=%d, days=%d)",
			s.MasteryRepetitions, s.MasteryIntervalDays)
	}
	if s.JitterSpread < 0 || s.JitterSpread >= 1 {
		return fmt.Errorf("jitter_spread must be in [0, 1) (got %v)", s.JitterSpread)
	}
	return nil
}
