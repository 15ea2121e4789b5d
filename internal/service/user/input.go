package user

import (
	"time"

	"github.com/asvabprep/backend/internal/domain"
)

// UpdateSettingsInput holds partial settings changes. Nil fields are left
// unchanged.
type UpdateSettingsInput struct {
	Proficiency      *domain.ProficiencyTier
	NewCardsPerDay   *int
	StudyTimeMinutes *int
	Timezone         *string
}

// Validate checks the settings input and collects all field errors.
func (i UpdateSettingsInput) Validate() error {
	var errs []domain.FieldError

	if i.Proficiency != nil && !i.Proficiency.IsValid() {
		errs = append(errs, domain.FieldError{Field: "proficiency", Message: "must be beginner, intermediate or advanced"})
	}

	if i.NewCardsPerDay != nil {
		if *i.NewCardsPerDay < 0 {
			errs = append(errs, domain.FieldError{Field: "new_cards_per_day", Message: "must be at least 0"})
		} else if *i.NewCardsPerDay > 999 {
			errs = append(errs, domain.FieldError{Field: "new_cards_per_day", Message: "must be at most 999"})
		}
	}

	if i.StudyTimeMinutes != nil {
		if *i.StudyTimeMinutes < 1 {
			errs = append(errs, domain.FieldError{Field: "study_time_minutes", Message: "must be at least 1"})
		} else if *i.StudyTimeMinutes > 720 {
			errs = append(errs, domain.FieldError{Field: "study_time_minutes", Message: "must be at most 720"})
		}
	}

	if i.Timezone != nil {
		if *i.Timezone == "" {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "cannot be empty"})
		} else if len(*i.Timezone) > 64 {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "too long"})
		} else if _, err := time.LoadLocation(*i.Timezone); err != nil {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "invalid IANA timezone"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
