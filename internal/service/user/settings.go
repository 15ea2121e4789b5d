package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/pkg/ctxutil"
)

// GetSettings returns the authenticated user's study settings.
func (s *Service) GetSettings(ctx context.Context) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.GetSettings: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies a partial settings update and records the diff in
// the audit log within one transaction.
func (s *Service) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*domain.UserSettings, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var updated *domain.UserSettings
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.settings.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("get current settings: %w", err)
		}

		next := mergeSettings(*current, input)

		updated, err = s.settings.UpdateSettings(ctx, &next)
		if err != nil {
			return fmt.Errorf("update settings: %w", err)
		}

		changes := settingsDiff(*current, next)
		if len(changes) == 0 {
			return nil
		}

		return s.audit.Log(ctx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeUser,
			EntityID:   &userID,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("user.UpdateSettings: %w", err)
	}

	s.log.InfoContext(ctx, "settings updated", slog.String("user_id", userID.String()))
	return updated, nil
}

func mergeSettings(current domain.UserSettings, input UpdateSettingsInput) domain.UserSettings {
	next := current

	if input.Proficiency != nil {
		next.Proficiency = *input.Proficiency
	}
	if input.NewCardsPerDay != nil {
		next.NewCardsPerDay = *input.NewCardsPerDay
	}
	if input.StudyTimeMinutes != nil {
		next.StudyTimeMinutes = *input.StudyTimeMinutes
	}
	if input.Timezone != nil {
		next.Timezone = *input.Timezone
	}

	return next
}

// settingsDiff reports changed fields as old/new pairs for the audit log.
func settingsDiff(old, next domain.UserSettings) map[string]any {
	changes := make(map[string]any)

	if old.Proficiency != next.Proficiency {
		changes["proficiency"] = map[string]any{"old": old.Proficiency, "new": next.Proficiency}
	}
	if old.NewCardsPerDay != next.NewCardsPerDay {
		changes["new_cards_per_day"] = map[string]any{"old": old.NewCardsPerDay, "new": next.NewCardsPerDay}
	}
	if old.StudyTimeMinutes != next.StudyTimeMinutes {
		changes["study_time_minutes"] = map[string]any{"old": old.StudyTimeMinutes, "new": next.StudyTimeMinutes}
	}
	if old.Timezone != next.Timezone {
		changes["timezone"] = map[string]any{"old": old.Timezone, "new": next.Timezone}
	}

	return changes
}
