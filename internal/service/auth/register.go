package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/asvabprep/backend/internal/domain"
)

// Register creates a new account with default study settings and signs the user in.
// Returns ErrAlreadyExists if the email is taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}

	var created *domain.User
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err = s.users.Create(ctx, &domain.User{
			Email:        input.Email,
			PasswordHash: string(hash),
			Role:         domain.UserRoleUser,
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		settings := domain.DefaultUserSettings(created.ID)
		if err := s.settings.CreateSettings(ctx, &settings); err != nil {
			return fmt.Errorf("create settings: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", created.ID.String()))

	result, err := s.issueTokens(ctx, created)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}
	return result, nil
}
