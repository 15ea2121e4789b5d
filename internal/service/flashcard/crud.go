package flashcard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/pkg/ctxutil"
)

// CreateCard creates a flashcard for the user. New cards start with zero SRS
// state; their first review creates it.
func (s *Service) CreateCard(ctx context.Context, input CreateCardInput) (*domain.Flashcard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	count, err := s.cards.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count cards: %w", err)
	}
	if count >= s.maxCardsPerUser {
		return nil, fmt.Errorf("max %d cards per user: %w", s.maxCardsPerUser, domain.ErrLimitExceeded)
	}

	card := &domain.Flashcard{
		ID:         uuid.New(),
		UserID:     userID,
		Category:   input.Category,
		Front:      input.Front,
		Back:       input.Back,
		Difficulty: input.Difficulty,
		Status:     domain.CardStatusNew,
		EaseFactor: s.srsConfig.DefaultEaseFactor,
	}

	var created *domain.Flashcard
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.cards.Create(txCtx, card)
		if createErr != nil {
			return fmt.Errorf("create flashcard: %w", createErr)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeFlashcard,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"category":   map[string]any{"new": created.Category},
				"difficulty": map[string]any{"new": created.Difficulty},
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "flashcard created",
		slog.String("user_id", userID.String()),
		slog.String("card_id", created.ID.String()),
		slog.String("category", string(created.Category)),
	)

	return created, nil
}

// GetCard returns a single flashcard owned by the user.
func (s *Service) GetCard(ctx context.Context, input GetCardInput) (*domain.Flashcard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.cards.GetByID(ctx, userID, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("get flashcard: %w", err)
	}

	return card, nil
}

// ListCards returns the user's flashcards filtered by category and status.
func (s *Service) ListCards(ctx context.Context, input ListCardsInput) ([]*domain.Flashcard, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	filter := input.Filter
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	cards, total, err := s.cards.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list flashcards: %w", err)
	}

	return cards, total, nil
}

// DeleteCard removes a flashcard and logs the deletion. The card's review
// events go with it via the database cascade.
func (s *Service) DeleteCard(ctx context.Context, input DeleteCardInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	card, err := s.cards.GetByID(ctx, userID, input.CardID)
	if err != nil {
		return fmt.Errorf("get flashcard: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.cards.Delete(txCtx, userID, card.ID); delErr != nil {
			return fmt.Errorf("delete flashcard: %w", delErr)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeFlashcard,
			EntityID:   &card.ID,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"category": map[string]any{"old": card.Category},
			},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "flashcard deleted",
		slog.String("user_id", userID.String()),
		slog.String("card_id", card.ID.String()),
	)

	return nil
}
