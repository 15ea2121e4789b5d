// Package flashcard implements the spaced-repetition study flow: scheduling
// reviews through the sm2 engine, planning session composition, and deriving
// study statistics from the review event log.
package flashcard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/internal/service/flashcard/sm2"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type flashcardRepo interface {
	GetByID(ctx context.Context, userID, cardID uuid.UUID) (*domain.Flashcard, error)
	Create(ctx context.Context, card *domain.Flashcard) (*domain.Flashcard, error)
	UpdateSRS(ctx context.Context, userID, cardID uuid.UUID, params domain.SRSUpdateParams) (*domain.Flashcard, error)
	RestoreSRS(ctx context.Context, userID, cardID uuid.UUID, snapshot domain.CardSnapshot) (*domain.Flashcard, error)
	Delete(ctx context.Context, userID, cardID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.CardFilter) ([]*domain.Flashcard, int, error)
	GetDueCards(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.Flashcard, error)
	GetNewCards(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Flashcard, error)
	CountByStatus(ctx context.Context, userID uuid.UUID) (domain.CardStatusCounts, error)
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
	CountNew(ctx context.Context, userID uuid.UUID) (int, error)
	CountOverdue(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type reviewRepo interface {
	Create(ctx context.Context, event *domain.ReviewEvent) (*domain.ReviewEvent, error)
	GetByCardID(ctx context.Context, cardID uuid.UUID, limit, offset int) ([]*domain.ReviewEvent, int, error)
	GetLastByCardID(ctx context.Context, cardID uuid.UUID) (*domain.ReviewEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.ReviewEvent, error)
	CountToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
	CountNewToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
	GetDayCounts(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.DayReviewCount, error)
	GetStatsByCardID(ctx context.Context, cardID uuid.UUID) (domain.CardReviewAggregation, error)
}

type settingsRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the flashcard study business logic.
type Service struct {
	cards    flashcardRepo
	reviews  reviewRepo
	settings settingsRepo
	audit    auditLogger
	tx       txManager
	clock    clock
	log      *slog.Logger

	srsConfig         sm2.Config
	maxCardsPerUser   int
	defaultQueueLimit int
	undoWindow        time.Duration
}

// NewService creates a new flashcard service.
func NewService(
	log *slog.Logger,
	cards flashcardRepo,
	reviews reviewRepo,
	settings settingsRepo,
	audit auditLogger,
	tx txManager,
	srsConfig sm2.Config,
	maxCardsPerUser int,
	defaultQueueLimit int,
	undoWindow time.Duration,
) *Service {
	return &Service{
		cards:             cards,
		reviews:           reviews,
		settings:          settings,
		audit:             audit,
		tx:                tx,
		clock:             systemClock{},
		log:               log.With("service", "flashcard"),
		srsConfig:         srsConfig,
		maxCardsPerUser:   maxCardsPerUser,
		defaultQueueLimit: defaultQueueLimit,
		undoWindow:        undoWindow,
	}
}
