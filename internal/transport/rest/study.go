package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/internal/service/flashcard"
)

// studyService defines the interface needed by StudyHandler.
type studyService interface {
	GetStudyQueue(ctx context.Context, input flashcard.GetQueueInput) ([]*domain.Flashcard, error)
	PlanStudySession(ctx context.Context, input flashcard.PlanSessionInput) (domain.StudyLoadPlan, error)
	GetStudyStats(ctx context.Context) (domain.StudyStats, error)
	GetDashboard(ctx context.Context) (domain.Dashboard, error)
}

// StudyHandler serves the study queue, planner, stats and dashboard endpoints.
type StudyHandler struct {
	svc studyService
	log *slog.Logger
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(svc studyService, logger *slog.Logger) *StudyHandler {
	return &StudyHandler{svc: svc, log: logger.With("handler", "study")}
}

// Queue handles GET /api/v1/study/queue?limit=.
func (h *StudyHandler) Queue(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.GetStudyQueue(r.Context(), flashcard.GetQueueInput{
		Limit: queryInt(r, "limit", 0),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := cardListResponse{Cards: make([]cardResponse, 0, len(cards)), Total: len(cards)}
	for _, card := range cards {
		resp.Cards = append(resp.Cards, toCardResponse(card))
	}
	writeJSON(w, http.StatusOK, resp)
}

type planResponse struct {
	NewCards             int     `json:"newCards"`
	ReviewCards          int     `json:"reviewCards"`
	TotalCards           int     `json:"totalCards"`
	EstimatedTimeMinutes float64 `json:"estimatedTimeMinutes"`
}

// Plan handles GET /api/v1/study/plan?timeMinutes=. Zero falls back to the
// user's configured session length.
func (h *StudyHandler) Plan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.PlanStudySession(r.Context(), flashcard.PlanSessionInput{
		TimeMinutes: queryInt(r, "timeMinutes", 0),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, planResponse{
		NewCards:             plan.NewCards,
		ReviewCards:          plan.ReviewCards,
		TotalCards:           plan.TotalCards(),
		EstimatedTimeMinutes: plan.EstimatedTimeMinutes,
	})
}

type dailyActivityResponse struct {
	Date         time.Time `json:"date"`
	ReviewCount  int       `json:"reviewCount"`
	TimeSpentSec int       `json:"timeSpentSec"`
}

type statsResponse struct {
	TotalReviews       int                     `json:"totalReviews"`
	AverageRating      float64                 `json:"averageRating"`
	TotalStudyTime     int                     `json:"totalStudyTimeSec"`
	AverageTimePerCard float64                 `json:"averageTimePerCardSec"`
	RetentionRate      int                     `json:"retentionRate"`
	Streak             int                     `json:"streak"`
	CardsPerDay        float64                 `json:"cardsPerDay"`
	WeeklyProgress     []dailyActivityResponse `json:"weeklyProgress"`
}

// Stats handles GET /api/v1/study/stats.
func (h *StudyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetStudyStats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := statsResponse{
		TotalReviews:       stats.TotalReviews,
		AverageRating:      stats.AverageRating,
		TotalStudyTime:     stats.TotalStudyTime,
		AverageTimePerCard: stats.AverageTimePerCard,
		RetentionRate:      stats.RetentionRate,
		Streak:             stats.Streak,
		CardsPerDay:        stats.CardsPerDay,
		WeeklyProgress:     make([]dailyActivityResponse, 0, len(stats.WeeklyProgress)),
	}
	for _, day := range stats.WeeklyProgress {
		resp.WeeklyProgress = append(resp.WeeklyProgress, dailyActivityResponse{
			Date:         day.Date,
			ReviewCount:  day.ReviewCount,
			TimeSpentSec: day.TimeSpentSec,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type statusCountsResponse struct {
	New      int `json:"new"`
	Learning int `json:"learning"`
	Review   int `json:"review"`
	Mastered int `json:"mastered"`
	Total    int `json:"total"`
}

type dashboardResponse struct {
	DueCount      int                  `json:"dueCount"`
	NewCount      int                  `json:"newCount"`
	OverdueCount  int                  `json:"overdueCount"`
	ReviewedToday int                  `json:"reviewedToday"`
	NewToday      int                  `json:"newToday"`
	Streak        int                  `json:"streak"`
	StatusCounts  statusCountsResponse `json:"statusCounts"`
}

// Dashboard handles GET /api/v1/study/dashboard.
func (h *StudyHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		DueCount:      d.DueCount,
		NewCount:      d.NewCount,
		OverdueCount:  d.OverdueCount,
		ReviewedToday: d.ReviewedToday,
		NewToday:      d.NewToday,
		Streak:        d.Streak,
		StatusCounts: statusCountsResponse{
			New:      d.StatusCounts.New,
			Learning: d.StatusCounts.Learning,
			Review:   d.StatusCounts.Review,
			Mastered: d.StatusCounts.Mastered,
			Total:    d.StatusCounts.Total,
		},
	})
}
