package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/internal/service/flashcard"
)

type studyServiceMock struct {
	GetStudyQueueFunc    func(ctx context.Context, input flashcard.GetQueueInput) ([]*domain.Flashcard, error)
	PlanStudySessionFunc func(ctx context.Context, input flashcard.PlanSessionInput) (domain.StudyLoadPlan, error)
	GetStudyStatsFunc    func(ctx context.Context) (domain.StudyStats, error)
	GetDashboardFunc     func(ctx context.Context) (domain.Dashboard, error)
}

func (m *studyServiceMock) GetStudyQueue(ctx context.Context, input flashcard.GetQueueInput) ([]*domain.Flashcard, error) {
	return m.GetStudyQueueFunc(ctx, input)
}

func (m *studyServiceMock) PlanStudySession(ctx context.Context, input flashcard.PlanSessionInput) (domain.StudyLoadPlan, error) {
	return m.PlanStudySessionFunc(ctx, input)
}

func (m *studyServiceMock) GetStudyStats(ctx context.Context) (domain.StudyStats, error) {
	return m.GetStudyStatsFunc(ctx)
}

func (m *studyServiceMock) GetDashboard(ctx context.Context) (domain.Dashboard, error) {
	return m.GetDashboardFunc(ctx)
}

func TestStudyQueue(t *testing.T) {
	mock := &studyServiceMock{
		GetStudyQueueFunc: func(ctx context.Context, input flashcard.GetQueueInput) ([]*domain.Flashcard, error) {
			if input.Limit != 10 {
				t.Errorf("expected limit 10, got %d", input.Limit)
			}
			return []*domain.Flashcard{testCard(uuid.New()), testCard(uuid.New())}, nil
		},
	}
	h := NewStudyHandler(mock, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/study/queue?limit=10", nil)
	rec := httptest.NewRecorder()
	h.Queue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp cardListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("expected total 2, got %d", resp.Total)
	}
	if len(resp.Cards) != 2 {
		t.Errorf("expected 2 cards, got %d", len(resp.Cards))
	}
}

func TestStudyPlan(t *testing.T) {
	mock := &studyServiceMock{
		PlanStudySessionFunc: func(ctx context.Context, input flashcard.PlanSessionInput) (domain.StudyLoadPlan, error) {
			if input.TimeMinutes != 45 {
				t.Errorf("expected 45 minutes, got %d", input.TimeMinutes)
			}
			return domain.StudyLoadPlan{NewCards: 3, ReviewCards: 15, EstimatedTimeMinutes: 36}, nil
		},
	}
	h := NewStudyHandler(mock, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/study/plan?timeMinutes=45", nil)
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp planResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.NewCards != 3 || resp.ReviewCards != 15 {
		t.Errorf("unexpected plan: %+v", resp)
	}
	if resp.TotalCards != 18 {
		t.Errorf("expected total 18, got %d", resp.TotalCards)
	}
}

func TestStudyStats(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	mock := &studyServiceMock{
		GetStudyStatsFunc: func(ctx context.Context) (domain.StudyStats, error) {
			return domain.StudyStats{
				TotalReviews:   120,
				AverageRating:  3.8,
				TotalStudyTime: 5400,
				RetentionRate:  85,
				Streak:         6,
				WeeklyProgress: []domain.DailyActivity{
					{Date: day, ReviewCount: 20, TimeSpentSec: 900},
				},
			}, nil
		},
	}
	h := NewStudyHandler(mock, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/study/stats", nil)
	rec := httptest.NewRecorder()
	h.Stats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalReviews != 120 || resp.RetentionRate != 85 || resp.Streak != 6 {
		t.Errorf("unexpected stats: %+v", resp)
	}
	if len(resp.WeeklyProgress) != 1 || resp.WeeklyProgress[0].ReviewCount != 20 {
		t.Errorf("unexpected weekly progress: %+v", resp.WeeklyProgress)
	}
}

func TestStudyDashboard(t *testing.T) {
	mock := &studyServiceMock{
		GetDashboardFunc: func(ctx context.Context) (domain.Dashboard, error) {
			return domain.Dashboard{
				DueCount:      7,
				NewCount:      12,
				OverdueCount:  2,
				ReviewedToday: 5,
				Streak:        3,
				StatusCounts:  domain.CardStatusCounts{New: 12, Learning: 4, Review: 9, Mastered: 1, Total: 26},
			}, nil
		},
	}
	h := NewStudyHandler(mock, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/study/dashboard", nil)
	rec := httptest.NewRecorder()
	h.Dashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dashboardResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DueCount != 7 || resp.OverdueCount != 2 {
		t.Errorf("unexpected dashboard: %+v", resp)
	}
	if resp.StatusCounts.Total != 26 || resp.StatusCounts.Mastered != 1 {
		t.Errorf("unexpected status counts: %+v", resp.StatusCounts)
	}
}

func TestStudyQueueUnauthorized(t *testing.T) {
	mock := &studyServiceMock{
		GetStudyQueueFunc: func(ctx context.Context, input flashcard.GetQueueInput) ([]*domain.Flashcard, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewStudyHandler(mock, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/study/queue", nil)
	rec := httptest.NewRecorder()
	h.Queue(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
