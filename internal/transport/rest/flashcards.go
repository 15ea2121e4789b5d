package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/internal/service/flashcard"
)

// flashcardService defines the interface needed by FlashcardHandler.
type flashcardService interface {
	CreateCard(ctx context.Context, input flashcard.CreateCardInput) (*domain.Flashcard, error)
	GetCard(ctx context.Context, input flashcard.GetCardInput) (*domain.Flashcard, error)
	ListCards(ctx context.Context, input flashcard.ListCardsInput) ([]*domain.Flashcard, int, error)
	DeleteCard(ctx context.Context, input flashcard.DeleteCardInput) error
	ReviewCard(ctx context.Context, input flashcard.ReviewCardInput) (*flashcard.ReviewOutcome, error)
	UndoReview(ctx context.Context, input flashcard.UndoReviewInput) (*domain.Flashcard, error)
	GetCardHistory(ctx context.Context, input flashcard.GetCardHistoryInput) ([]*domain.ReviewEvent, int, error)
	SuggestDifficulty(ctx context.Context, input flashcard.SuggestDifficultyInput) (*flashcard.DifficultySuggestion, error)
}

// FlashcardHandler serves the flashcard CRUD and review endpoints.
type FlashcardHandler struct {
	svc flashcardService
	log *slog.Logger
}

// NewFlashcardHandler creates a FlashcardHandler.
func NewFlashcardHandler(svc flashcardService, logger *slog.Logger) *FlashcardHandler {
	return &FlashcardHandler{svc: svc, log: logger.With("handler", "flashcards")}
}

type createCardRequest struct {
	Category   string `json:"category"`
	Front      string `json:"front"`
	Back       string `json:"back"`
	Difficulty string `json:"difficulty"`
}

type cardResponse struct {
	ID             string     `json:"id"`
	Category       string     `json:"category"`
	Front          string     `json:"front"`
	Back           string     `json:"back"`
	Difficulty     string     `json:"difficulty"`
	Status         string     `json:"status"`
	IntervalDays   int        `json:"intervalDays"`
	Repetitions    int        `json:"repetitions"`
	EaseFactor     float64    `json:"easeFactor"`
	NextReviewAt   *time.Time `json:"nextReviewAt,omitempty"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type cardListResponse struct {
	Cards []cardResponse `json:"cards"`
	Total int            `json:"total"`
}

// Create handles POST /api/v1/flashcards.
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	difficulty := domain.DifficultyTier(req.Difficulty)
	if req.Difficulty == "" {
		difficulty = domain.DifficultyMedium
	}

	card, err := h.svc.CreateCard(r.Context(), flashcard.CreateCardInput{
		Category:   domain.AsvabCategory(req.Category),
		Front:      req.Front,
		Back:       req.Back,
		Difficulty: difficulty,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCardResponse(card))
}

// Get handles GET /api/v1/flashcards/{id}.
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	card, err := h.svc.GetCard(r.Context(), flashcard.GetCardInput{CardID: cardID})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(card))
}

// List handles GET /api/v1/flashcards?category=&status=&limit=&offset=.
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.CardFilter{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}
	if v := r.URL.Query().Get("category"); v != "" {
		c := domain.AsvabCategory(v)
		filter.Category = &c
	}
	if v := r.URL.Query().Get("status"); v != "" {
		s := domain.CardStatus(v)
		filter.Status = &s
	}

	cards, total, err := h.svc.ListCards(r.Context(), flashcard.ListCardsInput{Filter: filter})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := cardListResponse{Cards: make([]cardResponse, 0, len(cards)), Total: total}
	for _, card := range cards {
		resp.Cards = append(resp.Cards, toCardResponse(card))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/flashcards/{id}.
func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	if err := h.svc.DeleteCard(r.Context(), flashcard.DeleteCardInput{CardID: cardID}); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type reviewRequest struct {
	Rating       float64 `json:"rating"`
	TimeSpentSec int     `json:"timeSpentSec"`
	WasCorrect   *bool   `json:"wasCorrect,omitempty"`
}

type reviewResponse struct {
	Card          cardResponse `json:"card"`
	AppliedRating int          `json:"appliedRating"`
	Mastered      bool         `json:"mastered"`
}

// Review handles POST /api/v1/flashcards/{id}/review.
// The rating arrives as a JSON number and is sanitized server-side; an
// out-of-range value never produces a 4xx.
func (h *FlashcardHandler) Review(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.svc.ReviewCard(r.Context(), flashcard.ReviewCardInput{
		CardID:       cardID,
		Rating:       req.Rating,
		TimeSpentSec: req.TimeSpentSec,
		WasCorrect:   req.WasCorrect,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reviewResponse{
		Card:          toCardResponse(outcome.Card),
		AppliedRating: outcome.Rating,
		Mastered:      outcome.Mastered,
	})
}

// Undo handles POST /api/v1/flashcards/{id}/review/undo.
func (h *FlashcardHandler) Undo(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	card, err := h.svc.UndoReview(r.Context(), flashcard.UndoReviewInput{CardID: cardID})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(card))
}

type historyEventResponse struct {
	ID           string    `json:"id"`
	Rating       int       `json:"rating"`
	TimeSpentSec int       `json:"timeSpentSec"`
	WasCorrect   *bool     `json:"wasCorrect,omitempty"`
	ReviewedAt   time.Time `json:"reviewedAt"`
}

type historyResponse struct {
	Events []historyEventResponse `json:"events"`
	Total  int                    `json:"total"`
}

// History handles GET /api/v1/flashcards/{id}/history?limit=&offset=.
func (h *FlashcardHandler) History(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	events, total, err := h.svc.GetCardHistory(r.Context(), flashcard.GetCardHistoryInput{
		CardID: cardID,
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := historyResponse{Events: make([]historyEventResponse, 0, len(events)), Total: total}
	for _, e := range events {
		resp.Events = append(resp.Events, historyEventResponse{
			ID:           e.ID.String(),
			Rating:       e.Rating,
			TimeSpentSec: e.TimeSpentSec,
			WasCorrect:   e.WasCorrect,
			ReviewedAt:   e.ReviewedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type suggestionResponse struct {
	CardID        string  `json:"cardId"`
	Current       string  `json:"current"`
	Suggested     string  `json:"suggested"`
	AverageRating float64 `json:"averageRating"`
	SampleSize    int     `json:"sampleSize"`
}

// Suggest handles GET /api/v1/flashcards/{id}/difficulty. The suggestion is
// advisory; nothing is persisted.
func (h *FlashcardHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	suggestion, err := h.svc.SuggestDifficulty(r.Context(), flashcard.SuggestDifficultyInput{CardID: cardID})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestionResponse{
		CardID:        suggestion.CardID,
		Current:       suggestion.Current.String(),
		Suggested:     suggestion.Suggested.String(),
		AverageRating: suggestion.AverageRating,
		SampleSize:    suggestion.SampleSize,
	})
}

func toCardResponse(card *domain.Flashcard) cardResponse {
	return cardResponse{
		ID:             card.ID.String(),
		Category:       card.Category.String(),
		Front:          card.Front,
		Back:           card.Back,
		Difficulty:     card.Difficulty.String(),
		Status:         card.Status.String(),
		IntervalDays:   card.IntervalDays,
		Repetitions:    card.Repetitions,
		EaseFactor:     card.EaseFactor,
		NextReviewAt:   card.NextReviewAt,
		LastReviewedAt: card.LastReviewedAt,
		CreatedAt:      card.CreatedAt,
	}
}
