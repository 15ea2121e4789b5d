package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/internal/service/user"
)

// userService defines the interface needed by UserHandler.
type userService interface {
	GetProfile(ctx context.Context) (*domain.User, error)
	GetSettings(ctx context.Context) (*domain.UserSettings, error)
	UpdateSettings(ctx context.Context, input user.UpdateSettingsInput) (*domain.UserSettings, error)
}

// UserHandler serves the profile and settings endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

type settingsResponse struct {
	Proficiency      string `json:"proficiency"`
	NewCardsPerDay   int    `json:"newCardsPerDay"`
	StudyTimeMinutes int    `json:"studyTimeMinutes"`
	Timezone         string `json:"timezone"`
}

type updateSettingsRequest struct {
	Proficiency      *string `json:"proficiency,omitempty"`
	NewCardsPerDay   *int    `json:"newCardsPerDay,omitempty"`
	StudyTimeMinutes *int    `json:"studyTimeMinutes,omitempty"`
	Timezone         *string `json:"timezone,omitempty"`
}

// Profile handles GET /api/v1/users/me.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetProfile(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Role:  u.Role.String(),
	})
}

// GetSettings handles GET /api/v1/users/me/settings.
func (h *UserHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

// UpdateSettings handles PATCH /api/v1/users/me/settings. Absent fields are
// left unchanged.
func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := user.UpdateSettingsInput{
		NewCardsPerDay:   req.NewCardsPerDay,
		StudyTimeMinutes: req.StudyTimeMinutes,
		Timezone:         req.Timezone,
	}
	if req.Proficiency != nil {
		p := domain.ProficiencyTier(*req.Proficiency)
		input.Proficiency = &p
	}

	settings, err := h.svc.UpdateSettings(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func toSettingsResponse(s *domain.UserSettings) settingsResponse {
	return settingsResponse{
		Proficiency:      s.Proficiency.String(),
		NewCardsPerDay:   s.NewCardsPerDay,
		StudyTimeMinutes: s.StudyTimeMinutes,
		Timezone:         s.Timezone,
	}
}
