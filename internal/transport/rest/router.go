package rest

import "net/http"

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Flashcards *FlashcardHandler
	Study      *StudyHandler
	User       *UserHandler
	Health     *HealthHandler
}

// NewRouter mounts all API routes on a ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /live", h.Health.Live)

	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Auth.Logout)

	mux.HandleFunc("POST /api/v1/flashcards", h.Flashcards.Create)
	mux.HandleFunc("GET /api/v1/flashcards", h.Flashcards.List)
	mux.HandleFunc("GET /api/v1/flashcards/{id}", h.Flashcards.Get)
	mux.HandleFunc("DELETE /api/v1/flashcards/{id}", h.Flashcards.Delete)
	mux.HandleFunc("POST /api/v1/flashcards/{id}/review", h.Flashcards.Review)
	mux.HandleFunc("POST /api/v1/flashcards/{id}/review/undo", h.Flashcards.Undo)
	mux.HandleFunc("GET /api/v1/flashcards/{id}/history", h.Flashcards.History)
	mux.HandleFunc("GET /api/v1/flashcards/{id}/difficulty", h.Flashcards.Suggest)

	mux.HandleFunc("GET /api/v1/study/queue", h.Study.Queue)
	mux.HandleFunc("GET /api/v1/study/plan", h.Study.Plan)
	mux.HandleFunc("GET /api/v1/study/stats", h.Study.Stats)
	mux.HandleFunc("GET /api/v1/study/dashboard", h.Study.Dashboard)

	mux.HandleFunc("GET /api/v1/users/me", h.User.Profile)
	mux.HandleFunc("GET /api/v1/users/me/settings", h.User.GetSettings)
	mux.HandleFunc("PATCH /api/v1/users/me/settings", h.User.UpdateSettings)

	return mux
}
