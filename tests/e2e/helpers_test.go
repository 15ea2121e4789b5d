//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/asvabprep/backend/internal/adapter/postgres"
	auditrepo "github.com/asvabprep/backend/internal/adapter/postgres/audit"
	cardrepo "github.com/asvabprep/backend/internal/adapter/postgres/flashcard"
	reviewrepo "github.com/asvabprep/backend/internal/adapter/postgres/review"
	"github.com/asvabprep/backend/internal/adapter/postgres/testhelper"
	tokenrepo "github.com/asvabprep/backend/internal/adapter/postgres/token"
	userrepo "github.com/asvabprep/backend/internal/adapter/postgres/user"
	internalauth "github.com/asvabprep/backend/internal/auth"
	"github.com/asvabprep/backend/internal/config"
	authsvc "github.com/asvabprep/backend/internal/service/auth"
	"github.com/asvabprep/backend/internal/service/flashcard"
	"github.com/asvabprep/backend/internal/service/flashcard/sm2"
	usersvc "github.com/asvabprep/backend/internal/service/user"
	"github.com/asvabprep/backend/internal/transport/middleware"
	"github.com/asvabprep/backend/internal/transport/rest"
)

// testServer wraps the full HTTP stack backed by a real PostgreSQL
// container (shared via testhelper).
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application stack the same way internal/app
// wires it, minus config loading and migrations (testhelper applies those).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	txm := postgres.NewTxManager(pool)
	cards := cardrepo.New(pool)
	reviews := reviewrepo.New(pool)
	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	audit := auditrepo.New(pool)

	authCfg := config.AuthConfig{
		JWTSecret:        "test-secret-at-least-32-chars-long!!",
		JWTIssuer:        "asvabprep-test",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  720 * time.Hour,
		PasswordHashCost: 4, // bcrypt.MinCost keeps registration fast
	}
	jwtMgr := internalauth.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, users, tokens, txm, jwtMgr, authCfg)

	flashcardService := flashcard.NewService(
		logger, cards, reviews, users, audit, txm,
		sm2.Config{
			DefaultEaseFactor:   2.5,
			MinEaseFactor:       1.3,
			MaxEaseFactor:       5.0,
			GraduatingInterval:  4,
			MasteryRepetitions:  8,
			MasteryIntervalDays: 30,
			JitterSpread:        0.1,
		},
		10000,
		20,
		24*time.Hour,
	)

	userService := usersvc.NewService(logger, users, users, audit, txm)

	router := rest.NewRouter(rest.Handlers{
		Auth:       rest.NewAuthHandler(authService, logger),
		Flashcards: rest.NewFlashcardHandler(flashcardService, logger),
		Study:      rest.NewStudyHandler(flashcardService, logger),
		User:       rest.NewUserHandler(userService, logger),
		Health:     rest.NewHealthHandler(pool, "test-version"),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		middleware.Auth(authService),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// request sends a JSON request and returns the status code and decoded body.
// A nil body sends no payload; an empty token sends no Authorization header.
func (ts *testServer) request(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	}
	return resp.StatusCode, result
}

// session is a registered user plus their tokens.
type session struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
}

// registerUser registers a fresh user through the API and returns the session.
func registerUser(t *testing.T, ts *testServer) *session {
	t.Helper()

	email := fmt.Sprintf("recruit-%s@example.com", uuid.New().String()[:8])

	status, body := ts.request(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":    email,
		"password": "correct-horse-battery",
	}, "")
	require.Equal(t, http.StatusCreated, status, "register: %v", body)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "expected user object in register response")

	return &session{
		UserID:       user["id"].(string),
		Email:        email,
		AccessToken:  body["accessToken"].(string),
		RefreshToken: body["refreshToken"].(string),
	}
}

// createCard creates one flashcard through the API and returns its id.
func createCard(t *testing.T, ts *testServer, sess *session, category, front, back string) string {
	t.Helper()

	status, body := ts.request(t, http.MethodPost, "/api/v1/flashcards", map[string]any{
		"category": category,
		"front":    front,
		"back":     back,
	}, sess.AccessToken)
	require.Equal(t, http.StatusCreated, status, "create card: %v", body)

	id, ok := body["id"].(string)
	require.True(t, ok, "expected card id in response")
	return id
}
