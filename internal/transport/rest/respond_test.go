package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asvabprep/backend/internal/domain"
)

func TestHandleError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("repo: %w", domain.ErrNotFound), http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"already exists", domain.ErrAlreadyExists, http.StatusConflict},
		{"conflict", domain.ErrConflict, http.StatusConflict},
		{"limit exceeded", domain.ErrLimitExceeded, http.StatusUnprocessableEntity},
		{"validation", domain.NewValidationError("front", "required"), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			handleError(slog.Default(), rec, req, tc.err)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestHandleError_ValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	err := domain.NewValidationErrors([]domain.FieldError{
		{Field: "front", Message: "required"},
		{Field: "category", Message: "unknown ASVAB category"},
	})
	handleError(slog.Default(), rec, req, err)

	var resp validationErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(resp.Fields))
	}
	if resp.Fields[0].Field != "front" {
		t.Errorf("first field = %q, want front", resp.Fields[0].Field)
	}
}

func TestQueryInt(t *testing.T) {
	cases := []struct {
		url  string
		want int
	}{
		{"/?limit=25", 25},
		{"/?limit=", 10},
		{"/", 10},
		{"/?limit=abc", 10},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.url, nil)
		if got := queryInt(req, "limit", 10); got != tc.want {
			t.Errorf("queryInt(%q) = %d, want %d", tc.url, got, tc.want)
		}
	}
}
