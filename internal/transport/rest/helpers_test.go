package rest

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newPathIDRequest builds a request with the {id} path value set, the way the
// ServeMux would after pattern matching.
func newPathIDRequest(method, target string, id uuid.UUID, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.SetPathValue("id", id.String())
	return req
}
