//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_User_Profile verifies GET /users/me returns the registered user.
func TestE2E_User_Profile(t *testing.T) {
	ts := setupTestServer(t)
	sess := registerUser(t, ts)

	status, body := ts.request(t, http.MethodGet, "/api/v1/users/me", nil, sess.AccessToken)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, sess.UserID, body["id"])
	assert.Equal(t, sess.Email, body["email"])
	assert.Equal(t, "user", body["role"])
}

// TestE2E_User_DefaultSettings verifies registration creates the default
// settings row.
func TestE2E_User_DefaultSettings(t *testing.T) {
	ts := setupTestServer(t)
	sess := registerUser(t, ts)

	status, body := ts.request(t, http.MethodGet, "/api/v1/users/me/settings", nil, sess.AccessToken)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "beginner", body["proficiency"])
	assert.EqualValues(t, 20, body["newCardsPerDay"])
	assert.EqualValues(t, 30, body["studyTimeMinutes"])
	assert.Equal(t, "UTC", body["timezone"])
}

// TestE2E_User_UpdateSettings patches a subset of fields and verifies the
// rest are untouched.
func TestE2E_User_UpdateSettings(t *testing.T) {
	ts := setupTestServer(t)
	sess := registerUser(t, ts)

	status, body := ts.request(t, http.MethodPatch, "/api/v1/users/me/settings", map[string]any{
		"proficiency":    "advanced",
		"newCardsPerDay": 35,
	}, sess.AccessToken)
	require.Equal(t, http.StatusOK, status, "update settings: %v", body)

	assert.Equal(t, "advanced", body["proficiency"])
	assert.EqualValues(t, 35, body["newCardsPerDay"])
	assert.EqualValues(t, 30, body["studyTimeMinutes"], "untouched field keeps its value")
	assert.Equal(t, "UTC", body["timezone"])

	// The change persists.
	status, body = ts.request(t, http.MethodGet, "/api/v1/users/me/settings", nil, sess.AccessToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "advanced", body["proficiency"])
	assert.EqualValues(t, 35, body["newCardsPerDay"])
}

// TestE2E_User_UpdateSettingsValidation verifies bad values return 400 with
// field errors.
func TestE2E_User_UpdateSettingsValidation(t *testing.T) {
	ts := setupTestServer(t)
	sess := registerUser(t, ts)

	status, body := ts.request(t, http.MethodPatch, "/api/v1/users/me/settings", map[string]any{
		"newCardsPerDay": -5,
		"timezone":       "Mars/Olympus_Mons",
	}, sess.AccessToken)
	require.Equal(t, http.StatusBadRequest, status)

	fields, ok := body["fields"].([]any)
	require.True(t, ok, "expected fields array: %v", body)
	assert.Len(t, fields, 2)
}
