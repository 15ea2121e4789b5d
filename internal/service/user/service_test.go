package user

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/pkg/ctxutil"
)

type mockUserRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

type mockSettingsRepo struct {
	GetByUserIDFunc    func(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	UpdateSettingsFunc func(ctx context.Context, settings *domain.UserSettings) (*domain.UserSettings, error)
}

func (m *mockSettingsRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSettingsRepo) UpdateSettings(ctx context.Context, settings *domain.UserSettings) (*domain.UserSettings, error) {
	if m.UpdateSettingsFunc != nil {
		return m.UpdateSettingsFunc(ctx, settings)
	}
	return settings, nil
}

type mockAuditLogger struct {
	LogFunc func(ctx context.Context, record domain.AuditRecord) error
}

func (m *mockAuditLogger) Log(ctx context.Context, record domain.AuditRecord) error {
	if m.LogFunc != nil {
		return m.LogFunc(ctx, record)
	}
	return nil
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

type testDeps struct {
	users    *mockUserRepo
	settings *mockSettingsRepo
	audit    *mockAuditLogger
	tx       *mockTxManager
}

func newTestService(t *testing.T) (*Service, *testDeps) {
	t.Helper()
	deps := &testDeps{
		users:    &mockUserRepo{},
		settings: &mockSettingsRepo{},
		audit:    &mockAuditLogger{},
		tx:       &mockTxManager{},
	}
	svc := NewService(slog.Default(), deps.users, deps.settings, deps.audit, deps.tx)
	return svc, deps
}

func authCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func ptr[T any](v T) *T { return &v }

func TestGetSettings(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)

	userID := uuid.New()
	deps.settings.GetByUserIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.UserSettings, error) {
		require.Equal(t, userID, id)
		s := domain.DefaultUserSettings(id)
		return &s, nil
	}

	settings, err := svc.GetSettings(authCtx(userID))
	require.NoError(t, err)
	assert.Equal(t, 20, settings.NewCardsPerDay)
}

func TestGetSettings_Unauthorized(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	_, err := svc.GetSettings(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateSettings_PartialMerge(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)

	userID := uuid.New()
	deps.settings.GetByUserIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.UserSettings, error) {
		s := domain.DefaultUserSettings(id)
		return &s, nil
	}

	var saved *domain.UserSettings
	deps.settings.UpdateSettingsFunc = func(ctx context.Context, settings *domain.UserSettings) (*domain.UserSettings, error) {
		saved = settings
		return settings, nil
	}

	var audited domain.AuditRecord
	deps.audit.LogFunc = func(ctx context.Context, record domain.AuditRecord) error {
		audited = record
		return nil
	}

	updated, err := svc.UpdateSettings(authCtx(userID), UpdateSettingsInput{
		Proficiency:    ptr(domain.ProficiencyAdvanced),
		NewCardsPerDay: ptr(35),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ProficiencyAdvanced, updated.Proficiency)
	assert.Equal(t, 35, updated.NewCardsPerDay)
	assert.Equal(t, 30, saved.StudyTimeMinutes, "untouched fields keep current values")
	assert.Equal(t, "UTC", saved.Timezone)

	assert.Equal(t, domain.AuditActionUpdate, audited.Action)
	assert.Contains(t, audited.Changes, "proficiency")
	assert.Contains(t, audited.Changes, "new_cards_per_day")
	assert.NotContains(t, audited.Changes, "timezone")
}

func TestUpdateSettings_NoChangesSkipsAudit(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)

	userID := uuid.New()
	deps.settings.GetByUserIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.UserSettings, error) {
		s := domain.DefaultUserSettings(id)
		return &s, nil
	}

	audited := false
	deps.audit.LogFunc = func(ctx context.Context, record domain.AuditRecord) error {
		audited = true
		return nil
	}

	_, err := svc.UpdateSettings(authCtx(userID), UpdateSettingsInput{
		NewCardsPerDay: ptr(20), // same as current
	})
	require.NoError(t, err)
	assert.False(t, audited)
}

func TestUpdateSettings_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	_, err := svc.UpdateSettings(authCtx(uuid.New()), UpdateSettingsInput{
		NewCardsPerDay:   ptr(-1),
		StudyTimeMinutes: ptr(0),
		Timezone:         ptr("Not/AZone"),
	})
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Errors, 3)
}

func TestUpdateSettings_TxRollback(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)

	userID := uuid.New()
	deps.settings.GetByUserIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.UserSettings, error) {
		s := domain.DefaultUserSettings(id)
		return &s, nil
	}

	boom := errors.New("audit failed")
	deps.audit.LogFunc = func(ctx context.Context, record domain.AuditRecord) error {
		return boom
	}

	_, err := svc.UpdateSettings(authCtx(userID), UpdateSettingsInput{
		NewCardsPerDay: ptr(5),
	})
	assert.ErrorIs(t, err, boom)
}

func TestGetProfile(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)

	userID := uuid.New()
	deps.users.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		return &domain.User{ID: id, Email: "recruit@example.com"}, nil
	}

	user, err := svc.GetProfile(authCtx(userID))
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}
