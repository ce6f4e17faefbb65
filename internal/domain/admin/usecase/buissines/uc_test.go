package buissines

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	adminerrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/errors"
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

const superAdminID int64 = 1

// mockAdminRepository keeps admins in a map
type mockAdminRepository struct {
	admins  map[int64]entities.Admin
	getFunc func(ctx context.Context, userID int64) (*entities.Admin, error)
}

func newMockAdminRepository() *mockAdminRepository {
	return &mockAdminRepository{admins: map[int64]entities.Admin{}}
}

func (m *mockAdminRepository) Get(ctx context.Context, userID int64) (*entities.Admin, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	a, ok := m.admins[userID]
	if !ok {
		return nil, adminerrors.ErrAdminNotFound
	}
	return &a, nil
}

func (m *mockAdminRepository) Create(_ context.Context, admin *entities.Admin) error {
	if _, ok := m.admins[admin.UserID]; ok {
		return adminerrors.ErrAdminAlreadyExists
	}
	m.admins[admin.UserID] = *admin
	return nil
}

func (m *mockAdminRepository) Delete(_ context.Context, userID int64) error {
	if _, ok := m.admins[userID]; !ok {
		return adminerrors.ErrAdminNotFound
	}
	delete(m.admins, userID)
	return nil
}

func (m *mockAdminRepository) Toggle(_ context.Context, userID int64, c entities.Capability) (bool, error) {
	a, ok := m.admins[userID]
	if !ok {
		return false, adminerrors.ErrAdminNotFound
	}
	a.Permissions.Set(c, !a.Permissions.Has(c))
	m.admins[userID] = a
	return a.Permissions.Has(c), nil
}

func (m *mockAdminRepository) List(_ context.Context) ([]entities.Admin, error) {
	out := make([]entities.Admin, 0, len(m.admins))
	for _, a := range m.admins {
		out = append(out, a)
	}
	return out, nil
}

func newTestUseCase(repo *mockAdminRepository) *UseCase {
	return NewUseCase(repo, &config.AdminConfig{SuperAdminIDs: []int64{superAdminID}}, zerolog.Nop())
}

func TestHasCapability_SuperAdminOverridesStoredRow(t *testing.T) {
	repo := newMockAdminRepository()
	repo.admins[superAdminID] = entities.Admin{UserID: superAdminID}
	uc := newTestUseCase(repo)

	for _, c := range entities.AllCapabilities() {
		ok, err := uc.HasCapability(context.Background(), superAdminID, c)
		require.NoError(t, err)
		require.True(t, ok, c.String())
	}
}

func TestHasCapability_UnknownUserHasNothing(t *testing.T) {
	uc := newTestUseCase(newMockAdminRepository())

	for _, c := range entities.AllCapabilities() {
		ok, err := uc.HasCapability(context.Background(), 500, c)
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestHasCapability_StoredFlags(t *testing.T) {
	repo := newMockAdminRepository()
	repo.admins[10] = entities.Admin{UserID: 10, Permissions: entities.DefaultPermissions()}
	uc := newTestUseCase(repo)
	ctx := context.Background()

	ok, err := uc.HasCapability(ctx, 10, entities.CapabilityChannels)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = uc.HasCapability(ctx, 10, entities.CapabilitySettings)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHasCapability_UnknownCapabilityFailsLoudly(t *testing.T) {
	uc := newTestUseCase(newMockAdminRepository())

	_, err := uc.HasCapability(context.Background(), superAdminID, entities.Capability(42))
	require.ErrorIs(t, err, adminerrors.ErrUnknownCapability)
	require.True(t, pkgerrors.IsValidationError(err))

	require.Panics(t, func() {
		entities.Permissions{}.Has(entities.Capability(42))
	})
}

func TestHasCapability_StoreError(t *testing.T) {
	repo := newMockAdminRepository()
	repo.getFunc = func(context.Context, int64) (*entities.Admin, error) {
		return nil, errors.New("connection reset")
	}
	uc := newTestUseCase(repo)

	_, err := uc.HasCapability(context.Background(), 10, entities.CapabilityStats)
	require.Error(t, err)
}

func TestAdminLifecycle(t *testing.T) {
	repo := newMockAdminRepository()
	uc := newTestUseCase(repo)
	ctx := context.Background()

	admin, err := uc.AddAdmin(ctx, superAdminID, 20)
	require.NoError(t, err)
	require.Equal(t, entities.DefaultPermissions(), admin.Permissions)

	_, err = uc.AddAdmin(ctx, superAdminID, 20)
	require.ErrorIs(t, err, adminerrors.ErrAdminAlreadyExists)

	value, err := uc.ToggleCapability(ctx, superAdminID, 20, entities.CapabilityAdmins)
	require.NoError(t, err)
	require.True(t, value)

	// the new admin can now manage admins themselves
	_, err = uc.AddAdmin(ctx, 20, 21)
	require.NoError(t, err)

	require.NoError(t, uc.RemoveAdmin(ctx, superAdminID, 20))

	ok, err := uc.IsAdmin(ctx, 20)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAdminMutations_RequireAdminsCapability(t *testing.T) {
	repo := newMockAdminRepository()
	repo.admins[30] = entities.Admin{UserID: 30, Permissions: entities.DefaultPermissions()}
	uc := newTestUseCase(repo)

	_, err := uc.AddAdmin(context.Background(), 30, 31)
	require.True(t, pkgerrors.IsPermissionError(err))
	require.NotContains(t, repo.admins, int64(31))
}

func TestSuperAdminIsImmutable(t *testing.T) {
	uc := newTestUseCase(newMockAdminRepository())
	ctx := context.Background()

	_, err := uc.AddAdmin(ctx, superAdminID, superAdminID)
	require.ErrorIs(t, err, adminerrors.ErrSuperAdminImmutable)

	require.ErrorIs(t, uc.RemoveAdmin(ctx, superAdminID, superAdminID), adminerrors.ErrSuperAdminImmutable)

	_, err = uc.ToggleCapability(ctx, superAdminID, superAdminID, entities.CapabilityStats)
	require.ErrorIs(t, err, adminerrors.ErrSuperAdminImmutable)
}

func TestListAdmins(t *testing.T) {
	repo := newMockAdminRepository()
	repo.admins[40] = entities.Admin{UserID: 40, Permissions: entities.DefaultPermissions()}
	uc := newTestUseCase(repo)

	admins, err := uc.ListAdmins(context.Background(), superAdminID)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	require.True(t, admins[0].SuperAdmin)
	require.Equal(t, int64(40), admins[1].UserID)
}

func TestParseCapability(t *testing.T) {
	c, ok := entities.ParseCapability("premium")
	require.True(t, ok)
	require.Equal(t, entities.CapabilityPremium, c)

	_, ok = entities.ParseCapability("payments")
	require.False(t, ok)
}

func TestRecipients_FiltersByCapability(t *testing.T) {
	repo := newMockAdminRepository()
	repo.admins[50] = entities.Admin{UserID: 50, Permissions: entities.DefaultPermissions()}
	repo.admins[51] = entities.Admin{UserID: 51, Permissions: entities.Permissions{Movies: true}}
	repo.admins[superAdminID] = entities.Admin{UserID: superAdminID}
	uc := newTestUseCase(repo)

	ids, err := uc.Recipients(context.Background(), entities.CapabilityPremium)
	require.NoError(t, err)
	require.Equal(t, []int64{superAdminID, 50}, ids)

	_, err = uc.Recipients(context.Background(), entities.Capability(99))
	require.ErrorIs(t, err, adminerrors.ErrUnknownCapability)
}
