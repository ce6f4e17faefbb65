package buissines

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/events"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/entities"
	ledgererrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/errors"
	settingsentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

const adminID int64 = 77

// mockLedgerRepository keeps users and requests in memory
type mockLedgerRepository struct {
	users    map[int64]*entities.User
	requests map[uint]*entities.WithdrawalRequest
	credited map[int64]int64
	nextID   uint

	lastBonus int64
	calls     int
}

func newMockLedgerRepository() *mockLedgerRepository {
	return &mockLedgerRepository{
		users:    map[int64]*entities.User{},
		requests: map[uint]*entities.WithdrawalRequest{},
		credited: map[int64]int64{},
	}
}

func (m *mockLedgerRepository) Register(_ context.Context, user *entities.User, bonus int64) (entities.Registration, error) {
	m.calls++
	m.lastBonus = bonus
	if existing, ok := m.users[user.UserID]; ok {
		existing.FullName = user.FullName
		return entities.Registration{}, nil
	}
	copied := *user
	m.users[user.UserID] = &copied

	reg := entities.Registration{Created: true}
	if user.ReferredBy != nil && bonus > 0 {
		if referrer, ok := m.users[*user.ReferredBy]; ok {
			referrer.ReferralBalance += bonus
			m.credited[referrer.UserID]++
			reg.Credited = true
		}
	}
	return reg, nil
}

func (m *mockLedgerRepository) GetUser(_ context.Context, userID int64) (*entities.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, ledgererrors.ErrUserNotFound
	}
	return user, nil
}

func (m *mockLedgerRepository) Balance(ctx context.Context, userID int64) (int64, error) {
	user, err := m.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.ReferralBalance, nil
}

func (m *mockLedgerRepository) ReferralCount(_ context.Context, referrerID int64) (int64, error) {
	return m.credited[referrerID], nil
}

func (m *mockLedgerRepository) CreateWithdrawal(_ context.Context, request *entities.WithdrawalRequest) error {
	user, ok := m.users[request.UserID]
	if !ok || user.ReferralBalance < request.Amount {
		return ledgererrors.ErrInsufficientBalance
	}
	user.ReferralBalance -= request.Amount
	m.nextID++
	request.ID = m.nextID
	request.Status = entities.WithdrawalPending
	copied := *request
	m.requests[request.ID] = &copied
	return nil
}

func (m *mockLedgerRepository) transition(requestID uint, adminID int64, at time.Time, status entities.WithdrawalStatus) (*entities.WithdrawalRequest, error) {
	request, ok := m.requests[requestID]
	if !ok {
		return nil, ledgererrors.ErrWithdrawalNotFound
	}
	if request.Status != entities.WithdrawalPending {
		return nil, ledgererrors.ErrAlreadyResolved
	}
	request.Status = status
	request.AdminID = &adminID
	request.ProcessedAt = &at
	return request, nil
}

func (m *mockLedgerRepository) ApproveWithdrawal(_ context.Context, requestID uint, adminID int64, at time.Time) (*entities.WithdrawalRequest, error) {
	return m.transition(requestID, adminID, at, entities.WithdrawalApproved)
}

func (m *mockLedgerRepository) RejectWithdrawal(_ context.Context, requestID uint, adminID int64, at time.Time) (*entities.WithdrawalRequest, error) {
	request, err := m.transition(requestID, adminID, at, entities.WithdrawalRejected)
	if err != nil {
		return nil, err
	}
	m.users[request.UserID].ReferralBalance += request.Amount
	return request, nil
}

func (m *mockLedgerRepository) UserWithdrawals(_ context.Context, userID int64, limit int) ([]entities.WithdrawalRequest, error) {
	var out []entities.WithdrawalRequest
	for _, r := range m.requests {
		if r.UserID == userID && len(out) < limit {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockLedgerRepository) PendingWithdrawals(_ context.Context) ([]entities.WithdrawalRequest, error) {
	var out []entities.WithdrawalRequest
	for _, r := range m.requests {
		if r.Status == entities.WithdrawalPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockLedgerRepository) Stats(_ context.Context, _ int) (*entities.Stats, error) {
	return &entities.Stats{PendingCount: int64(len(m.requests))}, nil
}

type publishedEvent struct {
	topic   string
	key     string
	payload any
}

type mockPublisher struct {
	events []publishedEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, topic, key string, payload any) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, publishedEvent{topic: topic, key: key, payload: payload})
	return nil
}

type mockPermissionChecker struct {
	admins map[int64]bool
}

func (m *mockPermissionChecker) RequireAdmin(_ context.Context, userID int64) error {
	if !m.admins[userID] {
		return pkgerrors.NewPermissionError("admins only")
	}
	return nil
}

func (m *mockPermissionChecker) Require(ctx context.Context, userID int64, _ adminentities.Capability) error {
	return m.RequireAdmin(ctx, userID)
}

type fixture struct {
	repo      *mockLedgerRepository
	publisher *mockPublisher
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo:      newMockLedgerRepository(),
		publisher: &mockPublisher{},
	}
	perms := &mockPermissionChecker{admins: map[int64]bool{adminID: true}}
	f.uc = NewUseCase(f.repo, f.publisher, perms, metrics.GetDefaultMetrics(), zerolog.Nop())
	f.uc.now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) seed(userID, balance int64) {
	f.repo.users[userID] = &entities.User{UserID: userID, ReferralBalance: balance}
}

func ptr(v int64) *int64 {
	return &v
}

var referralsOn = settingsentities.LedgerConfig{Enabled: true, Bonus: 500, MinWithdrawal: 10000}

func TestRegisterReferral_CreditsConfiguredBonus(t *testing.T) {
	f := newFixture()
	f.seed(2, 0)

	created, err := f.uc.RegisterReferral(context.Background(), referralsOn, entities.NewUser{UserID: 1, FullName: "X"}, ptr(2))
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, int64(500), f.repo.users[2].ReferralBalance)
	require.Equal(t, int64(1), f.repo.credited[2])

	require.Len(t, f.publisher.events, 1)
	require.Equal(t, events.TopicReferralCredited, f.publisher.events[0].topic)
	require.Equal(t, "2", f.publisher.events[0].key)
	payload := f.publisher.events[0].payload.(events.ReferralCredited)
	require.Equal(t, int64(500), payload.Bonus)
	require.Equal(t, "X", payload.ReferredName)
}

func TestRegisterReferral_WriteOnce(t *testing.T) {
	f := newFixture()
	f.seed(2, 0)
	f.seed(3, 0)

	created, err := f.uc.RegisterReferral(context.Background(), referralsOn, entities.NewUser{UserID: 1}, ptr(2))
	require.NoError(t, err)
	require.True(t, created)

	created, err = f.uc.RegisterReferral(context.Background(), referralsOn, entities.NewUser{UserID: 1}, ptr(3))
	require.NoError(t, err)
	require.False(t, created)

	require.Equal(t, int64(500), f.repo.users[2].ReferralBalance)
	require.Zero(t, f.repo.users[3].ReferralBalance)
	require.Len(t, f.publisher.events, 1)
}

func TestRegisterReferral_BonusReadPerCall(t *testing.T) {
	f := newFixture()
	f.seed(2, 0)

	_, err := f.uc.RegisterReferral(context.Background(), referralsOn, entities.NewUser{UserID: 10}, ptr(2))
	require.NoError(t, err)

	raised := referralsOn
	raised.Bonus = 800
	_, err = f.uc.RegisterReferral(context.Background(), raised, entities.NewUser{UserID: 11}, ptr(2))
	require.NoError(t, err)

	require.Equal(t, int64(1300), f.repo.users[2].ReferralBalance)
}

func TestRegisterReferral_NoCredit(t *testing.T) {
	tests := []struct {
		name     string
		cfg      settingsentities.LedgerConfig
		referrer *int64
	}{
		{"program disabled", settingsentities.LedgerConfig{Enabled: false, Bonus: 500}, ptr(2)},
		{"self referral", referralsOn, ptr(1)},
		{"no referrer", referralsOn, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.seed(2, 0)

			created, err := f.uc.RegisterReferral(context.Background(), tt.cfg, entities.NewUser{UserID: 1}, tt.referrer)
			require.NoError(t, err)
			require.True(t, created)
			require.Zero(t, f.repo.lastBonus)
			require.Zero(t, f.repo.users[2].ReferralBalance)
			require.Empty(t, f.publisher.events)
		})
	}
}

func TestRegisterReferral_SelfReferralNotStored(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RegisterReferral(context.Background(), referralsOn, entities.NewUser{UserID: 1}, ptr(1))
	require.NoError(t, err)
	require.Nil(t, f.repo.users[1].ReferredBy)
}

func TestRequestWithdrawal_Validation(t *testing.T) {
	f := newFixture()
	f.seed(1, 10000)

	_, err := f.uc.RequestWithdrawal(context.Background(), 1, 0, "1111222233334444")
	require.ErrorIs(t, err, ledgererrors.ErrInvalidAmount)

	_, err = f.uc.RequestWithdrawal(context.Background(), 1, -5, "1111222233334444")
	require.ErrorIs(t, err, ledgererrors.ErrInvalidAmount)

	_, err = f.uc.RequestWithdrawal(context.Background(), 1, 100, "1234")
	require.ErrorIs(t, err, ledgererrors.ErrInvalidCard)

	_, err = f.uc.RequestWithdrawal(context.Background(), 1, 100, "")
	require.ErrorIs(t, err, ledgererrors.ErrInvalidCard)

	require.Equal(t, int64(10000), f.repo.users[1].ReferralBalance)
	require.Empty(t, f.repo.requests)
}

func TestRequestWithdrawal_NormalizesCardAndPublishesMasked(t *testing.T) {
	f := newFixture()
	f.seed(1, 10000)

	request, err := f.uc.RequestWithdrawal(context.Background(), 1, 6000, "1111 2222-3333 4444")
	require.NoError(t, err)
	require.Equal(t, "1111222233334444", request.CardNumber)
	require.Equal(t, entities.WithdrawalPending, request.Status)
	require.Equal(t, int64(4000), f.repo.users[1].ReferralBalance)

	require.Len(t, f.publisher.events, 1)
	payload := f.publisher.events[0].payload.(events.WithdrawalRequested)
	require.Equal(t, "1111 **** **** 4444", payload.CardMasked)
}

func TestRequestWithdrawal_InsufficientBalance(t *testing.T) {
	f := newFixture()
	f.seed(1, 100)

	_, err := f.uc.RequestWithdrawal(context.Background(), 1, 101, "1111222233334444")
	require.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)
	require.True(t, pkgerrors.IsConflictError(err))
	require.Empty(t, f.publisher.events)
}

func TestWithdrawalScenario_RejectRestoresBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(1, 10000)

	request, err := f.uc.RequestWithdrawal(ctx, 1, 6000, "1111222233334444")
	require.NoError(t, err)
	require.Equal(t, int64(4000), f.repo.users[1].ReferralBalance)

	rejected, err := f.uc.RejectWithdrawal(ctx, request.ID, adminID)
	require.NoError(t, err)
	require.Equal(t, entities.WithdrawalRejected, rejected.Status)
	require.Equal(t, int64(10000), f.repo.users[1].ReferralBalance)

	_, err = f.uc.RejectWithdrawal(ctx, request.ID, adminID)
	require.ErrorIs(t, err, ledgererrors.ErrAlreadyResolved)
	require.Equal(t, int64(10000), f.repo.users[1].ReferralBalance)

	last := f.publisher.events[len(f.publisher.events)-1]
	require.Equal(t, events.TopicWithdrawalResolved, last.topic)
	require.Equal(t, events.StatusRejected, last.payload.(events.WithdrawalResolved).Status)
}

func TestApproveWithdrawal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(1, 10000)

	request, err := f.uc.RequestWithdrawal(ctx, 1, 6000, "1111222233334444")
	require.NoError(t, err)

	_, err = f.uc.ApproveWithdrawal(ctx, request.ID, 5)
	require.True(t, pkgerrors.IsPermissionError(err))
	require.Equal(t, entities.WithdrawalPending, f.repo.requests[request.ID].Status)

	approved, err := f.uc.ApproveWithdrawal(ctx, request.ID, adminID)
	require.NoError(t, err)
	require.Equal(t, entities.WithdrawalApproved, approved.Status)
	require.Equal(t, int64(4000), f.repo.users[1].ReferralBalance)

	_, err = f.uc.ApproveWithdrawal(ctx, 999, adminID)
	require.ErrorIs(t, err, ledgererrors.ErrWithdrawalNotFound)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture()
	f.seed(1, 10000)
	f.publisher.err = errors.New("broker down")

	request, err := f.uc.RequestWithdrawal(context.Background(), 1, 6000, "1111222233334444")
	require.NoError(t, err)
	require.NotZero(t, request.ID)
	require.Equal(t, int64(4000), f.repo.users[1].ReferralBalance)
}

func TestCheckWithdrawalEligibility(t *testing.T) {
	f := newFixture()
	f.seed(1, 12000)
	ctx := context.Background()

	require.NoError(t, f.uc.CheckWithdrawalEligibility(ctx, referralsOn, 1, 10000))

	err := f.uc.CheckWithdrawalEligibility(ctx, referralsOn, 1, 9999)
	require.True(t, pkgerrors.IsValidationError(err))

	err = f.uc.CheckWithdrawalEligibility(ctx, referralsOn, 1, 12001)
	require.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)

	err = f.uc.CheckWithdrawalEligibility(ctx, referralsOn, 1, 0)
	require.ErrorIs(t, err, ledgererrors.ErrInvalidAmount)
}

func TestBalanceInfo(t *testing.T) {
	f := newFixture()
	f.seed(2, 0)
	_, err := f.uc.RegisterReferral(context.Background(), referralsOn, entities.NewUser{UserID: 1}, ptr(2))
	require.NoError(t, err)

	info, err := f.uc.BalanceInfo(context.Background(), referralsOn, 2)
	require.NoError(t, err)
	require.Equal(t, int64(500), info.Balance)
	require.Equal(t, int64(1), info.ReferralCount)
	require.Equal(t, int64(10000), info.MinWithdrawal)
}

func TestAdminViewsRequirePermission(t *testing.T) {
	f := newFixture()

	_, err := f.uc.PendingWithdrawals(context.Background(), 5)
	require.True(t, pkgerrors.IsPermissionError(err))

	_, err = f.uc.Stats(context.Background(), 5)
	require.True(t, pkgerrors.IsPermissionError(err))

	_, err = f.uc.Stats(context.Background(), adminID)
	require.NoError(t, err)
}
