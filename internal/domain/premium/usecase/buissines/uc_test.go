package buissines

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/events"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/dto"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/entities"
	premiumerrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/errors"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

const (
	adminID int64 = 77
	day           = 24 * time.Hour
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// mockPremiumRepository mirrors the stacking rules of the postgres repository
type mockPremiumRepository struct {
	plans    map[uint]*entities.Plan
	subs     []entities.Subscription
	requests map[uint]*entities.Request
	nextID   uint
}

func newMockPremiumRepository() *mockPremiumRepository {
	return &mockPremiumRepository{
		plans:    map[uint]*entities.Plan{},
		requests: map[uint]*entities.Request{},
	}
}

func (m *mockPremiumRepository) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockPremiumRepository) CreatePlan(_ context.Context, plan *entities.Plan) error {
	plan.ID = m.id()
	copied := *plan
	m.plans[plan.ID] = &copied
	return nil
}

func (m *mockPremiumRepository) GetPlan(_ context.Context, planID uint) (*entities.Plan, error) {
	plan, ok := m.plans[planID]
	if !ok {
		return nil, premiumerrors.ErrPlanNotFound
	}
	copied := *plan
	return &copied, nil
}

func (m *mockPremiumRepository) ListActivePlans(_ context.Context) ([]entities.Plan, error) {
	var out []entities.Plan
	for _, p := range m.plans {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPremiumRepository) DeactivatePlan(_ context.Context, planID uint) error {
	plan, ok := m.plans[planID]
	if !ok || !plan.IsActive {
		return premiumerrors.ErrPlanNotFound
	}
	plan.IsActive = false
	return nil
}

func (m *mockPremiumRepository) GrantOrExtend(_ context.Context, userID int64, planID *uint, days int, now time.Time) (*entities.Grant, error) {
	for i := range m.subs {
		sub := &m.subs[i]
		if sub.UserID == userID && sub.ValidAt(now) {
			sub.EndDate = sub.EndDate.AddDate(0, 0, days)
			return &entities.Grant{Subscription: *sub, Stacked: true}, nil
		}
	}
	sub := entities.Subscription{ID: m.id(), UserID: userID, PlanID: planID, StartDate: now, EndDate: now.AddDate(0, 0, days), IsActive: true}
	m.subs = append(m.subs, sub)
	return &entities.Grant{Subscription: sub}, nil
}

func (m *mockPremiumRepository) ActiveSubscriptions(_ context.Context, userID int64) ([]entities.Subscription, error) {
	var out []entities.Subscription
	for _, s := range m.subs {
		if s.UserID == userID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockPremiumRepository) ExpireLapsed(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for i := range m.subs {
		if m.subs[i].IsActive && !m.subs[i].EndDate.After(now) {
			m.subs[i].IsActive = false
			n++
		}
	}
	return n, nil
}

func (m *mockPremiumRepository) CreateRequest(_ context.Context, request *entities.Request) error {
	request.ID = m.id()
	request.Status = entities.RequestPending
	copied := *request
	m.requests[request.ID] = &copied
	return nil
}

func (m *mockPremiumRepository) PendingRequests(_ context.Context) ([]entities.Request, error) {
	var out []entities.Request
	for _, r := range m.requests {
		if r.Status == entities.RequestPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockPremiumRepository) resolve(requestID uint, status entities.RequestStatus, adminID int64) (*entities.Request, *entities.Plan, error) {
	request, ok := m.requests[requestID]
	if !ok {
		return nil, nil, premiumerrors.ErrRequestNotFound
	}
	if request.Status != entities.RequestPending {
		return nil, nil, premiumerrors.ErrAlreadyResolved
	}
	request.Status = status
	request.AdminID = &adminID
	return request, m.plans[request.PlanID], nil
}

func (m *mockPremiumRepository) ApproveRequest(ctx context.Context, requestID uint, adminID int64, now time.Time) (*entities.Resolution, error) {
	request, plan, err := m.resolve(requestID, entities.RequestApproved, adminID)
	if err != nil {
		return nil, err
	}
	grant, err := m.GrantOrExtend(ctx, request.UserID, &plan.ID, plan.DurationDays, now)
	if err != nil {
		return nil, err
	}
	return &entities.Resolution{Request: *request, Plan: *plan, Grant: grant}, nil
}

func (m *mockPremiumRepository) RejectRequest(_ context.Context, requestID uint, adminID int64, _ time.Time) (*entities.Resolution, error) {
	request, plan, err := m.resolve(requestID, entities.RequestRejected, adminID)
	if err != nil {
		return nil, err
	}
	return &entities.Resolution{Request: *request, Plan: *plan}, nil
}

type mockPublisher struct {
	topics   []string
	payloads []any
}

func (m *mockPublisher) Publish(_ context.Context, topic, _ string, payload any) error {
	m.topics = append(m.topics, topic)
	m.payloads = append(m.payloads, payload)
	return nil
}

type mockPermissionChecker struct{}

func (mockPermissionChecker) Require(_ context.Context, userID int64, _ adminentities.Capability) error {
	if userID != adminID {
		return pkgerrors.NewPermissionError("missing premium permission")
	}
	return nil
}

func newTestUseCase() (*UseCase, *mockPremiumRepository, *mockPublisher) {
	repo := newMockPremiumRepository()
	publisher := &mockPublisher{}
	uc := NewUseCase(repo, publisher, mockPermissionChecker{}, metrics.GetDefaultMetrics(), zerolog.Nop())
	uc.now = func() time.Time { return fixedNow }
	return uc, repo, publisher
}

func TestGrantOrExtend_StacksRemainingTime(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.subs = append(repo.subs, entities.Subscription{
		ID:        1,
		UserID:    5,
		StartDate: fixedNow.Add(-25 * day),
		EndDate:   fixedNow.Add(5 * day),
		IsActive:  true,
	})

	sub, err := uc.GrantOrExtend(context.Background(), 5, nil, 10)
	require.NoError(t, err)
	require.WithinDuration(t, fixedNow.Add(15*day), sub.EndDate, time.Second)
	require.Len(t, repo.subs, 1)
}

func TestGrantOrExtend_FreshWhenNothingValid(t *testing.T) {
	uc, _, _ := newTestUseCase()

	sub, err := uc.GrantOrExtend(context.Background(), 5, nil, 10)
	require.NoError(t, err)
	require.WithinDuration(t, fixedNow, sub.StartDate, time.Second)
	require.WithinDuration(t, fixedNow.Add(10*day), sub.EndDate, time.Second)
}

func TestGrantOrExtend_RejectsNonPositiveDays(t *testing.T) {
	uc, repo, _ := newTestUseCase()

	_, err := uc.GrantOrExtend(context.Background(), 5, nil, 0)
	require.ErrorIs(t, err, premiumerrors.ErrInvalidDays)
	require.Empty(t, repo.subs)
}

func TestIsCurrentlyPremium(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.subs = []entities.Subscription{
		{UserID: 1, EndDate: fixedNow.Add(time.Hour), IsActive: true},
		{UserID: 2, EndDate: fixedNow.Add(-time.Hour), IsActive: true},
		{UserID: 3, EndDate: fixedNow.Add(time.Hour), IsActive: false},
		{UserID: 4, EndDate: fixedNow, IsActive: true},
	}

	tests := []struct {
		userID int64
		want   bool
	}{
		{1, true},
		{2, false},
		{3, false},
		{4, false},
		{5, false},
	}
	for _, tt := range tests {
		got, err := uc.IsCurrentlyPremium(context.Background(), tt.userID)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, "user %d", tt.userID)
	}
}

func TestPurchaseFlow_Approve(t *testing.T) {
	ctx := context.Background()
	uc, _, publisher := newTestUseCase()

	plan, err := uc.CreatePlan(ctx, adminID, &dto.CreatePlanRequest{Name: "Monthly", DurationDays: 30, Price: 15000})
	require.NoError(t, err)
	require.True(t, plan.IsActive)

	request, err := uc.SubmitRequest(ctx, &dto.SubmitRequest{UserID: 9, PlanID: plan.ID, FileID: "AgAD", FileType: dto.FileTypePhoto})
	require.NoError(t, err)
	require.Equal(t, entities.RequestPending, request.Status)
	require.Equal(t, events.TopicPremiumRequested, publisher.topics[0])

	_, err = uc.ApprovePremiumRequest(ctx, request.ID, 1)
	require.True(t, pkgerrors.IsPermissionError(err))

	sub, err := uc.ApprovePremiumRequest(ctx, request.ID, adminID)
	require.NoError(t, err)
	require.WithinDuration(t, fixedNow.Add(30*day), sub.EndDate, time.Second)

	premium, err := uc.IsCurrentlyPremium(ctx, 9)
	require.NoError(t, err)
	require.True(t, premium)

	resolved := publisher.payloads[len(publisher.payloads)-1].(events.PremiumResolved)
	require.Equal(t, events.StatusApproved, resolved.Status)
	require.Equal(t, "Monthly", resolved.PlanName)
	require.NotNil(t, resolved.EndDate)

	_, err = uc.ApprovePremiumRequest(ctx, request.ID, adminID)
	require.ErrorIs(t, err, premiumerrors.ErrAlreadyResolved)
}

func TestPurchaseFlow_Reject(t *testing.T) {
	ctx := context.Background()
	uc, _, publisher := newTestUseCase()

	plan, err := uc.CreatePlan(ctx, adminID, &dto.CreatePlanRequest{Name: "Weekly", DurationDays: 7, Price: 5000})
	require.NoError(t, err)
	request, err := uc.SubmitRequest(ctx, &dto.SubmitRequest{UserID: 9, PlanID: plan.ID, FileID: "BQAD", FileType: dto.FileTypeDocument})
	require.NoError(t, err)

	require.NoError(t, uc.RejectPremiumRequest(ctx, request.ID, adminID))
	require.ErrorIs(t, uc.RejectPremiumRequest(ctx, request.ID, adminID), premiumerrors.ErrAlreadyResolved)
	require.ErrorIs(t, uc.RejectPremiumRequest(ctx, 404, adminID), premiumerrors.ErrRequestNotFound)

	premium, err := uc.IsCurrentlyPremium(ctx, 9)
	require.NoError(t, err)
	require.False(t, premium)

	resolved := publisher.payloads[len(publisher.payloads)-1].(events.PremiumResolved)
	require.Equal(t, events.StatusRejected, resolved.Status)
	require.Nil(t, resolved.EndDate)
}

func TestSubmitRequest_Validation(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newTestUseCase()

	plan, err := uc.CreatePlan(ctx, adminID, &dto.CreatePlanRequest{Name: "Monthly", DurationDays: 30, Price: 15000})
	require.NoError(t, err)

	_, err = uc.SubmitRequest(ctx, &dto.SubmitRequest{UserID: 9, PlanID: plan.ID, FileID: "x", FileType: "video"})
	require.ErrorIs(t, err, premiumerrors.ErrInvalidReceipt)

	_, err = uc.SubmitRequest(ctx, &dto.SubmitRequest{UserID: 9, PlanID: 404, FileID: "x", FileType: dto.FileTypePhoto})
	require.ErrorIs(t, err, premiumerrors.ErrPlanNotFound)

	require.NoError(t, uc.DeactivatePlan(ctx, adminID, plan.ID))
	_, err = uc.SubmitRequest(ctx, &dto.SubmitRequest{UserID: 9, PlanID: plan.ID, FileID: "x", FileType: dto.FileTypePhoto})
	require.ErrorIs(t, err, premiumerrors.ErrPlanInactive)
}

func TestCreatePlan_Validation(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.CreatePlan(context.Background(), adminID, &dto.CreatePlanRequest{Name: "Broken", DurationDays: 0, Price: 100})
	require.ErrorIs(t, err, premiumerrors.ErrInvalidPlan)

	_, err = uc.CreatePlan(context.Background(), adminID, &dto.CreatePlanRequest{Name: "Free", DurationDays: 30, Price: 0})
	require.ErrorIs(t, err, premiumerrors.ErrInvalidPlan)

	_, err = uc.CreatePlan(context.Background(), 1, &dto.CreatePlanRequest{Name: "Monthly", DurationDays: 30, Price: 100})
	require.True(t, pkgerrors.IsPermissionError(err))
}

func TestExpireLapsed(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.subs = []entities.Subscription{
		{UserID: 1, EndDate: fixedNow.Add(-time.Minute), IsActive: true},
		{UserID: 2, EndDate: fixedNow.Add(time.Minute), IsActive: true},
	}

	expired, err := uc.ExpireLapsed(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), expired)
	require.False(t, repo.subs[0].IsActive)
	require.True(t, repo.subs[1].IsActive)
}
