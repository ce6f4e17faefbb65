package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/entities"
	gatebuissines "github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/usecase/buissines"
	settingsentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
)

type mockChatMemberGetter struct {
	getChatMemberFunc func(ctx context.Context, params *tgbot.GetChatMemberParams) (*models.ChatMember, error)
}

func (m *mockChatMemberGetter) GetChatMember(ctx context.Context, params *tgbot.GetChatMemberParams) (*models.ChatMember, error) {
	return m.getChatMemberFunc(ctx, params)
}

func newTestOracle(api ChatMemberGetter) *Oracle {
	cfg := &config.TelegramConfig{OracleRPS: 100, OracleTimeout: time.Second}
	return NewOracle(api, cfg, metrics.GetDefaultMetrics(), zerolog.Nop())
}

func TestOracle_ReturnsMemberType(t *testing.T) {
	api := &mockChatMemberGetter{getChatMemberFunc: func(_ context.Context, params *tgbot.GetChatMemberParams) (*models.ChatMember, error) {
		require.Equal(t, "@kino_channel", params.ChatID)
		require.Equal(t, int64(77), params.UserID)
		return &models.ChatMember{Type: models.ChatMemberTypeLeft}, nil
	}}

	status, err := newTestOracle(api).GetMembershipStatus(context.Background(), "@kino_channel", 77)
	require.NoError(t, err)
	require.Equal(t, entities.StatusLeft, status)
}

func TestOracle_MapsMemberTypes(t *testing.T) {
	tests := []struct {
		name      string
		memberTyp models.ChatMemberType
		want      entities.MembershipStatus
		satisfies bool
	}{
		{"owner", models.ChatMemberTypeOwner, entities.StatusCreator, true},
		{"administrator", models.ChatMemberTypeAdministrator, entities.StatusAdministrator, true},
		{"member", models.ChatMemberTypeMember, entities.StatusMember, true},
		{"restricted", models.ChatMemberTypeRestricted, entities.StatusRestricted, true},
		{"left", models.ChatMemberTypeLeft, entities.StatusLeft, false},
		{"banned", models.ChatMemberTypeBanned, entities.StatusKicked, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockChatMemberGetter{getChatMemberFunc: func(context.Context, *tgbot.GetChatMemberParams) (*models.ChatMember, error) {
				return &models.ChatMember{Type: tt.memberTyp}, nil
			}}

			status, err := newTestOracle(api).GetMembershipStatus(context.Background(), "@kino_channel", 77)
			require.NoError(t, err)
			require.Equal(t, tt.want, status)
			require.Equal(t, tt.satisfies, status.Satisfies())
		})
	}
}

type stubChannels struct {
	channels []entities.Channel
}

func (s *stubChannels) ListActive(context.Context) ([]entities.Channel, error) {
	return s.channels, nil
}

func (s *stubChannels) List(context.Context) ([]entities.Channel, error) {
	return s.channels, nil
}

func (s *stubChannels) Upsert(context.Context, *entities.Channel) error {
	return nil
}

func (s *stubChannels) Deactivate(context.Context, string) error {
	return nil
}

type stubJoinRequests struct{}

func (stubJoinRequests) Exists(context.Context, int64, string) (bool, error) {
	return false, nil
}

func (stubJoinRequests) Upsert(context.Context, int64, string, time.Time) error {
	return nil
}

func (stubJoinRequests) Delete(context.Context, int64, string) error {
	return nil
}

type stubPremium struct{}

func (stubPremium) IsCurrentlyPremium(context.Context, int64) (bool, error) {
	return false, nil
}

func TestOracle_DrivesGateDecision(t *testing.T) {
	memberTypes := map[int64]models.ChatMemberType{
		1: models.ChatMemberTypeMember,
		2: models.ChatMemberTypeLeft,
		3: models.ChatMemberTypeBanned,
		4: models.ChatMemberTypeAdministrator,
	}
	api := &mockChatMemberGetter{getChatMemberFunc: func(_ context.Context, params *tgbot.GetChatMemberParams) (*models.ChatMember, error) {
		return &models.ChatMember{Type: memberTypes[params.UserID]}, nil
	}}

	channels := &stubChannels{channels: []entities.Channel{{ChannelID: "@kino_channel", Title: "Kino", IsActive: true}}}
	gate := gatebuissines.NewUseCase(channels, stubJoinRequests{}, newTestOracle(api), stubPremium{}, nil, nil,
		metrics.GetDefaultMetrics(), zerolog.Nop())
	cfg := settingsentities.GateConfig{Enabled: true}

	for userID, want := range map[int64]bool{1: true, 2: false, 3: false, 4: true} {
		ok, err := gate.IsSatisfied(context.Background(), cfg, userID)
		require.NoError(t, err)
		require.Equal(t, want, ok, "user %d", userID)
	}
}

func TestOracle_PropagatesError(t *testing.T) {
	api := &mockChatMemberGetter{getChatMemberFunc: func(context.Context, *tgbot.GetChatMemberParams) (*models.ChatMember, error) {
		return nil, errors.New("Bad Request: chat not found")
	}}

	_, err := newTestOracle(api).GetMembershipStatus(context.Background(), "@gone", 1)
	require.Error(t, err)
}
