package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/entities"
	boterrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/errors"
)

type mockJSONStore struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newMockJSONStore() *mockJSONStore {
	return &mockJSONStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockJSONStore) Key(parts ...string) string {
	return "kinobot:" + strings.Join(parts, ":")
}

func (m *mockJSONStore) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = data
	m.ttls[key] = ttl
	return nil
}

func (m *mockJSONStore) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	data, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (m *mockJSONStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func newTestStore(store *mockJSONStore) *WizardStore {
	return NewWizardStore(store, &config.RedisConfig{WizardTTL: 10 * time.Minute}, zerolog.Nop())
}

func TestWizardStore_SaveGetClear(t *testing.T) {
	mock := newMockJSONStore()
	store := newTestStore(mock)
	ctx := context.Background()

	wizard, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.Nil(t, wizard)

	require.NoError(t, store.Save(ctx, 42, &entities.Wizard{Kind: entities.WizardWithdraw, Step: entities.StepCard, Amount: 15000}))
	require.Equal(t, 10*time.Minute, mock.ttls["kinobot:wizard:42"])

	wizard, err = store.Get(ctx, 42)
	require.NoError(t, err)
	require.True(t, wizard.Waits(entities.WizardWithdraw, entities.StepCard))
	require.Equal(t, int64(15000), wizard.Amount)

	require.NoError(t, store.Clear(ctx, 42))
	wizard, err = store.Get(ctx, 42)
	require.NoError(t, err)
	require.Nil(t, wizard)
}

func TestWizardStore_WrapsStoreErrors(t *testing.T) {
	mock := newMockJSONStore()
	mock.getErr = errors.New("connection refused")

	_, err := newTestStore(mock).Get(context.Background(), 1)
	require.ErrorIs(t, err, boterrors.ErrWizardStore)
}
