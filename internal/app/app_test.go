package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestCreateApp(t *testing.T) {
	// Set required environment variables for test
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
	t.Setenv("KAFKA_BROKERS", "localhost:9093")
	t.Setenv("ADMIN_IDS", "1")

	// Validate fx dependency graph
	require.NoError(t, fx.ValidateApp(CreateApp()))
}
