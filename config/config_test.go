package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_IDS", "100, 200")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, []int64{100, 200}, cfg.Admin.SuperAdminIDs)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, 10*time.Minute, cfg.Premium.SweepInterval)
	require.Equal(t, "file://migrations", cfg.Database.MigrationsPath)
	require.True(t, cfg.Admin.IsSuperAdmin(200))
	require.False(t, cfg.Admin.IsSuperAdmin(300))
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidAdminIDs(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_IDS", "12,abc")

	_, err := Load()
	require.ErrorContains(t, err, "ADMIN_IDS")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "kino", SSLMode: "disable"}
	require.Equal(t, "host=db port=5432 user=u password=p dbname=kino sslmode=disable", cfg.DSN())
}
