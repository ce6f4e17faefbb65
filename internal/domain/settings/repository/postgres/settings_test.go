package postgres

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSettingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&SettingModel{}))
	return db
}

func TestRepository_SetUpserts(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupSettingsTestDB(t))

	require.NoError(t, repo.Set(ctx, "referral_bonus", "500"))
	require.NoError(t, repo.Set(ctx, "referral_bonus", "750"))
	require.NoError(t, repo.Set(ctx, "referral_enabled", "1"))

	values, err := repo.All(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"referral_bonus": "750", "referral_enabled": "1"}, values)
}
