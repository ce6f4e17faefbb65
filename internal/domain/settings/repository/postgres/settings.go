package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/deps"
	settingserrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/errors"
)

// SettingModel is the settings table row
type SettingModel struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value;not null"`
}

func (SettingModel) TableName() string {
	return "settings"
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.SettingsRepository {
	return &Repository{db: db}
}

func (r *Repository) All(ctx context.Context) (map[string]string, error) {
	var rows []SettingModel
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", settingserrors.ErrDatabaseOperation, err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

func (r *Repository) Set(ctx context.Context, key, value string) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&SettingModel{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("%w: %w", settingserrors.ErrDatabaseOperation, err)
	}
	return nil
}
