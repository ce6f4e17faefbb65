package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	adminerrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/errors"
)

// AdminModel is the admins table row
type AdminModel struct {
	UserID       int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	CanMovies    bool      `gorm:"column:can_movies;not null"`
	CanChannels  bool      `gorm:"column:can_channels;not null"`
	CanBroadcast bool      `gorm:"column:can_broadcast;not null"`
	CanStats     bool      `gorm:"column:can_stats;not null"`
	CanPremium   bool      `gorm:"column:can_premium;not null"`
	CanAdmins    bool      `gorm:"column:can_admins;not null"`
	CanSettings  bool      `gorm:"column:can_settings;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AdminModel) TableName() string {
	return "admins"
}

func (m *AdminModel) ToEntity() *entities.Admin {
	return &entities.Admin{
		UserID: m.UserID,
		Permissions: entities.Permissions{
			Movies:    m.CanMovies,
			Channels:  m.CanChannels,
			Broadcast: m.CanBroadcast,
			Stats:     m.CanStats,
			Premium:   m.CanPremium,
			Admins:    m.CanAdmins,
			Settings:  m.CanSettings,
		},
		CreatedAt: m.CreatedAt,
	}
}

func fromEntity(a *entities.Admin) *AdminModel {
	p := a.Permissions
	return &AdminModel{
		UserID:       a.UserID,
		CanMovies:    p.Movies,
		CanChannels:  p.Channels,
		CanBroadcast: p.Broadcast,
		CanStats:     p.Stats,
		CanPremium:   p.Premium,
		CanAdmins:    p.Admins,
		CanSettings:  p.Settings,
	}
}

var capabilityColumns = map[entities.Capability]string{
	entities.CapabilityMovies:    "can_movies",
	entities.CapabilityChannels:  "can_channels",
	entities.CapabilityBroadcast: "can_broadcast",
	entities.CapabilityStats:     "can_stats",
	entities.CapabilityPremium:   "can_premium",
	entities.CapabilityAdmins:    "can_admins",
	entities.CapabilitySettings:  "can_settings",
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.AdminRepository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, userID int64) (*entities.Admin, error) {
	var model AdminModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, adminerrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("%w: %w", adminerrors.ErrDatabaseOperation, err)
	}
	return model.ToEntity(), nil
}

func (r *Repository) Create(ctx context.Context, admin *entities.Admin) error {
	model := fromEntity(admin)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(model)
	if result.Error != nil {
		return fmt.Errorf("%w: %w", adminerrors.ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return adminerrors.ErrAdminAlreadyExists
	}
	admin.CreatedAt = model.CreatedAt
	return nil
}

func (r *Repository) Delete(ctx context.Context, userID int64) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&AdminModel{})
	if result.Error != nil {
		return fmt.Errorf("%w: %w", adminerrors.ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return adminerrors.ErrAdminNotFound
	}
	return nil
}

func (r *Repository) Toggle(ctx context.Context, userID int64, capability entities.Capability) (bool, error) {
	column, ok := capabilityColumns[capability]
	if !ok {
		return false, adminerrors.ErrUnknownCapability
	}

	var value bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&AdminModel{}).
			Where("user_id = ?", userID).
			Update(column, gorm.Expr("NOT "+column))
		if result.Error != nil {
			return fmt.Errorf("%w: %w", adminerrors.ErrDatabaseOperation, result.Error)
		}
		if result.RowsAffected == 0 {
			return adminerrors.ErrAdminNotFound
		}

		var model AdminModel
		if err := tx.Where("user_id = ?", userID).First(&model).Error; err != nil {
			return fmt.Errorf("%w: %w", adminerrors.ErrDatabaseOperation, err)
		}
		value = model.ToEntity().Permissions.Has(capability)
		return nil
	})
	return value, err
}

func (r *Repository) List(ctx context.Context) ([]entities.Admin, error) {
	var models []AdminModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", adminerrors.ErrDatabaseOperation, err)
	}

	admins := make([]entities.Admin, 0, len(models))
	for i := range models {
		admins = append(admins, *models[i].ToEntity())
	}
	return admins, nil
}
