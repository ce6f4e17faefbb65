package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/entities"
	gateerrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/errors"
)

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) deps.ChannelRepository {
	return &ChannelRepository{db: db}
}

func (r *ChannelRepository) ListActive(ctx context.Context) ([]entities.Channel, error) {
	var channels []entities.Channel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&channels).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gateerrors.ErrDatabaseOperation, err)
	}
	return channels, nil
}

func (r *ChannelRepository) List(ctx context.Context) ([]entities.Channel, error) {
	var channels []entities.Channel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&channels).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", gateerrors.ErrDatabaseOperation, err)
	}
	return channels, nil
}

func (r *ChannelRepository) Upsert(ctx context.Context, channel *entities.Channel) error {
	channel.IsActive = true
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "channel_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "url", "invite_link", "is_request_group", "is_external_link", "is_active",
			}),
		}).
		Create(channel).Error
	if err != nil {
		return fmt.Errorf("%w: %w", gateerrors.ErrDatabaseOperation, err)
	}
	return nil
}

func (r *ChannelRepository) Deactivate(ctx context.Context, channelID string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Channel{}).
		Where("channel_id = ? AND is_active = ?", channelID, true).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("%w: %w", gateerrors.ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return gateerrors.ErrChannelNotFound
	}
	return nil
}

type JoinRequestRepository struct {
	db *gorm.DB
}

func NewJoinRequestRepository(db *gorm.DB) deps.JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

func (r *JoinRequestRepository) Exists(ctx context.Context, userID int64, channelID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.JoinRequest{}).
		Where("user_id = ? AND channel_id = ?", userID, channelID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %w", gateerrors.ErrDatabaseOperation, err)
	}
	return count > 0, nil
}

func (r *JoinRequestRepository) Upsert(ctx context.Context, userID int64, channelID string, at time.Time) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "channel_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"created_at"}),
		}).
		Create(&entities.JoinRequest{UserID: userID, ChannelID: channelID, CreatedAt: at}).Error
	if err != nil {
		return fmt.Errorf("%w: %w", gateerrors.ErrDatabaseOperation, err)
	}
	return nil
}

func (r *JoinRequestRepository) Delete(ctx context.Context, userID int64, channelID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND channel_id = ?", userID, channelID).
		Delete(&entities.JoinRequest{}).Error
	if err != nil {
		return fmt.Errorf("%w: %w", gateerrors.ErrDatabaseOperation, err)
	}
	return nil
}
