package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/entities"
	ledgererrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/errors"
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.LedgerRepository {
	return &Repository{db: db}
}

func (r *Repository) Register(ctx context.Context, user *entities.User, bonus int64) (entities.Registration, error) {
	var reg entities.Registration

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoNothing: true,
			}).
			Create(user)
		if result.Error != nil {
			return result.Error
		}

		// Existing user: referral attribution is write-once
		if result.RowsAffected == 0 {
			return tx.Model(&entities.User{}).
				Where("user_id = ?", user.UserID).
				Updates(map[string]any{
					"full_name": user.FullName,
					"username":  user.Username,
				}).Error
		}
		reg.Created = true

		if user.ReferredBy == nil || bonus <= 0 {
			return nil
		}

		credit := tx.Model(&entities.User{}).
			Where("user_id = ?", *user.ReferredBy).
			Update("referral_balance", gorm.Expr("referral_balance + ?", bonus))
		if credit.Error != nil {
			return credit.Error
		}
		if credit.RowsAffected == 0 {
			return nil
		}

		history := &entities.ReferralHistory{
			ReferrerID:  *user.ReferredBy,
			ReferredID:  user.UserID,
			BonusAmount: bonus,
			CreatedAt:   user.JoinedAt,
		}
		if err := tx.Create(history).Error; err != nil {
			return err
		}
		reg.Credited = true
		return nil
	})
	if err != nil {
		return entities.Registration{}, wrap(err)
	}

	return reg, nil
}

func (r *Repository) GetUser(ctx context.Context, userID int64) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledgererrors.ErrUserNotFound
		}
		return nil, wrap(err)
	}
	return &user, nil
}

func (r *Repository) Balance(ctx context.Context, userID int64) (int64, error) {
	user, err := r.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.ReferralBalance, nil
}

func (r *Repository) ReferralCount(ctx context.Context, referrerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.ReferralHistory{}).
		Where("referrer_id = ?", referrerID).
		Count(&count).Error
	if err != nil {
		return 0, wrap(err)
	}
	return count, nil
}

func (r *Repository) CreateWithdrawal(ctx context.Context, request *entities.WithdrawalRequest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		debit := tx.Model(&entities.User{}).
			Where("user_id = ? AND referral_balance >= ?", request.UserID, request.Amount).
			Update("referral_balance", gorm.Expr("referral_balance - ?", request.Amount))
		if debit.Error != nil {
			return debit.Error
		}
		if debit.RowsAffected == 0 {
			return ledgererrors.ErrInsufficientBalance
		}

		request.Status = entities.WithdrawalPending
		return tx.Create(request).Error
	})
	return wrap(err)
}

func (r *Repository) ApproveWithdrawal(ctx context.Context, requestID uint, adminID int64, at time.Time) (*entities.WithdrawalRequest, error) {
	var request entities.WithdrawalRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.WithdrawalRequest{}).
			Where("id = ? AND status = ?", requestID, entities.WithdrawalPending).
			Updates(map[string]any{
				"status":       entities.WithdrawalApproved,
				"admin_id":     adminID,
				"processed_at": at,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return resolutionError(tx, requestID)
		}
		return tx.First(&request, requestID).Error
	})
	if err != nil {
		return nil, wrap(err)
	}

	return &request, nil
}

func (r *Repository) RejectWithdrawal(ctx context.Context, requestID uint, adminID int64, at time.Time) (*entities.WithdrawalRequest, error) {
	var request entities.WithdrawalRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, requestID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledgererrors.ErrWithdrawalNotFound
			}
			return err
		}
		if request.Status != entities.WithdrawalPending {
			return ledgererrors.ErrAlreadyResolved
		}

		result := tx.Model(&entities.WithdrawalRequest{}).
			Where("id = ? AND status = ?", requestID, entities.WithdrawalPending).
			Updates(map[string]any{
				"status":       entities.WithdrawalRejected,
				"admin_id":     adminID,
				"processed_at": at,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ledgererrors.ErrAlreadyResolved
		}

		// Refund uses the amount stored on the request row
		refund := tx.Model(&entities.User{}).
			Where("user_id = ?", request.UserID).
			Update("referral_balance", gorm.Expr("referral_balance + ?", request.Amount))
		if refund.Error != nil {
			return refund.Error
		}
		if refund.RowsAffected == 0 {
			return ledgererrors.ErrUserNotFound
		}

		request.Status = entities.WithdrawalRejected
		request.AdminID = &adminID
		request.ProcessedAt = &at
		return nil
	})
	if err != nil {
		return nil, wrap(err)
	}

	return &request, nil
}

func (r *Repository) UserWithdrawals(ctx context.Context, userID int64, limit int) ([]entities.WithdrawalRequest, error) {
	var requests []entities.WithdrawalRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, wrap(err)
	}
	return requests, nil
}

func (r *Repository) PendingWithdrawals(ctx context.Context) ([]entities.WithdrawalRequest, error) {
	var requests []entities.WithdrawalRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", entities.WithdrawalPending).
		Order("id ASC").
		Find(&requests).Error
	if err != nil {
		return nil, wrap(err)
	}
	return requests, nil
}

func (r *Repository) Stats(ctx context.Context, topLimit int) (*entities.Stats, error) {
	var stats entities.Stats
	db := r.db.WithContext(ctx)

	if err := db.Model(&entities.ReferralHistory{}).Count(&stats.TotalReferrals).Error; err != nil {
		return nil, wrap(err)
	}

	err := db.Model(&entities.ReferralHistory{}).
		Select("COALESCE(SUM(bonus_amount), 0)").
		Scan(&stats.TotalBonuses).Error
	if err != nil {
		return nil, wrap(err)
	}

	err = db.Model(&entities.WithdrawalRequest{}).
		Where("status = ?", entities.WithdrawalApproved).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalWithdrawn).Error
	if err != nil {
		return nil, wrap(err)
	}

	err = db.Model(&entities.WithdrawalRequest{}).
		Where("status = ?", entities.WithdrawalPending).
		Count(&stats.PendingCount).Error
	if err != nil {
		return nil, wrap(err)
	}

	err = db.Table("referral_history AS rh").
		Select("rh.referrer_id AS user_id, COALESCE(u.full_name, '') AS full_name, " +
			"COUNT(*) AS referrals, SUM(rh.bonus_amount) AS earned").
		Joins("LEFT JOIN users u ON u.user_id = rh.referrer_id").
		Group("rh.referrer_id, u.full_name").
		Order("referrals DESC, rh.referrer_id ASC").
		Limit(topLimit).
		Scan(&stats.TopReferrers).Error
	if err != nil {
		return nil, wrap(err)
	}

	return &stats, nil
}

// resolutionError explains why a guarded status update touched no rows
func resolutionError(tx *gorm.DB, requestID uint) error {
	var count int64
	if err := tx.Model(&entities.WithdrawalRequest{}).Where("id = ?", requestID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ledgererrors.ErrWithdrawalNotFound
	}
	return ledgererrors.ErrAlreadyResolved
}

// wrap passes business errors through and marks everything else as a store failure
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if pkgerrors.IsNotFoundError(err) || pkgerrors.IsConflictError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ledgererrors.ErrDatabaseOperation, err)
}
