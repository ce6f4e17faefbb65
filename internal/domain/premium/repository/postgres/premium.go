package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/entities"
	premiumerrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/errors"
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.PremiumRepository {
	return &Repository{db: db}
}

func (r *Repository) CreatePlan(ctx context.Context, plan *entities.Plan) error {
	return wrap(r.db.WithContext(ctx).Create(plan).Error)
}

func (r *Repository) GetPlan(ctx context.Context, planID uint) (*entities.Plan, error) {
	plan, err := getPlan(r.db.WithContext(ctx), planID)
	if err != nil {
		return nil, wrap(err)
	}
	return plan, nil
}

func (r *Repository) ListActivePlans(ctx context.Context) ([]entities.Plan, error) {
	var plans []entities.Plan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC, id ASC").
		Find(&plans).Error
	if err != nil {
		return nil, wrap(err)
	}
	return plans, nil
}

func (r *Repository) DeactivatePlan(ctx context.Context, planID uint) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Plan{}).
		Where("id = ? AND is_active = ?", planID, true).
		Update("is_active", false)
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return premiumerrors.ErrPlanNotFound
	}
	return nil
}

func (r *Repository) GrantOrExtend(ctx context.Context, userID int64, planID *uint, days int, now time.Time) (*entities.Grant, error) {
	var grant *entities.Grant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		grant, err = grantOrExtend(tx, userID, planID, days, now)
		return err
	})
	if err != nil {
		return nil, wrap(err)
	}
	return grant, nil
}

func (r *Repository) ActiveSubscriptions(ctx context.Context, userID int64) ([]entities.Subscription, error) {
	var subs []entities.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("end_date DESC").
		Find(&subs).Error
	if err != nil {
		return nil, wrap(err)
	}
	return subs, nil
}

func (r *Repository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("is_active = ? AND end_date <= ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		return 0, wrap(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *Repository) CreateRequest(ctx context.Context, request *entities.Request) error {
	request.Status = entities.RequestPending
	return wrap(r.db.WithContext(ctx).Create(request).Error)
}

func (r *Repository) PendingRequests(ctx context.Context) ([]entities.Request, error) {
	var requests []entities.Request
	err := r.db.WithContext(ctx).
		Where("status = ?", entities.RequestPending).
		Order("id ASC").
		Find(&requests).Error
	if err != nil {
		return nil, wrap(err)
	}
	return requests, nil
}

func (r *Repository) ApproveRequest(ctx context.Context, requestID uint, adminID int64, now time.Time) (*entities.Resolution, error) {
	var resolution entities.Resolution

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := lockPendingRequest(tx, requestID)
		if err != nil {
			return err
		}

		plan, err := getPlan(tx, request.PlanID)
		if err != nil {
			return err
		}

		grant, err := grantOrExtend(tx, request.UserID, &plan.ID, plan.DurationDays, now)
		if err != nil {
			return err
		}

		if err := markResolved(tx, request, entities.RequestApproved, adminID, now); err != nil {
			return err
		}

		resolution = entities.Resolution{Request: *request, Plan: *plan, Grant: grant}
		return nil
	})
	if err != nil {
		return nil, wrap(err)
	}

	return &resolution, nil
}

func (r *Repository) RejectRequest(ctx context.Context, requestID uint, adminID int64, now time.Time) (*entities.Resolution, error) {
	var resolution entities.Resolution

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := lockPendingRequest(tx, requestID)
		if err != nil {
			return err
		}

		if err := markResolved(tx, request, entities.RequestRejected, adminID, now); err != nil {
			return err
		}

		resolution.Request = *request
		// The plan may have been removed since; the rejection stands regardless
		if plan, err := getPlan(tx, request.PlanID); err == nil {
			resolution.Plan = *plan
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err)
	}

	return &resolution, nil
}

// grantOrExtend must run inside a transaction
func grantOrExtend(tx *gorm.DB, userID int64, planID *uint, days int, now time.Time) (*entities.Grant, error) {
	var active []entities.Subscription
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("end_date DESC").
		Find(&active).Error
	if err != nil {
		return nil, err
	}

	// Lapsed rows that are still flagged active do not stack
	for _, sub := range active {
		if !sub.ValidAt(now) {
			continue
		}

		sub.EndDate = sub.EndDate.AddDate(0, 0, days)
		err := tx.Model(&entities.Subscription{}).
			Where("id = ?", sub.ID).
			Update("end_date", sub.EndDate).Error
		if err != nil {
			return nil, err
		}
		return &entities.Grant{Subscription: sub, Stacked: true}, nil
	}

	sub := entities.Subscription{
		UserID:    userID,
		PlanID:    planID,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, days),
		IsActive:  true,
	}
	if err := tx.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &entities.Grant{Subscription: sub}, nil
}

func lockPendingRequest(tx *gorm.DB, requestID uint) (*entities.Request, error) {
	var request entities.Request
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, premiumerrors.ErrRequestNotFound
		}
		return nil, err
	}
	if request.Status != entities.RequestPending {
		return nil, premiumerrors.ErrAlreadyResolved
	}
	return &request, nil
}

func markResolved(tx *gorm.DB, request *entities.Request, status entities.RequestStatus, adminID int64, now time.Time) error {
	result := tx.Model(&entities.Request{}).
		Where("id = ? AND status = ?", request.ID, entities.RequestPending).
		Updates(map[string]any{
			"status":       status,
			"admin_id":     adminID,
			"processed_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return premiumerrors.ErrAlreadyResolved
	}

	request.Status = status
	request.AdminID = &adminID
	request.ProcessedAt = &now
	return nil
}

func getPlan(db *gorm.DB, planID uint) (*entities.Plan, error) {
	var plan entities.Plan
	if err := db.First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, premiumerrors.ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// wrap passes business errors through and marks everything else as a store failure
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if pkgerrors.IsNotFoundError(err) || pkgerrors.IsConflictError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", premiumerrors.ErrDatabaseOperation, err)
}
