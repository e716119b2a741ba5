// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"tontinehub/internal/cache"
	"tontinehub/internal/models"
	"tontinehub/internal/observability"

	"gorm.io/gorm"
)

// TontineRepository defines persistence operations for tontines and
// their categorized listings.
type TontineRepository interface {
	Create(ctx context.Context, tontine *models.Tontine) error
	GetByID(ctx context.Context, id uint) (*models.Tontine, error)
	ListParticipating(ctx context.Context, userID uint) ([]models.Tontine, error)
	ListAvailable(ctx context.Context, userID uint) ([]models.Tontine, error)
	ListModerated(ctx context.Context, userID uint) ([]models.Tontine, error)
}

type tontineRepository struct {
	db *gorm.DB
}

// NewTontineRepository returns a new TontineRepository implementation.
func NewTontineRepository(db *gorm.DB) TontineRepository {
	return &tontineRepository{db: db}
}

func (r *tontineRepository) Create(ctx context.Context, tontine *models.Tontine) error {
	defer observability.TrackQuery("insert", "tontines")()

	if err := r.db.WithContext(ctx).Create(tontine).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *tontineRepository) GetByID(ctx context.Context, id uint) (*models.Tontine, error) {
	var tontine models.Tontine
	key := cache.TontineKey(id)

	err := cache.Aside(ctx, key, &tontine, cache.TontineTTL, func() error {
		defer observability.TrackQuery("select", "tontines")()

		if err := r.db.WithContext(ctx).
			Preload("Memberships").
			Preload("Memberships.User").
			First(&tontine, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Tontine", id)
			}
			return storeError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &tontine, nil
}

// ListParticipating returns tontines where the user holds a membership.
func (r *tontineRepository) ListParticipating(ctx context.Context, userID uint) ([]models.Tontine, error) {
	defer observability.TrackQuery("select", "tontines")()

	var tontines []models.Tontine
	if err := r.db.WithContext(ctx).
		Preload("Memberships").
		Joins("JOIN tontine_memberships ON tontine_memberships.tontine_id = tontines.id").
		Where("tontine_memberships.user_id = ?", userID).
		Order("tontines.created_at DESC").
		Find(&tontines).Error; err != nil {
		return nil, storeError(err)
	}
	return tontines, nil
}

// ListAvailable returns public tontines the user can still join: not
// moderated by them, not already joined, and with at least one free
// position.
func (r *tontineRepository) ListAvailable(ctx context.Context, userID uint) ([]models.Tontine, error) {
	defer observability.TrackQuery("select", "tontines")()

	var tontines []models.Tontine
	if err := r.db.WithContext(ctx).
		Preload("Memberships").
		Where("tontines.is_private = ?", false).
		Where("tontines.moderator_id <> ?", userID).
		Where("NOT EXISTS (SELECT 1 FROM tontine_memberships m WHERE m.tontine_id = tontines.id AND m.user_id = ?)", userID).
		Where("(SELECT COUNT(*) FROM tontine_memberships m WHERE m.tontine_id = tontines.id) < tontines.max_subscriptions").
		Order("tontines.created_at DESC").
		Find(&tontines).Error; err != nil {
		return nil, storeError(err)
	}
	return tontines, nil
}

// ListModerated returns tontines the user created.
func (r *tontineRepository) ListModerated(ctx context.Context, userID uint) ([]models.Tontine, error) {
	defer observability.TrackQuery("select", "tontines")()

	var tontines []models.Tontine
	if err := r.db.WithContext(ctx).
		Preload("Memberships").
		Where("moderator_id = ?", userID).
		Order("created_at DESC").
		Find(&tontines).Error; err != nil {
		return nil, storeError(err)
	}
	return tontines, nil
}
