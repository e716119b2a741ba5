package repository

import (
	"context"
	"errors"

	"tontinehub/internal/models"
	"tontinehub/internal/observability"

	"gorm.io/gorm"
)

// MembershipRepository defines persistence operations for tontine
// memberships. Join runs its check-then-write sequence inside a single
// transaction; the unique indexes settle concurrent races.
type MembershipRepository interface {
	Join(ctx context.Context, tontineID, userID uint, position int) (*models.TontineMembership, error)
	ListByUser(ctx context.Context, userID uint) ([]models.TontineMembership, error)
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository returns a new MembershipRepository implementation.
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// Join validates occupancy and inserts the membership in one
// transaction. Validation order is fixed: existence, moderator
// exclusion, capacity, position range/occupancy, duplicate membership.
// The first failing check wins and nothing is written.
func (r *membershipRepository) Join(ctx context.Context, tontineID, userID uint, position int) (*models.TontineMembership, error) {
	defer observability.TrackQuery("insert", "tontine_memberships")()

	var membership *models.TontineMembership

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tontine models.Tontine
		if err := tx.First(&tontine, tontineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Tontine", tontineID)
			}
			return storeError(err)
		}

		if tontine.ModeratorID == userID {
			return models.NewModeratorCannotJoinError()
		}

		var count int64
		if err := tx.Model(&models.TontineMembership{}).
			Where("tontine_id = ?", tontineID).
			Count(&count).Error; err != nil {
			return storeError(err)
		}
		if count >= int64(tontine.MaxSubscriptions) {
			return models.NewTontineFullError()
		}

		if position < 1 || position > tontine.MaxSubscriptions {
			return models.NewValidationError("position is out of range for this tontine")
		}

		var taken int64
		if err := tx.Model(&models.TontineMembership{}).
			Where("tontine_id = ? AND position = ?", tontineID, position).
			Count(&taken).Error; err != nil {
			return storeError(err)
		}
		if taken > 0 {
			return models.NewPositionTakenError(position)
		}

		var joined int64
		if err := tx.Model(&models.TontineMembership{}).
			Where("tontine_id = ? AND user_id = ?", tontineID, userID).
			Count(&joined).Error; err != nil {
			return storeError(err)
		}
		if joined > 0 {
			return models.NewAlreadyJoinedError()
		}

		create := &models.TontineMembership{
			TontineID: tontineID,
			UserID:    userID,
			Position:  position,
		}
		if err := tx.Create(create).Error; err != nil {
			// A concurrent join may have won between the occupancy read
			// and this insert; the unique index rejection is the
			// authoritative signal.
			if constraint, ok := uniqueViolation(err); ok {
				if isPositionConstraint(constraint) {
					return models.NewPositionTakenError(position)
				}
				if isMemberConstraint(constraint) {
					return models.NewAlreadyJoinedError()
				}
				return models.NewPositionTakenError(position)
			}
			return storeError(err)
		}

		membership = create
		return nil
	})

	if err != nil {
		return nil, err
	}
	return membership, nil
}

func (r *membershipRepository) ListByUser(ctx context.Context, userID uint) ([]models.TontineMembership, error) {
	defer observability.TrackQuery("select", "tontine_memberships")()

	var memberships []models.TontineMembership
	if err := r.db.WithContext(ctx).
		Preload("Tontine").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, storeError(err)
	}
	return memberships, nil
}
