// Package service implements the application's domain logic on top of
// the repository layer.
package service

import (
	"context"

	"tontinehub/internal/models"
	"tontinehub/internal/observability"
	"tontinehub/internal/repository"
	"tontinehub/internal/validation"
)

// TontineCategory is the closed set of listing filters. Using named
// constants instead of raw query strings keeps the dispatch exhaustive
// at compile time.
type TontineCategory string

const (
	// CategoryParticipating lists tontines where the user holds a position.
	CategoryParticipating TontineCategory = "participating"
	// CategoryAvailable lists joinable public tontines.
	CategoryAvailable TontineCategory = "available"
	// CategoryModerated lists tontines the user created.
	CategoryModerated TontineCategory = "moderated"
)

// ParseTontineCategory maps a query-string value onto the closed
// category set.
func ParseTontineCategory(raw string) (TontineCategory, bool) {
	switch TontineCategory(raw) {
	case CategoryParticipating, CategoryAvailable, CategoryModerated:
		return TontineCategory(raw), true
	}
	return "", false
}

// TontineService is the registry of tontines: it owns creation and the
// categorized listings.
type TontineService struct {
	tontineRepo repository.TontineRepository
}

// NewTontineService returns a new TontineService.
func NewTontineService(tontineRepo repository.TontineRepository) *TontineService {
	return &TontineService{tontineRepo: tontineRepo}
}

// CreateTontineInput holds the caller-supplied configuration for a new
// tontine. The moderator is always the authenticated caller.
type CreateTontineInput struct {
	Name             string
	Description      string
	StakeAmount      int64
	MaxSubscriptions int
	Frequency        models.TontineFrequency
	IsPrivate        bool
}

// Create validates the configuration and persists a new tontine with
// zero memberships. Validation failures prevent any persistence call.
func (s *TontineService) Create(ctx context.Context, in CreateTontineInput, moderatorID uint) (*models.Tontine, error) {
	if err := validation.ValidateTontineInput(validation.TontineInput{
		Name:             in.Name,
		Description:      in.Description,
		StakeAmount:      in.StakeAmount,
		MaxSubscriptions: in.MaxSubscriptions,
		Frequency:        in.Frequency,
		IsPrivate:        in.IsPrivate,
	}); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	tontine := &models.Tontine{
		Name:             in.Name,
		Description:      in.Description,
		StakeAmount:      in.StakeAmount,
		MaxSubscriptions: in.MaxSubscriptions,
		Frequency:        in.Frequency,
		IsPrivate:        in.IsPrivate,
		ModeratorID:      moderatorID,
	}

	if err := s.tontineRepo.Create(ctx, tontine); err != nil {
		return nil, err
	}

	observability.TontinesCreated.WithLabelValues(string(tontine.Frequency)).Inc()
	return tontine, nil
}

// GetByID fetches a tontine with its membership list attached.
func (s *TontineService) GetByID(ctx context.Context, id uint) (*models.Tontine, error) {
	return s.tontineRepo.GetByID(ctx, id)
}

// List answers one of the three categorized queries for the requesting
// user. A tontine never appears under "available" for a user who
// already participates in or moderates it.
func (s *TontineService) List(ctx context.Context, category TontineCategory, userID uint) ([]models.Tontine, error) {
	switch category {
	case CategoryParticipating:
		return s.tontineRepo.ListParticipating(ctx, userID)
	case CategoryAvailable:
		return s.tontineRepo.ListAvailable(ctx, userID)
	case CategoryModerated:
		return s.tontineRepo.ListModerated(ctx, userID)
	}
	return nil, models.NewValidationError("unknown tontine category")
}
