package service

import (
	"context"
	"errors"
	"time"

	"tontinehub/internal/cache"
	"tontinehub/internal/models"
	"tontinehub/internal/observability"
	"tontinehub/internal/repository"
)

// MembershipService is the membership ledger: it admits users into
// numbered positions and derives the collection schedule.
type MembershipService struct {
	tontineRepo    repository.TontineRepository
	membershipRepo repository.MembershipRepository
	now            func() time.Time
}

// NewMembershipService returns a new MembershipService.
func NewMembershipService(tontineRepo repository.TontineRepository, membershipRepo repository.MembershipRepository) *MembershipService {
	return &MembershipService{
		tontineRepo:    tontineRepo,
		membershipRepo: membershipRepo,
		now:            time.Now,
	}
}

// Join admits a user into a position. Positions below 1 are rejected
// here before any store access; the remaining checks (existence,
// moderator exclusion, capacity, occupancy, duplicate membership) run
// inside the repository's transaction in that fixed order.
func (s *MembershipService) Join(ctx context.Context, tontineID, userID uint, position int) (*models.TontineMembership, error) {
	if position < 1 {
		observability.JoinAttempts.WithLabelValues(models.CodeValidation).Inc()
		return nil, models.NewValidationError("position must be at least 1")
	}

	membership, err := s.membershipRepo.Join(ctx, tontineID, userID, position)
	if err != nil {
		observability.JoinAttempts.WithLabelValues(joinOutcome(err)).Inc()
		return nil, err
	}

	observability.JoinAttempts.WithLabelValues("success").Inc()
	cache.InvalidateTontine(ctx, tontineID)
	return membership, nil
}

// ScheduleEntry is one row of a tontine's collection calendar.
type ScheduleEntry struct {
	Position       int                       `json:"position"`
	Member         *models.TontineMembership `json:"member,omitempty"`
	CollectionDate time.Time                 `json:"collection_date"`
	IsComplete     bool                      `json:"is_complete"`
	PayoutAmount   int64                     `json:"payout_amount"`
}

// Schedule derives the full collection calendar for a tontine: one
// entry per position, each with its holder (if any), collection date,
// and the constant jackpot payout. The result is recomputed on every
// call; only wall-clock progress changes IsComplete between calls.
func (s *MembershipService) Schedule(ctx context.Context, tontineID uint) ([]ScheduleEntry, error) {
	tontine, err := s.tontineRepo.GetByID(ctx, tontineID)
	if err != nil {
		return nil, err
	}

	observability.ScheduleComputations.Inc()

	byPosition := make(map[int]models.TontineMembership, len(tontine.Memberships))
	for _, m := range tontine.Memberships {
		byPosition[m.Position] = m
	}

	now := s.now()
	jackpot := tontine.JackpotAmount()

	entries := make([]ScheduleEntry, 0, tontine.MaxSubscriptions)
	for pos := 1; pos <= tontine.MaxSubscriptions; pos++ {
		entry := ScheduleEntry{
			Position:       pos,
			CollectionDate: tontine.CollectionDate(pos),
			PayoutAmount:   jackpot,
		}
		if m, ok := byPosition[pos]; ok {
			member := m
			entry.Member = &member
		}
		entry.IsComplete = now.After(entry.CollectionDate)
		entries = append(entries, entry)
	}

	return entries, nil
}

// ListByUser returns the user's memberships with their tontines attached.
func (s *MembershipService) ListByUser(ctx context.Context, userID uint) ([]models.TontineMembership, error) {
	return s.membershipRepo.ListByUser(ctx, userID)
}

// joinOutcome labels a join failure for metrics.
func joinOutcome(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return models.CodeInternal
}
