package seed

import (
	"fmt"
	"log"
	"time"

	"tontinehub/internal/models"

	"gorm.io/gorm"
)

// demoTontine is a preset savings group created by DemoData.
type demoTontine struct {
	Name             string
	Description      string
	StakeAmount      int64
	MaxSubscriptions int
	Frequency        models.TontineFrequency
	IsPrivate        bool
	// Positions already taken, in join order. Position 1 always belongs
	// to a demo member, never the moderator.
	TakenPositions []int
}

var demoTontines = []demoTontine{
	{
		Name:             "Monthly Savings Group",
		Description:      "A steady monthly pool for long-term savers.",
		StakeAmount:      50000,
		MaxSubscriptions: 10,
		Frequency:        models.FrequencyMonthly,
		TakenPositions:   []int{1, 2, 4, 7},
	},
	{
		Name:             "Weekly Investment Club",
		Description:      "Faster turnaround for members who want weekly payouts.",
		StakeAmount:      25000,
		MaxSubscriptions: 8,
		Frequency:        models.FrequencyWeekly,
		TakenPositions:   []int{1, 2, 3},
	},
	{
		Name:             "Daily Quick Pool",
		Description:      "Small daily stakes, a payout every single day.",
		StakeAmount:      5000,
		MaxSubscriptions: 5,
		Frequency:        models.FrequencyDaily,
		TakenPositions:   []int{1, 2, 3, 4, 5},
	},
	{
		Name:             "Office Collective",
		Description:      "Colleagues pooling a share of each paycheck.",
		StakeAmount:      100000,
		MaxSubscriptions: 6,
		Frequency:        models.FrequencyMonthly,
		TakenPositions:   []int{1, 2},
	},
	{
		Name:             "Family Circle",
		Description:      "Invite-only fund for the extended family.",
		StakeAmount:      20000,
		MaxSubscriptions: 12,
		Frequency:        models.FrequencyMonthly,
		IsPrivate:        true,
		TakenPositions:   []int{1},
	},
}

// DemoData seeds demo users, tontines, memberships, and illustrative
// transaction history. It is idempotent: if any tontine already exists
// the seeding is skipped entirely.
func DemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Tontine{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count tontines: %w", err)
	}
	if count > 0 {
		log.Printf("seed: %d tontines already present, skipping demo data", count)
		return nil
	}

	factory := NewFactory(db)

	// One moderator plus enough members to fill the preset positions.
	moderator, err := factory.CreateUser(func(u *models.User) {
		u.Username = "demo_moderator"
		u.Email = "moderator@tontinehub.local"
	})
	if err != nil {
		return err
	}

	maxMembers := 0
	for _, preset := range demoTontines {
		if len(preset.TakenPositions) > maxMembers {
			maxMembers = len(preset.TakenPositions)
		}
	}

	members := make([]*models.User, 0, maxMembers)
	for i := 0; i < maxMembers; i++ {
		member, err := factory.CreateUser()
		if err != nil {
			return err
		}
		members = append(members, member)
	}

	for _, preset := range demoTontines {
		preset := preset
		tontine, err := factory.CreateTontine(moderator, func(t *models.Tontine) {
			t.Name = preset.Name
			t.Description = preset.Description
			t.StakeAmount = preset.StakeAmount
			t.MaxSubscriptions = preset.MaxSubscriptions
			t.Frequency = preset.Frequency
			t.IsPrivate = preset.IsPrivate
		})
		if err != nil {
			return err
		}

		for i, position := range preset.TakenPositions {
			member := members[i]
			if _, err := factory.JoinMember(tontine, member, position); err != nil {
				return err
			}

			// Each joined member has contributed once; the first
			// collected position also received its payout.
			contributedAt := time.Now().Add(-time.Duration(len(preset.TakenPositions)-i) * 24 * time.Hour)
			if _, err := factory.CreateTransaction(tontine, member,
				models.TransactionContribution, tontine.StakeAmount,
				models.TransactionCompleted, contributedAt); err != nil {
				return err
			}
		}

		if len(preset.TakenPositions) == preset.MaxSubscriptions {
			first := members[0]
			if _, err := factory.CreateTransaction(tontine, first,
				models.TransactionPayout, tontine.JackpotAmount(),
				models.TransactionPending, time.Now()); err != nil {
				return err
			}
		}
	}

	log.Printf("seed: created %d demo tontines with moderator %s", len(demoTontines), moderator.Username)
	return nil
}
