package models

import (
	"sort"
	"time"
)

// TontineFrequency defines the collection cadence of a tontine.
type TontineFrequency string

const (
	// FrequencyDaily collects one position per day.
	FrequencyDaily TontineFrequency = "daily"
	// FrequencyWeekly collects one position per week.
	FrequencyWeekly TontineFrequency = "weekly"
	// FrequencyMonthly collects one position per calendar month.
	FrequencyMonthly TontineFrequency = "monthly"
)

// Valid reports whether the frequency is one of the supported values.
func (f TontineFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Tontine represents a rotating savings group with a fixed stake,
// capacity, and payout cadence. Tontines are immutable after creation.
type Tontine struct {
	ID               uint                `gorm:"primaryKey" json:"id"`
	Name             string              `gorm:"size:120;not null" json:"name"`
	Description      string              `gorm:"type:text" json:"description"`
	StakeAmount      int64               `gorm:"not null" json:"stake_amount"`
	MaxSubscriptions int                 `gorm:"not null" json:"max_subscriptions"`
	Frequency        TontineFrequency    `gorm:"type:varchar(20);not null" json:"frequency"`
	IsPrivate        bool                `gorm:"not null;default:false" json:"is_private"`
	ModeratorID      uint                `gorm:"not null;index" json:"moderator_id"`
	Moderator        *User               `gorm:"foreignKey:ModeratorID" json:"moderator,omitempty"`
	Memberships      []TontineMembership `gorm:"foreignKey:TontineID" json:"memberships,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Tontine) TableName() string {
	return "tontines"
}

// JackpotAmount is the total payout per collection round.
func (t *Tontine) JackpotAmount() int64 {
	return t.StakeAmount * int64(t.MaxSubscriptions)
}

// IsFull reports whether every position is occupied.
func (t *Tontine) IsFull() bool {
	return len(t.Memberships) >= t.MaxSubscriptions
}

// CollectionDate returns the payout date for a position. Position 1
// collects on the creation date; each later position is one frequency
// step further out. Monthly steps use calendar months, clamping to the
// last valid day when the target month is shorter (Jan 31 -> Feb 28).
func (t *Tontine) CollectionDate(position int) time.Time {
	steps := position - 1
	anchor := t.CreatedAt

	switch t.Frequency {
	case FrequencyDaily:
		return anchor.AddDate(0, 0, steps)
	case FrequencyWeekly:
		return anchor.AddDate(0, 0, steps*7)
	case FrequencyMonthly:
		return addMonthsClamped(anchor, steps)
	}
	return anchor
}

// AvailablePositions returns the unoccupied positions in ascending order.
func (t *Tontine) AvailablePositions() []int {
	occupied := make(map[int]struct{}, len(t.Memberships))
	for _, m := range t.Memberships {
		occupied[m.Position] = struct{}{}
	}

	available := make([]int, 0, t.MaxSubscriptions-len(occupied))
	for pos := 1; pos <= t.MaxSubscriptions; pos++ {
		if _, taken := occupied[pos]; !taken {
			available = append(available, pos)
		}
	}
	return available
}

// SortedMemberships returns the memberships ordered by position.
// Storage order is not guaranteed, so callers that render participant
// lists or schedules sort here.
func (t *Tontine) SortedMemberships() []TontineMembership {
	sorted := make([]TontineMembership, len(t.Memberships))
	copy(sorted, t.Memberships)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

// addMonthsClamped advances t by the given number of calendar months,
// clamping the day-of-month to the last valid day of the target month
// instead of letting it roll over (time.AddDate would turn Jan 31 + 1
// month into Mar 2/3).
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
