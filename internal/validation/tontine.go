// Package validation contains input validation rules shared by handlers
// and services.
package validation

import (
	"fmt"
	"strings"

	"tontinehub/internal/models"
)

const (
	maxTontineNameLen        = 120
	maxTontineDescriptionLen = 2000
	minSubscriptions         = 2
)

// TontineInput holds the caller-supplied configuration for a new tontine.
type TontineInput struct {
	Name             string
	Description      string
	StakeAmount      int64
	MaxSubscriptions int
	Frequency        models.TontineFrequency
	IsPrivate        bool
}

// ValidateTontineInput checks the creation invariants: a display name,
// a positive stake, a capacity of at least two, and a known frequency.
func ValidateTontineInput(in TontineInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxTontineNameLen {
		return fmt.Errorf("name must be at most %d characters", maxTontineNameLen)
	}
	if len(in.Description) > maxTontineDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", maxTontineDescriptionLen)
	}
	if in.StakeAmount <= 0 {
		return fmt.Errorf("stake_amount must be greater than zero")
	}
	if in.MaxSubscriptions < minSubscriptions {
		return fmt.Errorf("max_subscriptions must be at least %d", minSubscriptions)
	}
	if !in.Frequency.Valid() {
		return fmt.Errorf("frequency must be one of daily, weekly, or monthly")
	}
	return nil
}
