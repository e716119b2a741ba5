package validation

import (
	"strings"
	"testing"

	"tontinehub/internal/models"
)

func validInput() TontineInput {
	return TontineInput{
		Name:             "Monthly Savings Group",
		Description:      "A steady monthly pool.",
		StakeAmount:      50000,
		MaxSubscriptions: 10,
		Frequency:        models.FrequencyMonthly,
	}
}

func TestValidateTontineInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*TontineInput)
		wantErr bool
	}{
		{"valid", func(in *TontineInput) {}, false},
		{"empty name", func(in *TontineInput) { in.Name = "" }, true},
		{"whitespace name", func(in *TontineInput) { in.Name = "   " }, true},
		{"name too long", func(in *TontineInput) { in.Name = strings.Repeat("a", 121) }, true},
		{"name at limit", func(in *TontineInput) { in.Name = strings.Repeat("a", 120) }, false},
		{"description too long", func(in *TontineInput) { in.Description = strings.Repeat("d", 2001) }, true},
		{"zero stake", func(in *TontineInput) { in.StakeAmount = 0 }, true},
		{"negative stake", func(in *TontineInput) { in.StakeAmount = -100 }, true},
		{"single subscription", func(in *TontineInput) { in.MaxSubscriptions = 1 }, true},
		{"two subscriptions", func(in *TontineInput) { in.MaxSubscriptions = 2 }, false},
		{"unknown frequency", func(in *TontineInput) { in.Frequency = "yearly" }, true},
		{"daily frequency", func(in *TontineInput) { in.Frequency = models.FrequencyDaily }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := ValidateTontineInput(in)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
