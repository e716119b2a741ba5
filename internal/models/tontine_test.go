package models

import (
	"reflect"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestJackpotAmount(t *testing.T) {
	t.Parallel()

	tontine := Tontine{StakeAmount: 50000, MaxSubscriptions: 10}
	if got := tontine.JackpotAmount(); got != 500000 {
		t.Fatalf("expected jackpot 500000, got %d", got)
	}
}

func TestCollectionDateMonthly(t *testing.T) {
	t.Parallel()

	tontine := Tontine{
		StakeAmount:      50000,
		MaxSubscriptions: 10,
		Frequency:        FrequencyMonthly,
		CreatedAt:        date(2024, time.January, 1),
	}

	tests := []struct {
		position int
		want     time.Time
	}{
		{1, date(2024, time.January, 1)},
		{2, date(2024, time.February, 1)},
		{3, date(2024, time.March, 1)},
		{10, date(2024, time.October, 1)},
	}

	for _, tt := range tests {
		if got := tontine.CollectionDate(tt.position); !got.Equal(tt.want) {
			t.Errorf("position %d: expected %s, got %s", tt.position, tt.want, got)
		}
	}
}

func TestCollectionDateMonthlyClampsToShortMonths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		created  time.Time
		position int
		want     time.Time
	}{
		{"jan 31 to leap feb", date(2024, time.January, 31), 2, date(2024, time.February, 29)},
		{"jan 31 to non-leap feb", date(2023, time.January, 31), 2, date(2023, time.February, 28)},
		{"jan 31 to march keeps day", date(2024, time.January, 31), 3, date(2024, time.March, 31)},
		{"oct 31 to november", date(2024, time.October, 31), 2, date(2024, time.November, 30)},
		{"year rollover", date(2024, time.November, 15), 4, date(2025, time.February, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tontine := Tontine{Frequency: FrequencyMonthly, CreatedAt: tt.created}
			if got := tontine.CollectionDate(tt.position); !got.Equal(tt.want) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCollectionDateDailyAndWeekly(t *testing.T) {
	t.Parallel()

	created := date(2024, time.January, 1)

	daily := Tontine{Frequency: FrequencyDaily, CreatedAt: created}
	if got := daily.CollectionDate(5); !got.Equal(date(2024, time.January, 5)) {
		t.Errorf("daily position 5: expected 2024-01-05, got %s", got)
	}

	weekly := Tontine{Frequency: FrequencyWeekly, CreatedAt: created}
	if got := weekly.CollectionDate(3); !got.Equal(date(2024, time.January, 15)) {
		t.Errorf("weekly position 3: expected 2024-01-15, got %s", got)
	}
	if got := weekly.CollectionDate(1); !got.Equal(created) {
		t.Errorf("weekly position 1: expected creation date, got %s", got)
	}
}

func TestAvailablePositions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		max   int
		taken []int
		want  []int
	}{
		{"partially filled", 5, []int{1, 2, 4}, []int{3, 5}},
		{"empty", 3, nil, []int{1, 2, 3}},
		{"full", 3, []int{1, 2, 3}, []int{}},
		{"unordered storage", 4, []int{3, 1}, []int{2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tontine := Tontine{MaxSubscriptions: tt.max}
			for _, pos := range tt.taken {
				tontine.Memberships = append(tontine.Memberships, TontineMembership{Position: pos})
			}
			if got := tontine.AvailablePositions(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsFull(t *testing.T) {
	t.Parallel()

	tontine := Tontine{MaxSubscriptions: 2}
	if tontine.IsFull() {
		t.Fatal("empty tontine reported full")
	}
	tontine.Memberships = []TontineMembership{{Position: 1}, {Position: 2}}
	if !tontine.IsFull() {
		t.Fatal("fully occupied tontine not reported full")
	}
}

func TestSortedMemberships(t *testing.T) {
	t.Parallel()

	tontine := Tontine{
		MaxSubscriptions: 3,
		Memberships: []TontineMembership{
			{Position: 3, UserID: 30},
			{Position: 1, UserID: 10},
			{Position: 2, UserID: 20},
		},
	}

	sorted := tontine.SortedMemberships()
	for i, want := range []int{1, 2, 3} {
		if sorted[i].Position != want {
			t.Fatalf("index %d: expected position %d, got %d", i, want, sorted[i].Position)
		}
	}

	// original slice is untouched
	if tontine.Memberships[0].Position != 3 {
		t.Fatal("SortedMemberships mutated the receiver")
	}
}

func TestFrequencyValid(t *testing.T) {
	t.Parallel()

	for _, f := range []TontineFrequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly} {
		if !f.Valid() {
			t.Errorf("%s should be valid", f)
		}
	}
	if TontineFrequency("yearly").Valid() {
		t.Error("yearly should be invalid")
	}
}
