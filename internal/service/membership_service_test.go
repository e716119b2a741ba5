package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tontinehub/internal/models"
	"tontinehub/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Tontine{},
		&models.TontineMembership{},
		&models.Transaction{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func newMembershipService(db *gorm.DB) *MembershipService {
	return NewMembershipService(
		repository.NewTontineRepository(db),
		repository.NewMembershipRepository(db),
	)
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestTontine(t *testing.T, db *gorm.DB, moderatorID uint, overrides ...func(*models.Tontine)) *models.Tontine {
	t.Helper()
	tontine := &models.Tontine{
		Name:             "Monthly Savings Group",
		StakeAmount:      50000,
		MaxSubscriptions: 10,
		Frequency:        models.FrequencyMonthly,
		ModeratorID:      moderatorID,
	}
	for _, override := range overrides {
		override(tontine)
	}
	if err := db.Create(tontine).Error; err != nil {
		t.Fatalf("create tontine: %v", err)
	}
	return tontine
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError with code %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func TestJoinAssignsPosition(t *testing.T) {
	t.Parallel()

	db := setupServiceTestDB(t)
	svc := newMembershipService(db)
	ctx := context.Background()

	moderator := createTestUser(t, db, "moderator")
	member := createTestUser(t, db, "member")
	tontine := createTestTontine(t, db, moderator.ID)

	membership, err := svc.Join(ctx, tontine.ID, member.ID, 3)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if membership.Position != 3 || membership.UserID != member.ID {
		t.Fatalf("unexpected membership: %+v", membership)
	}

	var stored models.TontineMembership
	if err := db.Where("tontine_id = ? AND user_id = ?", tontine.ID, member.ID).First(&stored).Error; err != nil {
		t.Fatalf("membership not persisted: %v", err)
	}
	if stored.Position != 3 {
		t.Fatalf("expected position 3, got %d", stored.Position)
	}
}

func TestJoinTontineNotFound(t *testing.T) {
	t.Parallel()

	db := setupServiceTestDB(t)
	svc := newMembershipService(db)
	member := createTestUser(t, db, "member")

	_, err := svc.Join(context.Background(), 999, member.ID, 1)
	assertCode(t, err, models.CodeNotFound)
}

func TestJoinModeratorRejected(t *testing.T) {
	t.Parallel()

	db := setupServiceTestDB(t)
	svc := newMembershipService(db)
	ctx := context.Background()

	moderator := createTestUser(t, db, "moderator")
	tontine := createTestTontine(t, db, moderator.ID)

	_, err := svc.Join(ctx, tontine.ID, moderator.ID, 1)
	assertCode(t, err, models.CodeModeratorCannotJoin)

	var count int64
	db.Model(&models.TontineMembership{}).Where("tontine_id = ?", tontine.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected no membership rows, got %d", count)
	}
}

func TestJoinCapacityCheckedBeforePosition(t *testing.T) {
	t.Parallel()

	db := setupServiceTestDB(t)
	svc := newMembershipService(db)
	ctx := context.Background()

	moderator := createTestUser(t, db, "moderator")
	tontine := createTestTontine(t, db, moderator.ID, func(tn *models.Tontine) {
		tn.MaxSubscriptions = 2
	})

	for i, pos := range []int{1, 2} {
		member := createTestUser(t, db, fmt.Sprintf("member%d", i))
		if _, err := svc.Join(ctx, tontine.ID, member.ID, pos); err != nil {
			t.Fatalf("seed join %d: %v", pos, err)
		}
	}

	// The tontine is full AND position 1 is taken; capacity wins.
	late := createTestUser(t, db, "latecomer")
	_, err := svc.Join(ctx, tontine.ID, late.ID, 1)
	assertCode(t, err, models.CodeTontineFull)
}

func TestJoinPositionTaken(t *testing.T) {
	t.Parallel()

	db := setupServiceTestDB(t)
	svc := newMembershipService(db)
	ctx := context.Background()

	moderator := createTestUser(t, db, "moderator")
	first := createTestUser(t, db, "first")
	second := createTestUser(t, db, "second")
	tontine := createTestTontine(t, db, moderator.ID)

	if _, err := svc.Join(ctx, tontine.ID, first.ID, 5); err != nil {
		t.Fatalf("seed join: %v", err)
	}

	_, err := svc.Join(ctx, tontine.ID, second.ID, 5)
	assertCode(t, err, models.CodePositionTaken)
}

func TestJoinAlreadyJoined(t *testing.T) {
	t.Parallel()

	db := setupServiceTestDB(t)
	svc := newMembershipService(db)
	ctx := context.Background()

	moderator := createTestUser(t, db, "moderator")
	member := createTestUser(t, db, "member")
	tontine := createTestTontine(t, db, moderator.ID)

	if _, err := svc.Join(ctx, tontine.ID, member.ID, 1); err != nil {
		t.Fatalf("seed join: %v", err)
	}

	// A different, free position does not help.
	_, err := svc.Join(ctx, tontine.ID, member.ID, 2)
	assertCode(t, err, models.CodeAlreadyJoined)
}

func TestJoinPositionBoundsRejectedBeforeStore(t *testing.T) {
	t.Parallel()

	// nil repos prove that out-of-range positions never reach storage.
	svc := NewMembershipService(nil, nil)

	for _, pos := range []int{0, -3} {
		_, err := svc.Join(context.Background(), 1, 1, pos)
		assertCode(t, err, models.CodeValidation)
	}
}

func TestJoinPositionAboveCapacity(t *testing.T) {
	t.Parallel()

	db := setupServiceTestDB(t)
	svc := newMembershipService(db)

	moderator := createTestUser(t, db, "moderator")
	member := createTestUser(t, db, "member")
	tontine := createTestTontine(t, db, moderator.ID, func(tn *models.Tontine) {
		tn.MaxSubscriptions = 5
	})

	_, err := svc.Join(context.Background(), tontine.ID, member.ID, 6)
	assertCode(t, err, models.CodeValidation)
}

func TestJoinConcurrentSamePosition(t *testing.T) {
	db := setupServiceTestDB(t)

	// In-memory sqlite gives every pooled connection its own database;
	// pin the pool so all goroutines share one (their transactions then
	// serialize, as row locks would on Postgres).
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	svc := newMembershipService(db)
	ctx := context.Background()

	moderator := createTestUser(t, db, "moderator")
	tontine := createTestTontine(t, db, moderator.ID)

	const contenders = 8
	users := make([]*models.User, contenders)
	for i := range users {
		users[i] = createTestUser(t, db, fmt.Sprintf("racer%d", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Join(ctx, tontine.ID, users[i].ID, 4)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assertCode(t, err, models.CodePositionTaken)
	}
	if successes != 1 {
		t.Fatalf("expected exactly one winner, got %d", successes)
	}

	var count int64
	db.Model(&models.TontineMembership{}).
		Where("tontine_id = ? AND position = ?", tontine.ID, 4).
		Count(&count)
	if count != 1 {
		t.Fatalf("expected one membership at position 4, got %d", count)
	}
}

func TestScheduleDerivation(t *testing.T) {
	t.Parallel()

	db := setupServiceTestDB(t)
	svc := newMembershipService(db)
	svc.now = func() time.Time {
		return time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	}
	ctx := context.Background()

	moderator := createTestUser(t, db, "moderator")
	tontine := createTestTontine(t, db, moderator.ID, func(tn *models.Tontine) {
		tn.CreatedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	})

	for i, pos := range []int{1, 2, 4} {
		member := createTestUser(t, db, fmt.Sprintf("member%d", i))
		if _, err := svc.Join(ctx, tontine.ID, member.ID, pos); err != nil {
			t.Fatalf("seed join %d: %v", pos, err)
		}
	}

	entries, err := svc.Schedule(ctx, tontine.ID)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(entries) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(entries))
	}

	for i, entry := range entries {
		if entry.Position != i+1 {
			t.Fatalf("entry %d: expected position %d, got %d", i, i+1, entry.Position)
		}
		if entry.PayoutAmount != 500000 {
			t.Fatalf("entry %d: expected payout 500000, got %d", i, entry.PayoutAmount)
		}
	}

	// Position 3 collects 2024-03-01, before the injected clock.
	if !entries[2].CollectionDate.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("position 3: expected 2024-03-01, got %s", entries[2].CollectionDate)
	}
	for pos, wantComplete := range map[int]bool{1: true, 2: true, 3: true, 4: false, 10: false} {
		if entries[pos-1].IsComplete != wantComplete {
			t.Fatalf("position %d: expected IsComplete=%v", pos, wantComplete)
		}
	}

	// Vacant positions carry no member but keep their dates.
	if entries[2].Member != nil {
		t.Fatal("position 3 should be vacant")
	}
	if entries[0].Member == nil || entries[1].Member == nil || entries[3].Member == nil {
		t.Fatal("occupied positions should carry their member")
	}

	// Recomputing yields the same calendar.
	again, err := svc.Schedule(ctx, tontine.ID)
	if err != nil {
		t.Fatalf("second schedule: %v", err)
	}
	for i := range entries {
		if !entries[i].CollectionDate.Equal(again[i].CollectionDate) || entries[i].IsComplete != again[i].IsComplete {
			t.Fatalf("entry %d changed between computations", i)
		}
	}
}

func TestScheduleTontineNotFound(t *testing.T) {
	t.Parallel()

	db := setupServiceTestDB(t)
	svc := newMembershipService(db)

	_, err := svc.Schedule(context.Background(), 999)
	assertCode(t, err, models.CodeNotFound)
}
