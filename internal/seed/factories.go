// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"time"

	"tontinehub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateTontine constructs and persists a tontine moderated by the given user.
func (f *Factory) CreateTontine(moderator *models.User, overrides ...func(*models.Tontine)) (*models.Tontine, error) {
	tontine := &models.Tontine{
		Name:             gofakeit.Company() + " Pool",
		Description:      gofakeit.Sentence(12),
		StakeAmount:      int64(gofakeit.Number(10, 500)) * 100,
		MaxSubscriptions: gofakeit.Number(4, 12),
		Frequency:        models.FrequencyMonthly,
		ModeratorID:      moderator.ID,
	}

	for _, override := range overrides {
		override(tontine)
	}

	if err := f.db.Create(tontine).Error; err != nil {
		return nil, fmt.Errorf("create tontine: %w", err)
	}
	return tontine, nil
}

// JoinMember persists a membership assigning user to position in tontine.
func (f *Factory) JoinMember(tontine *models.Tontine, user *models.User, position int) (*models.TontineMembership, error) {
	membership := &models.TontineMembership{
		TontineID: tontine.ID,
		UserID:    user.ID,
		Position:  position,
	}
	if err := f.db.Create(membership).Error; err != nil {
		return nil, fmt.Errorf("create membership: %w", err)
	}
	return membership, nil
}

// CreateTransaction persists an illustrative history row for a tontine.
func (f *Factory) CreateTransaction(tontine *models.Tontine, user *models.User, txType models.TransactionType, amount int64, status models.TransactionStatus, at time.Time) (*models.Transaction, error) {
	transaction := &models.Transaction{
		TontineID: tontine.ID,
		UserID:    user.ID,
		Type:      txType,
		Amount:    amount,
		Status:    status,
		CreatedAt: at,
	}
	if err := f.db.Create(transaction).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return transaction, nil
}
