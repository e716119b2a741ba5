package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tontinehub/internal/config"
	"tontinehub/internal/models"
	"tontinehub/internal/repository"
	"tontinehub/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
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

// newTestServer wires a Server directly against sqlite, skipping Redis
// and the Prometheus middleware.
func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db := setupHandlerTestDB(t)

	tontineRepo := repository.NewTontineRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)

	s := &Server{
		config:          &config.Config{JWTSecret: "test-secret-0123456789abcdef0123456789", Env: "test"},
		db:              db,
		userRepo:        repository.NewUserRepository(db),
		tontineRepo:     tontineRepo,
		membershipRepo:  membershipRepo,
		transactionRepo: repository.NewTransactionRepository(db),
	}
	s.tontineService = service.NewTontineService(tontineRepo)
	s.membershipService = service.NewMembershipService(tontineRepo, membershipRepo)

	return s, db
}

// newTestApp returns a Fiber app that authenticates every request as
// the given user before dispatching to the server's routes.
func newTestApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	if userID != 0 {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", userID)
			return c.Next()
		})
	}
	return app
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
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

func seedTontine(t *testing.T, db *gorm.DB, moderatorID uint, overrides ...func(*models.Tontine)) *models.Tontine {
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
