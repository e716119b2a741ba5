package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

const testPassword = "Sup3r-Secret-Pass!"

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

func signupUser(t *testing.T, app *fiber.App, username, email string) authResponse {
	t.Helper()
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/auth/signup", map[string]any{
		"username": username,
		"email":    email,
		"password": testPassword,
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var body authResponse
	decodeJSON(t, resp, &body)
	return body
}

func TestSignupAndLoginFlow(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	app := newTestApp(s, 0)
	app.Post("/auth/signup", s.Signup)
	app.Post("/auth/login", s.Login)

	created := signupUser(t, app, "alice", "alice@example.com")
	if created.Token == "" {
		t.Fatal("expected token in signup response")
	}
	if created.User.Username != "alice" {
		t.Fatalf("unexpected user: %+v", created.User)
	}

	// duplicate email is rejected
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/auth/signup", map[string]any{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": testPassword,
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}

	// login with correct credentials
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": testPassword,
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var login authResponse
	decodeJSON(t, resp, &login)
	if login.Token == "" {
		t.Fatal("expected token in login response")
	}

	// wrong password
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "Wrong-Password-1!",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	app := newTestApp(s, 0)
	app.Post("/auth/signup", s.Signup)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/auth/signup", map[string]any{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "short",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAuthRequiredAcceptsIssuedToken(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	app := newTestApp(s, 0)
	app.Post("/auth/signup", s.Signup)
	app.Get("/users/me", s.AuthRequired(), s.GetMyProfile)

	created := signupUser(t, app, "carol", "carol@example.com")

	req := jsonRequest(t, http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", resp.StatusCode)
	}

	// missing and malformed tokens are rejected
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/users/me", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	req = jsonRequest(t, http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", resp.StatusCode)
	}
}
