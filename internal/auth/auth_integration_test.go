package auth_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/inkwellhq/blog-backend/internal/auth"
	"github.com/inkwellhq/blog-backend/internal/config"
	"github.com/inkwellhq/blog-backend/internal/db"
	"github.com/inkwellhq/blog-backend/internal/middleware"
	"github.com/joho/godotenv"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

// testServer is the shared httptest server for all integration tests.
var testServer *httptest.Server

func TestMain(m *testing.M) {
	// Load .env.local relative to the repo root (two directories up from internal/auth/).
	_ = godotenv.Load("../../.env.local")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// No database available — skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	if os.Getenv("SESSION_SECRET") == "" {
		os.Setenv("SESSION_SECRET", "integration-test-secret")
	}

	cfg := config.Load()
	db.Connect(cfg.DatabaseURL)
	dbAvailable = true

	// Set up auth tables (idempotent).
	auth.Init(cfg)

	// Mount auth routes on a Chi router, matching production setup in main.go.
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Mount("/auth", auth.SetupRoutes())

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

// newClientWithJar returns an http.Client with a fresh cookie jar that
// automatically carries cookies between requests.
func newClientWithJar(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar error: %v", err)
	}
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s error: %v", url, err)
	}
	return resp
}

// registerInput builds a unique, valid registration payload and registers a
// cleanup that removes the account.
func registerInput(t *testing.T) auth.RegisterInput {
	t.Helper()
	username := fmt.Sprintf("it_%s", uuid.New().String()[:8])

	t.Cleanup(func() {
		db.DB.Where("username = ?", username).Delete(&auth.User{})
	})

	return auth.RegisterInput{
		Username: username,
		Password: "TestPass123",
		Verify:   "TestPass123",
	}
}

// TestRegisterLoginMe exercises the full happy path: register (auto-login),
// then explicit login, then /me with the session cookie.
func TestRegisterLoginMe(t *testing.T) {
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	client := newClientWithJar(t)
	input := registerInput(t)

	resp := postJSON(t, client, testServer.URL+"/auth/register", input)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	resp = postJSON(t, client, testServer.URL+"/auth/login", map[string]string{
		"username": input.Username,
		"password": input.Password,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}

	meResp, err := client.Get(testServer.URL + "/auth/me")
	if err != nil {
		t.Fatalf("GET /auth/me error: %v", err)
	}
	defer meResp.Body.Close()
	if meResp.StatusCode != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", meResp.StatusCode)
	}

	var me auth.MeResponse
	if err := json.NewDecoder(meResp.Body).Decode(&me); err != nil {
		t.Fatalf("decode /auth/me: %v", err)
	}
	if me.Username != input.Username {
		t.Errorf("me: expected username %q, got %q", input.Username, me.Username)
	}
}

// TestRegisterDuplicateUsername verifies a second registration with the same
// username yields 409 and leaves the first account intact.
func TestRegisterDuplicateUsername(t *testing.T) {
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	client := newClientWithJar(t)
	input := registerInput(t)

	resp := postJSON(t, client, testServer.URL+"/auth/register", input)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", resp.StatusCode)
	}

	resp = postJSON(t, newClientWithJar(t), testServer.URL+"/auth/register", input)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second register: expected 409, got %d", resp.StatusCode)
	}

	// First account must still log in.
	resp = postJSON(t, client, testServer.URL+"/auth/login", map[string]string{
		"username": input.Username,
		"password": input.Password,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("login after duplicate attempt: expected 200, got %d", resp.StatusCode)
	}
}

// TestLoginFailureIsGeneric verifies unknown-user and wrong-password failures
// are indistinguishable to the client.
func TestLoginFailureIsGeneric(t *testing.T) {
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	client := newClientWithJar(t)
	input := registerInput(t)

	resp := postJSON(t, client, testServer.URL+"/auth/register", input)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	readBody := func(resp *http.Response) string {
		defer resp.Body.Close()
		var buf bytes.Buffer
		buf.ReadFrom(resp.Body)
		return buf.String()
	}

	noUser := postJSON(t, newClientWithJar(t), testServer.URL+"/auth/login", map[string]string{
		"username": "no_such_user_" + uuid.New().String()[:8],
		"password": "whatever",
	})
	wrongPw := postJSON(t, newClientWithJar(t), testServer.URL+"/auth/login", map[string]string{
		"username": input.Username,
		"password": "wrong-password",
	})

	if noUser.StatusCode != http.StatusUnauthorized || wrongPw.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", noUser.StatusCode, wrongPw.StatusCode)
	}
	if readBody(noUser) != readBody(wrongPw) {
		t.Error("expected identical error bodies for unknown user and wrong password")
	}
}

// TestCurrentUser_DeletedAccount verifies a correctly signed token stops
// authenticating once the account it names is gone.
func TestCurrentUser_DeletedAccount(t *testing.T) {
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	client := newClientWithJar(t)
	input := registerInput(t)

	resp := postJSON(t, client, testServer.URL+"/auth/register", input)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	var user auth.User
	if err := db.DB.First(&user, "username = ?", input.Username).Error; err != nil {
		t.Fatalf("lookup registered user: %v", err)
	}

	withCookie := httptest.NewRequest(http.MethodGet, "/", nil)
	withCookie.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: auth.Codec.Mint(user.UserID)})

	if _, ok := auth.CurrentUser(withCookie); !ok {
		t.Fatal("expected valid cookie for a live account to authenticate")
	}

	if err := db.DB.Delete(&user).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, ok := auth.CurrentUser(withCookie); ok {
		t.Error("expected cookie for a deleted account to be anonymous")
	}
}

// TestMeRejectsTamperedCookie verifies a forged session cookie does not
// authenticate.
func TestMeRejectsTamperedCookie(t *testing.T) {
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	req, err := http.NewRequest(http.MethodGet, testServer.URL+"/auth/me", nil)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "someid|deadbeef"})

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /auth/me error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for tampered cookie, got %d", resp.StatusCode)
	}
}
