package testutil

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/casey/kickball-cup/internal/api"
	"github.com/casey/kickball-cup/internal/config"
	"github.com/casey/kickball-cup/internal/repository/memory"
	"github.com/casey/kickball-cup/internal/service"
	"github.com/casey/kickball-cup/internal/websocket"
	"golang.org/x/crypto/bcrypt"
)

// AdminPassword is the admin credential every test server accepts.
const AdminPassword = "letmein"

// NewTestLogger returns a logger that swallows output.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestConfig returns a config suitable for in-process tests.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}

	return &config.Config{
		Port:              "0",
		Environment:       "test",
		StoreDriver:       config.StoreMemory,
		SessionSecret:     "test-session-secret",
		SessionTTLHours:   1,
		AdminPasswordHash: string(hash),
	}
}

// NewTestTournamentService builds the engine over an in-memory store.
func NewTestTournamentService(t *testing.T) *service.TournamentService {
	t.Helper()
	return service.NewTournamentService(memory.NewStateStore(), NewTestLogger())
}

// TestServer is a full HTTP stack over an in-memory store.
type TestServer struct {
	Server   *httptest.Server
	Services *service.Services
	Hub      *websocket.Hub
	Config   *config.Config
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := NewTestConfig(t)
	log := NewTestLogger()

	hub := websocket.NewHub(log)
	go hub.Run()

	services := service.NewServices(memory.NewStateStore(), cfg, log)
	router := api.NewRouter(services, hub, log)

	srv := httptest.NewServer(router)

	t.Cleanup(func() {
		srv.Close()
		hub.Stop()
	})

	return &TestServer{
		Server:   srv,
		Services: services,
		Hub:      hub,
		Config:   cfg,
	}
}

// NewClient returns an HTTP client with its own cookie jar, i.e. its own
// session identity.
func (ts *TestServer) NewClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// URL joins a path onto the test server base URL.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
