package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		SessionSecret: "test-secret",
		AdminEmails:   []string{"admin@example.com"},
	}
	return New(cfg, store.NewMemory(), nil, zerolog.Nop())
}

// loginRedirect performs the login step and returns the state parameter from
// the redirect plus the session cookies that carry it.
func loginRedirect(t *testing.T, s *Server) (string, []*http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	w := httptest.NewRecorder()
	s.handleGoogleLogin(w, req)

	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", w.Code)
	}
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("failed to parse redirect location: %v", err)
	}
	state := loc.Query().Get("state")
	if state == "" {
		t.Fatal("login redirect carries no state parameter")
	}
	return state, w.Result().Cookies()
}

func TestGoogleLoginStateIsPerRequest(t *testing.T) {
	s := newTestServer(t)
	first, _ := loginRedirect(t, s)
	second, _ := loginRedirect(t, s)
	if first == second {
		t.Error("state must be random per login, not a fixed value")
	}
}

func TestGoogleCallbackRejectsMismatchedState(t *testing.T) {
	s := newTestServer(t)
	_, cookies := loginRedirect(t, s)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=forged&code=x", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.handleGoogleCallback(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a forged state", w.Code)
	}
}

func TestGoogleCallbackRejectsMissingSessionState(t *testing.T) {
	s := newTestServer(t)

	// No prior login, so the session holds no state to match against.
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=whatever&code=x", nil)
	w := httptest.NewRecorder()
	s.handleGoogleCallback(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without a stored state", w.Code)
	}
}

func TestGoogleCallbackRequiresCode(t *testing.T) {
	s := newTestServer(t)
	state, cookies := loginRedirect(t, s)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state="+state, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.handleGoogleCallback(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without an authorization code", w.Code)
	}
}
