package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/mail"
	"wedding-rsvp/internal/match"
	"wedding-rsvp/internal/server/handlers"
	"wedding-rsvp/internal/store"
)

type Server struct {
	config       *config.Config
	store        store.Store
	resolver     *match.Resolver
	notifier     mail.Notifier
	sessionStore *sessions.CookieStore
	router       *http.ServeMux
	log          zerolog.Logger
}

// GetStore implements handlers.Server interface
func (s *Server) GetStore() store.Store {
	return s.store
}

// GetConfig implements handlers.Server interface
func (s *Server) GetConfig() *config.Config {
	return s.config
}

// GetResolver implements handlers.Server interface
func (s *Server) GetResolver() *match.Resolver {
	return s.resolver
}

// GetNotifier implements handlers.Server interface
func (s *Server) GetNotifier() mail.Notifier {
	return s.notifier
}

// GetLogger implements handlers.Server interface
func (s *Server) GetLogger() zerolog.Logger {
	return s.log
}

// GetCurrentUser implements handlers.AdminServer interface
func (s *Server) GetCurrentUser(r *http.Request) (string, string) {
	session, _ := s.sessionStore.Get(r, "auth-session")
	email, _ := session.Values["email"].(string)
	name, _ := session.Values["name"].(string)
	return email, name
}

func New(cfg *config.Config, st store.Store, notifier mail.Notifier, log zerolog.Logger) *Server {
	s := &Server{
		config:       cfg,
		store:        st,
		resolver:     match.NewResolver(st, log),
		notifier:     notifier,
		sessionStore: sessions.NewCookieStore([]byte(cfg.SessionSecret)),
		router:       http.NewServeMux(),
		log:          log,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Static files
	fs := http.FileServer(http.Dir("./static"))
	s.router.Handle("/static/", http.StripPrefix("/static/", fs))

	// Password gate
	s.router.HandleFunc("/api/login", s.handleLogin)

	// RSVP API (behind the password gate)
	s.router.HandleFunc("/api/rsvp/search", s.requireGuest(handlers.HandleSearch(s)))
	s.router.HandleFunc("/api/rsvp/household", s.requireGuest(handlers.HandleLookupByCode(s)))
	s.router.HandleFunc("/api/rsvp/submit", s.requireGuest(handlers.HandleSubmit(s)))

	// Auth routes (admin)
	s.router.HandleFunc("/auth/google", s.handleGoogleLogin)
	s.router.HandleFunc("/auth/google/callback", s.handleGoogleCallback)
	s.router.HandleFunc("/auth/logout", s.handleLogout)

	// Admin routes (protected)
	s.router.HandleFunc("/admin/households", s.requireAuth(handlers.HandleAdminHouseholds(s)))
	s.router.HandleFunc("/admin/households/create", s.requireAuth(handlers.HandleAdminCreateHousehold(s)))
	s.router.HandleFunc("/admin/households/download-csv", s.requireAuth(handlers.HandleAdminDownloadCSV(s)))
}

func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

// handleLogin exchanges the shared site password for a guest session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.config.SitePassword)) != 1 {
		http.Error(w, "Wrong password", http.StatusUnauthorized)
		return
	}

	session, _ := s.sessionStore.Get(r, "guest-session")
	session.Values["guest"] = true
	if err := session.Save(r, w); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// requireGuest gates the RSVP API behind the shared site password. An empty
// SITE_PASSWORD disables the gate for local development.
func (s *Server) requireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.SitePassword == "" {
			next(w, r)
			return
		}

		session, _ := s.sessionStore.Get(r, "guest-session")
		if authed, ok := session.Values["guest"].(bool); !ok || !authed {
			http.Error(w, "Password required", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

// requireAuth is a middleware that checks if an admin is authenticated
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := s.sessionStore.Get(r, "auth-session")

		email, ok := session.Values["email"].(string)
		if !ok || email == "" {
			http.Redirect(w, r, "/auth/google", http.StatusSeeOther)
			return
		}

		// Check if email is in whitelist
		if !s.isAdminEmail(email) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

func (s *Server) isAdminEmail(email string) bool {
	for _, adminEmail := range s.config.AdminEmails {
		if email == adminEmail {
			return true
		}
	}
	return false
}
