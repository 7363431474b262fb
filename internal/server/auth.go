package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func (s *Server) getGoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.config.GoogleClientID,
		ClientSecret: s.config.GoogleClientSecret,
		RedirectURL:  s.config.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// newOAuthState returns a random token binding the login redirect to the
// callback that follows it.
func newOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := newOAuthState()
	if err != nil {
		s.log.Error().Err(err).Msg("oauth state generation failed")
		http.Error(w, "Failed to start login", http.StatusInternalServerError)
		return
	}

	session, _ := s.sessionStore.Get(r, "auth-session")
	session.Values["oauth_state"] = state
	if err := session.Save(r, w); err != nil {
		s.log.Error().Err(err).Msg("failed to save auth session")
		http.Error(w, "Failed to start login", http.StatusInternalServerError)
		return
	}

	url := s.getGoogleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	session, _ := s.sessionStore.Get(r, "auth-session")

	// The state must round-trip through the session; a mismatch means the
	// callback was not initiated by our login redirect.
	wantState, _ := session.Values["oauth_state"].(string)
	delete(session.Values, "oauth_state")
	if wantState == "" || r.URL.Query().Get("state") != wantState {
		s.log.Warn().Msg("oauth callback with bad state")
		http.Error(w, "Invalid state", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found", http.StatusBadRequest)
		return
	}

	oauthConfig := s.getGoogleOAuthConfig()
	token, err := oauthConfig.Exchange(context.Background(), code)
	if err != nil {
		s.log.Error().Err(err).Msg("oauth code exchange failed")
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	client := oauthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch user info")
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read user info")
		http.Error(w, "Failed to read user info", http.StatusInternalServerError)
		return
	}

	var userInfo struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &userInfo); err != nil {
		s.log.Error().Err(err).Msg("failed to parse user info")
		http.Error(w, "Failed to parse user info", http.StatusInternalServerError)
		return
	}

	if !s.isAdminEmail(userInfo.Email) {
		s.log.Warn().Str("email", userInfo.Email).Msg("login attempt by non-admin")
		http.Error(w, "Unauthorized: Your email is not whitelisted", http.StatusUnauthorized)
		return
	}

	session.Values["email"] = userInfo.Email
	session.Values["name"] = userInfo.Name
	if err := session.Save(r, w); err != nil {
		s.log.Error().Err(err).Msg("failed to save auth session")
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	s.log.Info().Str("email", userInfo.Email).Msg("admin logged in")
	http.Redirect(w, r, "/admin/households", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := s.sessionStore.Get(r, "auth-session")
	session.Values["email"] = ""
	session.Values["name"] = ""
	session.Options.MaxAge = -1
	_ = session.Save(r, w)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
