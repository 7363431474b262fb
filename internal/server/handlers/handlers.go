package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/mail"
	"wedding-rsvp/internal/match"
	"wedding-rsvp/internal/rsvp"
	"wedding-rsvp/internal/store"
)

// Server interface defines the methods needed by handlers
type Server interface {
	GetStore() store.Store
	GetConfig() *config.Config
	GetResolver() *match.Resolver
	GetNotifier() mail.Notifier
	GetLogger() zerolog.Logger
}

// AdminServer extends Server with admin-specific methods
type AdminServer interface {
	Server
	GetCurrentUser(r *http.Request) (string, string)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the uniform error payload of the JSON API.
type errorBody struct {
	Error string `json:"error"`
}

// writeError maps the error taxonomy onto HTTP statuses and a user-facing
// message. Store detail was already logged at the store boundary.
func writeError(w http.ResponseWriter, err error) {
	var valErr *rsvp.ValidationError
	switch {
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: valErr.Message})
	case errors.Is(err, match.ErrEmptyName):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Please enter both a first and a last name."})
	case errors.Is(err, rsvp.ErrDeadlinePassed):
		writeJSON(w, http.StatusForbidden, errorBody{Error: "The RSVP deadline for this invitation has passed."})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "We could not find that invitation."})
	case errors.Is(err, store.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "The guest list is temporarily unavailable. Please try again in a moment."})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Something went wrong. Please try again."})
	}
}
