// File: internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/policylens/policylens/internal/apperr"
	"github.com/policylens/policylens/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[Handlers] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError translates a service failure into an HTTP status
// according to its kind. Everything unclassified is a server error.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindInvalidArgument:
		status = http.StatusBadRequest
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindGenerationFailure:
		status = http.StatusBadGateway
	}

	message := "internal server error"
	var appErr *apperr.Error
	if errors.As(err, &appErr) && status != http.StatusInternalServerError {
		message = appErr.Message
	}
	if status == http.StatusInternalServerError {
		log.Printf("[Handlers] Internal error: %v", err)
	}
	writeError(w, message, status)
}

// requireUserID pulls the authenticated user from the request context. The
// JWT middleware guarantees it on protected routes; a miss means a wiring
// mistake, answered with 401.
func requireUserID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// pathID parses the named route variable as an unsigned ID.
func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
