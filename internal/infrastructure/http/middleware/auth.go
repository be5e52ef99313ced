package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/auth"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
)

// RequestGate extracts the bearer token, resolves it to a user, and puts the
// user in the request context (see UserFromContext). Requests fail closed:
// any step that cannot complete yields 401 without touching the handler.
type RequestGate struct {
	identity *auth.ResolveIdentity
	log      zerolog.Logger
}

func NewRequestGate(identity *auth.ResolveIdentity, log zerolog.Logger) *RequestGate {
	return &RequestGate{identity: identity, log: log}
}

func (m *RequestGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeGateError(w, http.StatusUnauthorized, "Token is missing")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			writeGateError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}
		user, err := m.identity.Execute(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, domerrors.ErrTokenExpired),
				errors.Is(err, domerrors.ErrInvalidToken),
				errors.Is(err, domerrors.ErrUserNotFound):
				writeGateError(w, http.StatusUnauthorized, err.Error())
			default:
				// Store or other internal failure; never expose its text.
				m.log.Error().Err(err).Msg("resolve identity failed")
				writeGateError(w, http.StatusInternalServerError, "Authentication failed")
			}
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func writeGateError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
