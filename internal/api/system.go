package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nerrad567/smarthome-core/internal/audit"
	"github.com/nerrad567/smarthome-core/internal/auth"
)

const healthCheckTimeout = 2 * time.Second

// handleHealth reports the server version and the state of each
// registered dependency. Any failing dependency turns the response into
// a 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(s.checks))
	for name, c := range s.checks {
		if err := c.HealthCheck(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	writeJSON(w, status, map[string]any{
		"status":            overall,
		"version":           s.version,
		"checks":            checks,
		"websocket_clients": s.hub.ClientCount(),
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin exchanges operator credentials for an access token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeBadRequest(w, "username and password are required")
		return
	}

	token, err := s.auth.Login(req.Username, req.Password)
	switch {
	case err == nil:
		s.recordAudit(r.Context(), loginEntry(req.Username, "success"))
		writeJSON(w, http.StatusOK, token)
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.logger.Warn("login failed", "username", req.Username, "remote", r.RemoteAddr)
		s.recordAudit(r.Context(), loginEntry(req.Username, "failure"))
		writeUnauthorized(w, "invalid username or password")
	case errors.Is(err, auth.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, ErrCodeNotConfigured, "operator account is not configured")
	default:
		s.logger.Error("login error", "error", err)
		writeInternalError(w, "login failed")
	}
}

func loginEntry(username, result string) audit.Entry {
	return audit.Entry{
		Action:     audit.ActionLogin,
		EntityType: audit.EntitySession,
		Subject:    username,
		Details:    map[string]any{"result": result},
	}
}
