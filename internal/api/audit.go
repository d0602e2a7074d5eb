package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nerrad567/smarthome-core/internal/audit"
	"github.com/nerrad567/smarthome-core/internal/auth"
)

// recordAudit stores e when an audit repository is configured. The
// subject defaults to the authenticated caller. Failures are logged only.
func (s *Server) recordAudit(ctx context.Context, e audit.Entry) {
	if s.audit == nil {
		return
	}
	if e.Subject == "" {
		if claims, ok := ctx.Value(ctxKeyClaims).(*auth.Claims); ok {
			e.Subject = claims.Subject
		}
	}
	if err := s.audit.Create(ctx, &e); err != nil {
		s.logger.Warn("failed to record audit entry", "action", e.Action, "error", err)
	}
}

// handleListAudit lists audit entries, filtered by the action,
// entity_type and entity_id query parameters and paged by limit and offset.
func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeNotConfigured, "audit trail is not enabled")
		return
	}

	q := r.URL.Query()
	filter := audit.Filter{
		Action:     q.Get("action"),
		EntityType: q.Get("entity_type"),
		EntityID:   q.Get("entity_id"),
	}
	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeBadRequest(w, name+" must be a non-negative integer")
			return
		}
		*dst = n
	}

	page, err := s.audit.List(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to list audit entries")
		return
	}
	writeJSON(w, http.StatusOK, page)
}
