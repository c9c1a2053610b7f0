package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"cryptomobile/internal/auth"
	"cryptomobile/internal/models"
	"cryptomobile/internal/store"
)

// audit records an action for the caller. Failures are logged, never
// surfaced to the client.
func audit(r *http.Request, st store.Store, lg *zap.SugaredLogger, clientID *string, action string, md any) {
	e := &models.AuditLog{
		Subject:  auth.Subject(r.Context()),
		ClientID: clientID,
		Action:   action,
		Metadata: models.MustJSONB(md),
	}
	if err := st.AppendAudit(r.Context(), e); err != nil {
		lg.Warnw("audit write failed", "action", action, "error", err)
	}
}
