package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"cryptomobile/internal/auth"
	"cryptomobile/internal/store"
)

// MyLogs returns recent audit entries for the caller. Administrators can
// pass ?all=1 to see every subject.
func MyLogs(st store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		subject := claims.Subject
		if r.URL.Query().Get("all") == "1" && claims.HasRole(auth.RoleAdmin) {
			subject = ""
		}
		logs, err := st.ListAudit(r.Context(), subject, store.DefaultAuditLimit)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, logs)
	}
}
