package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cryptomobile/internal/auth"
	"cryptomobile/internal/services/vector"
	"cryptomobile/internal/store"
)

// GET /v1/vectors/{id}
func GetVector(st store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !validID(w, id) {
			return
		}
		v, err := st.GetVector(r.Context(), id)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		claims := auth.FromContext(r.Context())
		if v.Subject != claims.Subject && !claims.HasRole(auth.RoleAdmin) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("format") == "txt" {
			var set vector.Set
			if err := json.Unmarshal(v.Set, &set); err != nil {
				respondError(w, lg, err)
				return
			}
			writeText(w, v.ID, set)
			return
		}
		respondJSON(w, v)
	}
}
