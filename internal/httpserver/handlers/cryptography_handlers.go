package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"cryptomobile/internal/store"
)

// GET /v1/algorithms
func ListAlgorithms(st store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := st.ListAlgorithms(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, map[string]any{"data": rows, "count": len(rows)})
	}
}
