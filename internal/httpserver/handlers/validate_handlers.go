package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cryptomobile/internal/services/vector"
	"cryptomobile/internal/store"
	"cryptomobile/internal/suite"
)

const maxUpload = 32 << 20

// POST /v1/clients/{client_id}/vectors/validate
func ValidateVectors(eng suite.Engine, st store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := chi.URLParam(r, "client_id")
		if !validID(w, clientID) {
			return
		}
		if _, err := st.GetClient(r.Context(), clientID); err != nil {
			respondError(w, lg, err)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			http.Error(w, "multipart parse error", http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		set, err := vector.Parse(file)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		result, err := vector.Validate(eng, set)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		lg.Infow("vector set validated", "client_id", clientID, "algorithm", set.Algorithm, "passed", result.Passed, "failed", result.Failed)
		audit(r, st, lg, &clientID, "VECTOR_VALIDATE", map[string]any{
			"algorithm":   set.Algorithm,
			"test_mode":   set.TestMode,
			"fingerprint": set.Fingerprint(),
			"passed":      result.Passed,
			"failed":      result.Failed,
		})
		respondJSON(w, result)
	}
}
