package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cryptomobile/internal/auth"
	"cryptomobile/internal/models"
	"cryptomobile/internal/services/vector"
	"cryptomobile/internal/store"
	"cryptomobile/internal/suite"
)

type GenerateRes struct {
	VectorID    string     `json:"vector_id"`
	Fingerprint string     `json:"fingerprint"`
	Records     int        `json:"records"`
	Set         vector.Set `json:"set"`
}

// POST /v1/clients/{client_id}/vectors/generate
//
// mctRounds is used when the request leaves rounds at zero. With
// ?format=txt the set comes back in the text layout.
func GenerateVector(eng suite.Engine, st store.Store, lg *zap.SugaredLogger, mctRounds int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := chi.URLParam(r, "client_id")
		if !validID(w, clientID) {
			return
		}
		var req vector.GenParams
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Rounds == 0 {
			req.Rounds = mctRounds
		}
		req.Engine = eng
		if _, err := st.GetClient(r.Context(), clientID); err != nil {
			respondError(w, lg, err)
			return
		}
		set, err := vector.Generate(req)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		body, err := json.Marshal(set)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		v := models.Vector{
			Subject:     auth.Subject(r.Context()),
			ClientID:    clientID,
			Algorithm:   set.Algorithm,
			Family:      string(set.Family),
			TestMode:    string(set.TestMode),
			Records:     set.Len(),
			Fingerprint: set.Fingerprint(),
			Params:      models.MustJSONB(req),
			Set:         models.JSONB(body),
			Status:      "ready",
			CreatedAt:   time.Now(),
		}
		if err := st.SaveVector(r.Context(), &v); err != nil {
			respondError(w, lg, err)
			return
		}
		lg.Infow("vector set generated", "vector_id", v.ID, "algorithm", v.Algorithm, "test", v.TestMode, "records", v.Records)
		audit(r, st, lg, &clientID, "VECTOR_GENERATE", map[string]any{"vector_id": v.ID, "algorithm": v.Algorithm, "test_mode": v.TestMode})

		if r.URL.Query().Get("format") == "txt" {
			writeText(w, v.ID, set)
			return
		}
		respondJSON(w, GenerateRes{VectorID: v.ID, Fingerprint: v.Fingerprint, Records: v.Records, Set: set})
	}
}

func writeText(w http.ResponseWriter, id string, set vector.Set) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+set.Algorithm+"_"+string(set.TestMode)+"_"+id+`.txt"`)
	_, _ = w.Write([]byte(set.String()))
}
