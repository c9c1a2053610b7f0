package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"cryptomobile/internal/bits"
	"cryptomobile/internal/services/vector"
	"cryptomobile/internal/store"
	"cryptomobile/internal/suite"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

var errBadHex = errors.New("not valid hex")

// respondError maps engine and store errors onto status codes.
func respondError(w http.ResponseWriter, lg *zap.SugaredLogger, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, bits.ErrResource):
		code = http.StatusRequestEntityTooLarge
	case suite.IsInputError(err), errors.Is(err, errBadHex),
		errors.Is(err, vector.ErrInvalidParams), errors.Is(err, vector.ErrMalformed):
		code = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		code = http.StatusNotFound
	}
	if code == http.StatusInternalServerError {
		lg.Errorw("request failed", "error", err)
		http.Error(w, "internal error", code)
		return
	}
	http.Error(w, err.Error(), code)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
