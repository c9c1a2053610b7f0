package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cryptomobile/internal/models"
	"cryptomobile/internal/store"
)

type clientReq struct {
	CompanyName    *string `json:"company_name"`
	ProductName    *string `json:"product_name,omitempty"`
	ProductVersion *string `json:"product_version,omitempty"`
}

// apply copies the provided fields onto c, using def for blank product
// fields, and reports the first constraint violation.
func (req clientReq) apply(c *models.Client, def bool) string {
	if req.CompanyName != nil {
		c.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if c.CompanyName == "" {
		return "company_name required"
	}
	if req.ProductName != nil {
		c.ProductName = strings.TrimSpace(*req.ProductName)
	}
	if req.ProductVersion != nil {
		c.ProductVersion = strings.TrimSpace(*req.ProductVersion)
	}
	if def && c.ProductName == "" {
		c.ProductName = "UNKNOWN"
	}
	if def && c.ProductVersion == "" {
		c.ProductVersion = "0.0"
	}
	if utf8.RuneCountInString(c.ProductName) > 30 {
		return "product_name must be <= 30 characters"
	}
	if utf8.RuneCountInString(c.ProductVersion) > 5 {
		return "product_version must be <= 5 characters"
	}
	return ""
}

// validID rejects ids that could never name a row, before they reach the
// database.
func validID(w http.ResponseWriter, id string) bool {
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return false
	}
	return true
}

func CreateClient(st store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clientReq
		if !decodeBody(w, r, &req) {
			return
		}
		var c models.Client
		if msg := req.apply(&c, true); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		if err := st.CreateClient(r.Context(), &c); err != nil {
			respondError(w, lg, err)
			return
		}
		audit(r, st, lg, &c.ID, "CLIENT_CREATE", map[string]any{"company_name": c.CompanyName})
		respondJSON(w, c)
	}
}

func ListClients(st store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := st.ListClients(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, cs)
	}
}

func UpdateClient(st store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !validID(w, id) {
			return
		}
		var req clientReq
		if !decodeBody(w, r, &req) {
			return
		}
		c, err := st.GetClient(r.Context(), id)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		if msg := req.apply(&c, false); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		if err := st.UpdateClient(r.Context(), &c); err != nil {
			respondError(w, lg, err)
			return
		}
		audit(r, st, lg, &c.ID, "CLIENT_UPDATE", nil)
		respondJSON(w, map[string]any{"updated": true})
	}
}

func DeleteClient(st store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !validID(w, id) {
			return
		}
		if err := st.DeleteClient(r.Context(), id); err != nil {
			respondError(w, lg, err)
			return
		}
		audit(r, st, lg, &id, "CLIENT_DELETE", nil)
		respondJSON(w, map[string]any{"deleted": true})
	}
}
