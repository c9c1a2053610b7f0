package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-quicktest/qt"
	"go.uber.org/zap"

	"cryptomobile/internal/auth"
	"cryptomobile/internal/bits"
	"cryptomobile/internal/store"
	"cryptomobile/internal/suite"
)

type testServer struct {
	t     *testing.T
	srv   *httptest.Server
	user  string
	admin string
}

func newTestServer(t *testing.T) *testServer {
	st := store.NewMemory()
	qt.Assert(t, qt.IsNil(store.SeedCatalogue(context.Background(), st)))
	tk := auth.NewTokens("test-secret", time.Hour)
	h := NewRouter(Deps{
		Store:     st,
		Engine:    suite.Engine{Limit: bits.Limit{MaxBits: 4096}},
		Tokens:    tk,
		Logger:    zap.NewNop().Sugar(),
		MCTRounds: 10,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	user, err := tk.Sign("lab-user", []string{auth.RoleUser})
	qt.Assert(t, qt.IsNil(err))
	admin, err := tk.Sign("lab-admin", []string{auth.RoleAdmin})
	qt.Assert(t, qt.IsNil(err))
	return &testServer{t: t, srv: srv, user: user, admin: admin}
}

func (s *testServer) do(method, path, token, contentType string, body io.Reader) (int, []byte) {
	s.t.Helper()
	req, err := http.NewRequest(method, s.srv.URL+path, body)
	qt.Assert(s.t, qt.IsNil(err))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	qt.Assert(s.t, qt.IsNil(err))
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	qt.Assert(s.t, qt.IsNil(err))
	return resp.StatusCode, b
}

func (s *testServer) json(method, path, token string, in any) (int, map[string]any) {
	s.t.Helper()
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		qt.Assert(s.t, qt.IsNil(err))
		body = bytes.NewReader(b)
	}
	code, raw := s.do(method, path, token, "application/json", body)
	out := map[string]any{}
	if code == http.StatusOK && len(raw) > 0 && raw[0] == '{' {
		qt.Assert(s.t, qt.IsNil(json.Unmarshal(raw, &out)))
	}
	return code, out
}

func TestPublicRoutes(t *testing.T) {
	s := newTestServer(t)
	code, _ := s.do(http.MethodGet, "/healthz", "", "", nil)
	qt.Assert(t, qt.Equals(code, http.StatusOK))

	code, out := s.json(http.MethodGet, "/v1/algorithms", "", nil)
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	qt.Assert(t, qt.Equals[any](out["count"], float64(len(suite.Describe()))))

	code, _ = s.json(http.MethodPost, "/v1/cipher/EEA3", "", map[string]any{})
	qt.Assert(t, qt.Equals(code, http.StatusUnauthorized))
}

func TestCipherAndMAC(t *testing.T) {
	s := newTestServer(t)
	code, out := s.json(http.MethodPost, "/v1/cipher/eea3", s.user, map[string]any{
		"key_hex":   "173d14ba5003731d7a60049470f00a29",
		"count":     0x66035492,
		"bearer":    0x0f,
		"direction": 0,
		"data_hex":  "6cf65340735552ab0c9752fa6f9025fe0bd675d9005875b2",
	})
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	qt.Assert(t, qt.Equals(out["output_hex"], "a6c85fc66afb8533aafc2518dfe784940ee1e4b030238cc8"))
	qt.Assert(t, qt.Equals[any](out["bit_length"], float64(192)))

	code, out = s.json(http.MethodPost, "/v1/mac/EIA1", s.user, map[string]any{
		"key_hex":    "2bd6459f82c5b300952c49104881ff48",
		"count":      0x38a6f056,
		"bearer":     0x1f,
		"bit_length": 88,
		"data_hex":   "3332346263393861373479",
	})
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	qt.Assert(t, qt.Equals(out["mac_hex"], "731f1165"))

	for _, tt := range []struct {
		path string
		body map[string]any
		code int
	}{
		{"/v1/cipher/EEA3", map[string]any{"key_hex": "00", "data_hex": "00"}, http.StatusBadRequest},
		{"/v1/cipher/EEA3", map[string]any{"key_hex": strings.Repeat("00", 16), "direction": 2}, http.StatusBadRequest},
		{"/v1/cipher/EEA3", map[string]any{"key_hex": strings.Repeat("00", 16), "data_hex": "zz"}, http.StatusBadRequest},
		{"/v1/cipher/A5", map[string]any{"key_hex": strings.Repeat("00", 16)}, http.StatusBadRequest},
		{"/v1/cipher/EEA3", map[string]any{"key_hex": strings.Repeat("00", 16), "data_hex": strings.Repeat("00", 513)}, http.StatusRequestEntityTooLarge},
		{"/v1/mac/UIA2", map[string]any{"key_hex": strings.Repeat("00", 16), "bit_length": 9, "data_hex": "00"}, http.StatusBadRequest},
	} {
		code, _ := s.json(http.MethodPost, tt.path, s.user, tt.body)
		qt.Assert(t, qt.Equals(code, tt.code), qt.Commentf("%s %v", tt.path, tt.body))
	}
}

func TestCOMP128AndKeccak(t *testing.T) {
	s := newTestServer(t)
	code, out := s.json(http.MethodPost, "/v1/comp128/v1", s.user, map[string]any{
		"ki_hex":   "465b5ce8b199b49faa5f0a2ee238a6bc",
		"rand_hex": "23553cbe9637a89d218ae64dae47bf35",
	})
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	qt.Assert(t, qt.Equals(out["sres_hex"], "27c443ca"))
	qt.Assert(t, qt.Equals(out["kc_hex"], "e8d311d150017400"))

	code, _ = s.json(http.MethodPost, "/v1/comp128/v9", s.user, map[string]any{})
	qt.Assert(t, qt.Equals(code, http.StatusBadRequest))

	code, out = s.json(http.MethodPost, "/v1/keccak/permute", s.user, map[string]any{"state_hex": strings.Repeat("00", 200)})
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	qt.Assert(t, qt.IsTrue(strings.HasPrefix(out["state_hex"].(string), "e7dde140798f25f1")))

	code, _ = s.json(http.MethodPost, "/v1/keccak/permute", s.user, map[string]any{"state_hex": "00"})
	qt.Assert(t, qt.Equals(code, http.StatusBadRequest))
}

func TestClients(t *testing.T) {
	s := newTestServer(t)
	code, c := s.json(http.MethodPost, "/v1/clients", s.user, map[string]any{"company_name": "Acme"})
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	qt.Assert(t, qt.Equals(c["product_name"], "UNKNOWN"))
	id := c["id"].(string)

	code, _ = s.json(http.MethodPost, "/v1/clients", s.user, map[string]any{"company_name": " "})
	qt.Assert(t, qt.Equals(code, http.StatusBadRequest))

	code, _ = s.json(http.MethodPatch, "/v1/clients/"+id, s.user, map[string]any{"product_version": "10.0.1"})
	qt.Assert(t, qt.Equals(code, http.StatusBadRequest))
	code, _ = s.json(http.MethodPatch, "/v1/clients/"+id, s.user, map[string]any{"product_name": "gNB"})
	qt.Assert(t, qt.Equals(code, http.StatusOK))

	code, raw := s.do(http.MethodGet, "/v1/clients", s.user, "", nil)
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	qt.Assert(t, qt.IsTrue(strings.Contains(string(raw), `"product_name":"gNB"`)))

	code, _ = s.json(http.MethodDelete, "/v1/clients/"+id, s.user, nil)
	qt.Assert(t, qt.Equals(code, http.StatusForbidden))
	code, _ = s.json(http.MethodDelete, "/v1/clients/"+id, s.admin, nil)
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	code, _ = s.json(http.MethodDelete, "/v1/clients/"+id, s.admin, nil)
	qt.Assert(t, qt.Equals(code, http.StatusNotFound))
	code, _ = s.json(http.MethodPatch, "/v1/clients/not-a-uuid", s.user, map[string]any{})
	qt.Assert(t, qt.Equals(code, http.StatusNotFound))
}

func TestVectorLifecycle(t *testing.T) {
	s := newTestServer(t)
	_, c := s.json(http.MethodPost, "/v1/clients", s.user, map[string]any{"company_name": "Acme"})
	clientID := c["id"].(string)

	code, gen := s.json(http.MethodPost, "/v1/clients/"+clientID+"/vectors/generate", s.user, map[string]any{
		"algorithm": "EEA3", "test": "MCT", "count": 2, "include_expected": true,
	})
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	qt.Assert(t, qt.Equals[any](gen["records"], float64(4)))
	qt.Assert(t, qt.Equals[any](gen["set"].(map[string]any)["rounds"], float64(10)))
	id := gen["vector_id"].(string)

	code, txt := s.do(http.MethodGet, "/v1/vectors/"+id+"?format=txt", s.user, "", nil)
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	qt.Assert(t, qt.IsTrue(strings.HasPrefix(string(txt), "Algorithm = EEA3\n")))

	code, _ = s.do(http.MethodGet, "/v1/vectors/"+id, s.admin, "", nil)
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	other, err := auth.NewTokens("test-secret", time.Hour).Sign("someone-else", []string{auth.RoleUser})
	qt.Assert(t, qt.IsNil(err))
	code, _ = s.do(http.MethodGet, "/v1/vectors/"+id, other, "", nil)
	qt.Assert(t, qt.Equals(code, http.StatusNotFound))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "response.txt")
	qt.Assert(t, qt.IsNil(err))
	_, err = fw.Write(txt)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(mw.Close()))
	code, raw := s.do(http.MethodPost, "/v1/clients/"+clientID+"/vectors/validate", s.user, mw.FormDataContentType(), &buf)
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	var res map[string]any
	qt.Assert(t, qt.IsNil(json.Unmarshal(raw, &res)))
	qt.Assert(t, qt.Equals[any](res["passed"], float64(4)))
	qt.Assert(t, qt.Equals[any](res["failed"], float64(0)))

	code, _ = s.json(http.MethodPost, "/v1/clients/5b0b5f6e-0000-4000-8000-000000000000/vectors/generate", s.user, map[string]any{"algorithm": "EEA3"})
	qt.Assert(t, qt.Equals(code, http.StatusNotFound))
	code, _ = s.json(http.MethodPost, "/v1/clients/"+clientID+"/vectors/generate", s.user, map[string]any{"algorithm": "EIA3", "test": "MCT"})
	qt.Assert(t, qt.Equals(code, http.StatusBadRequest))

	code, raw = s.do(http.MethodGet, "/v1/logs", s.user, "", nil)
	qt.Assert(t, qt.Equals(code, http.StatusOK))
	var logs []map[string]any
	qt.Assert(t, qt.IsNil(json.Unmarshal(raw, &logs)))
	actions := map[string]bool{}
	for _, l := range logs {
		qt.Assert(t, qt.Equals(l["subject"], "lab-user"))
		actions[l["action"].(string)] = true
	}
	qt.Assert(t, qt.IsTrue(actions["VECTOR_GENERATE"]))
	qt.Assert(t, qt.IsTrue(actions["VECTOR_VALIDATE"]))
}

func TestVectorWorkLimit(t *testing.T) {
	s := newTestServer(t)
	_, c := s.json(http.MethodPost, "/v1/clients", s.user, map[string]any{"company_name": "Acme"})
	clientID := c["id"].(string)

	heavy := "Algorithm = EIA3\n\n[MAC]\nCOUNT = 0\nKEY = " + strings.Repeat("00", 16) +
		"\nCOUNTER = 00000000\nBEARER = 0\nDIRECTION = 0\nLENGTH = 8589934592\nMESSAGE = 00\nMAC = 00000000\n"
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "heavy.txt")
	qt.Assert(t, qt.IsNil(err))
	_, err = io.WriteString(fw, heavy)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(mw.Close()))
	code, _ := s.do(http.MethodPost, "/v1/clients/"+clientID+"/vectors/validate", s.user, mw.FormDataContentType(), &buf)
	qt.Assert(t, qt.Equals(code, http.StatusRequestEntityTooLarge))

	code, _ = s.json(http.MethodPost, "/v1/clients/"+clientID+"/vectors/generate", s.user, map[string]any{
		"algorithm": "KECCAK-P1600", "test": "MCT", "count": 100, "rounds": 100000, "include_expected": true,
	})
	qt.Assert(t, qt.Equals(code, http.StatusRequestEntityTooLarge))
}
