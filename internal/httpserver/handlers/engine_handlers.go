package handlers

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cryptomobile/internal/bits"
	"cryptomobile/internal/comp128"
	"cryptomobile/internal/store"
	"cryptomobile/internal/suite"
	"cryptomobile/internal/util"
)

type FrameReq struct {
	KeyHex    string `json:"key_hex"`
	Count     uint32 `json:"count"`
	Bearer    uint32 `json:"bearer"`
	Direction uint32 `json:"direction"`
	Fresh     uint32 `json:"fresh"`
	// BitLength defaults to every bit of DataHex.
	BitLength *int   `json:"bit_length,omitempty"`
	DataHex   string `json:"data_hex"`
}

func (q FrameReq) decode() (suite.Params, bits.Message, error) {
	key, err := util.DecodeHex(q.KeyHex)
	if err != nil {
		return suite.Params{}, bits.Message{}, fmt.Errorf("key_hex: %w", errBadHex)
	}
	data, err := util.DecodeHex(q.DataHex)
	if err != nil {
		return suite.Params{}, bits.Message{}, fmt.Errorf("data_hex: %w", errBadHex)
	}
	msg := bits.FromBytes(data)
	if q.BitLength != nil {
		msg.Bits = *q.BitLength
	}
	p := suite.Params{Key: key, Count: q.Count, Bearer: q.Bearer, Direction: q.Direction, Fresh: q.Fresh}
	return p, msg, nil
}

// POST /v1/cipher/{alg}
func Cipher(eng suite.Engine, st store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alg := strings.ToUpper(chi.URLParam(r, "alg"))
		var req FrameReq
		if !decodeBody(w, r, &req) {
			return
		}
		p, msg, err := req.decode()
		if err != nil {
			respondError(w, lg, err)
			return
		}
		out, err := eng.Cipher(alg, p, msg)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		lg.Debugw("cipher", "alg", alg, "bits", msg.Bits)
		audit(r, st, lg, nil, "CIPHER", map[string]any{"algorithm": alg, "bits": msg.Bits})
		respondJSON(w, map[string]any{"algorithm": alg, "bit_length": msg.Bits, "output_hex": hex.EncodeToString(out)})
	}
}

// POST /v1/mac/{alg}
func MAC(eng suite.Engine, st store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alg := strings.ToUpper(chi.URLParam(r, "alg"))
		var req FrameReq
		if !decodeBody(w, r, &req) {
			return
		}
		p, msg, err := req.decode()
		if err != nil {
			respondError(w, lg, err)
			return
		}
		mac, err := eng.MAC(alg, p, msg)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		audit(r, st, lg, nil, "MAC", map[string]any{"algorithm": alg, "bits": msg.Bits})
		respondJSON(w, map[string]any{"algorithm": alg, "bit_length": msg.Bits, "mac_hex": hex.EncodeToString(mac[:])})
	}
}

// POST /v1/comp128/{variant}
func COMP128(eng suite.Engine, st store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := comp128.ParseVariant(chi.URLParam(r, "variant"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		var req struct {
			KiHex   string `json:"ki_hex"`
			RandHex string `json:"rand_hex"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		ki, err1 := util.DecodeHex(req.KiHex)
		rnd, err2 := util.DecodeHex(req.RandHex)
		if err1 != nil || err2 != nil {
			respondError(w, lg, fmt.Errorf("ki_hex/rand_hex: %w", errBadHex))
			return
		}
		sres, kc, err := eng.Auth(ki, rnd, v)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		audit(r, st, lg, nil, "COMP128", map[string]any{"variant": v.String()})
		respondJSON(w, map[string]any{"variant": v.String(), "sres_hex": hex.EncodeToString(sres[:]), "kc_hex": hex.EncodeToString(kc[:])})
	}
}

// POST /v1/keccak/permute
func KeccakPermute(eng suite.Engine, st store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			StateHex string `json:"state_hex"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		in, err := util.DecodeHex(req.StateHex)
		if err != nil {
			respondError(w, lg, fmt.Errorf("state_hex: %w", errBadHex))
			return
		}
		out, err := eng.Permute(in)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		audit(r, st, lg, nil, "KECCAK", map[string]any{"bytes": len(in)})
		respondJSON(w, map[string]any{"state_hex": hex.EncodeToString(out)})
	}
}
