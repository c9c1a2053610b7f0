package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"cryptomobile/internal/auth"
	"cryptomobile/internal/httpserver/handlers"
	"cryptomobile/internal/store"
	"cryptomobile/internal/suite"
)

type Deps struct {
	Store     store.Store
	Engine    suite.Engine
	Tokens    auth.Tokens
	Logger    *zap.SugaredLogger
	MCTRounds int
}

func NewRouter(d Deps) http.Handler {
	st, lg, eng := d.Store, d.Logger, d.Engine
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/v1/algorithms", handlers.ListAlgorithms(st, lg))
	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(d.Tokens))
		protected.Post("/v1/cipher/{alg}", handlers.Cipher(eng, st, lg))
		protected.Post("/v1/mac/{alg}", handlers.MAC(eng, st, lg))
		protected.Post("/v1/comp128/{variant}", handlers.COMP128(eng, st, lg))
		protected.Post("/v1/keccak/permute", handlers.KeccakPermute(eng, st, lg))

		protected.Post("/v1/clients", handlers.CreateClient(st, lg))
		protected.Get("/v1/clients", handlers.ListClients(st, lg))
		protected.Patch("/v1/clients/{id}", handlers.UpdateClient(st, lg))
		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(auth.RoleAdmin))
			admin.Delete("/v1/clients/{id}", handlers.DeleteClient(st, lg))
		})

		protected.Post("/v1/clients/{client_id}/vectors/generate", handlers.GenerateVector(eng, st, lg, d.MCTRounds))
		protected.Post("/v1/clients/{client_id}/vectors/validate", handlers.ValidateVectors(eng, st, lg))
		protected.Get("/v1/vectors/{id}", handlers.GetVector(st, lg))
		protected.Get("/v1/logs", handlers.MyLogs(st, lg))
	})
	return r
}
