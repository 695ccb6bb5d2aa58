package http

import (
	"net/http"

	"github.com/email-verify-api/internal/application/verification"
	"github.com/email-verify-api/internal/config"
	"github.com/email-verify-api/internal/transport/http/handler"
	appmiddleware "github.com/email-verify-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(appmiddleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	svc := verification.NewService(verification.ServiceDeps{
		Directory: deps.Directory,
		Codes:     deps.Codes,
		Mailer:    deps.Mailer,
	})

	verifH := handler.NewVerificationHandler(svc)
	openapiH := handler.NewOpenAPIHandler(cfg.PublicBaseURL)
	healthH := handler.NewHealthHandler()

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/openapi.json", openapiH.Get)
	r.Get("/health", healthH.Ping)

	// ── Bearer-guarded routes ────────────────────────────────────────────
	r.Route("/api", func(r chi.Router) {
		r.Use(appmiddleware.Auth(cfg.APISecretKey))

		r.Post("/validar-email", verifH.ValidateEmail)
		r.Post("/enviar-codigo-verificacao", verifH.SendCode)
		r.Post("/verificar-codigo", verifH.VerifyCode)
	})

	return r
}
