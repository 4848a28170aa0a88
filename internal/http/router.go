package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/wardrobe-api/internal/auth"
	"github.com/redmonkez12/wardrobe-api/internal/closet"
	"github.com/redmonkez12/wardrobe-api/internal/config"
	"github.com/redmonkez12/wardrobe-api/internal/gate"
	"github.com/redmonkez12/wardrobe-api/internal/httputil"
	"github.com/redmonkez12/wardrobe-api/internal/logging"
	"github.com/redmonkez12/wardrobe-api/internal/onboarding"
	"github.com/redmonkez12/wardrobe-api/internal/vision"
)

const (
	analyzeClothingPath = "/analyze-clothing"
	processImagePath    = "/process-clothing-image"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Auth           *auth.Handler
	AuthMiddleware *auth.Middleware
	Gate           *gate.Handler
	Onboarding     *onboarding.Handler
	Closet         *closet.Handler
	Vision         *vision.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS must run first. The AI endpoints are open to any origin.
	r.Use(CORS(cfg.Server.TrustedOrigins, analyzeClothingPath, processImagePath))

	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger, "/health"))
	r.Use(middleware.Compress(5))
	r.Use(h.AuthMiddleware.OptionalAuth)

	r.Get("/health", handleHealth)

	// Swagger UI is only mounted in development
	if cfg.Server.IsDevelopment() {
		logger.Info("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Get("/gate", h.Gate.Check)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/refresh", h.Auth.Refresh)
		r.Post("/logout", h.Auth.Logout)
		r.With(h.AuthMiddleware.RequireAuth).Post("/logout-all", h.Auth.LogoutAll)
		r.Get("/session", h.Auth.Session)
		r.Get("/verify-email", h.Auth.VerifyEmail)
		r.Post("/forgot-password", h.Auth.ForgotPassword)
		r.Post("/reset-password", h.Auth.ResetPassword)
		r.Post("/resend-verification", h.Auth.ResendVerificationEmail)
	})

	r.Route("/onboarding", func(r chi.Router) {
		r.Use(h.Gate.Require(gate.RequireVerified))
		r.Get("/status", h.Onboarding.Status)
		r.Post("/complete", h.Onboarding.Complete)
	})

	r.Route("/closet", func(r chi.Router) {
		r.Use(h.Gate.Require(gate.RequireOnboarded))
		r.Get("/items", h.Closet.List)
		r.Post("/items", h.Closet.Create)
		r.Delete("/items/{id}", h.Closet.Delete)
	})

	r.Post(analyzeClothingPath, h.Vision.AnalyzeClothing)
	r.Options(analyzeClothingPath, vision.Preflight)
	r.Post(processImagePath, h.Vision.ProcessClothingImage)
	r.Options(processImagePath, vision.Preflight)

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
