package http

import (
	"net/http"

	"github.com/auth-flow-api/internal/application/account"
	"github.com/auth-flow-api/internal/application/auth"
	"github.com/auth-flow-api/internal/application/media"
	"github.com/auth-flow-api/internal/config"
	"github.com/auth-flow-api/internal/domain"
	"github.com/auth-flow-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/auth-flow-api/internal/infrastructure/jwt"
	"github.com/auth-flow-api/internal/infrastructure/mail"
	s3infra "github.com/auth-flow-api/internal/infrastructure/s3"
	"github.com/auth-flow-api/internal/transport/http/handler"
	appmiddleware "github.com/auth-flow-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo      *dynamo.AccountRepo
	OTPRepo          *dynamo.OTPRepo
	RegistrationRepo *dynamo.RegistrationRepo
	FileRepo         *dynamo.FileRepo
	S3Store          *s3infra.Store
	Mailer           mail.Mailer
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider, deps.AccountRepo)
	adminOnly := appmiddleware.RequireRoles(appmiddleware.Roles(domain.RoleAdmin, domain.RoleSuperAdmin))

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		AccountRepo:      deps.AccountRepo,
		OTPRepo:          deps.OTPRepo,
		RegistrationRepo: deps.RegistrationRepo,
		Tokens:           deps.JWTProvider,
		Mailer:           deps.Mailer,
		OTPDigits:        cfg.OTPDigits,
		OTPExpiry:        cfg.OTPExpiry,
		PasswordHashCost: cfg.PasswordHashCost,
		AppName:          cfg.AppName,
		AppLogo:          cfg.AppLogo,
	})
	accountSvc := account.NewService(deps.AccountRepo)
	mediaSvc := media.NewService(deps.S3Store, deps.FileRepo, deps.AccountRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	accountH := handler.NewAccountHandler(accountSvc)
	fileH := handler.NewFileHandler(mediaSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)

		r.Route("/auth", func(r chi.Router) {
			r.With(sensitiveRL.Limit).Post("/signup", authH.SignUp)
			r.With(sensitiveRL.Limit).Post("/resend-otp", authH.ResendOTP)
			r.With(sensitiveRL.Limit).Post("/verify-otp", authH.VerifyOTP)
			r.With(sensitiveRL.Limit).Post("/login", authH.Login)
			r.With(sensitiveRL.Limit).Post("/forgot-password", authH.ForgotPassword)
			r.With(sensitiveRL.Limit).Post("/verify-reset-otp", authH.VerifyResetOTP)
			r.With(sensitiveRL.Limit).Post("/reset-password", authH.ResetPassword)
		})

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/auth/change-password", authH.ChangePassword)

			r.Get("/accounts/me", accountH.GetMe)
			r.Patch("/accounts/me", accountH.UpdateMe)

			r.Post("/files", fileH.Upload)
			r.Post("/files/profile-image", fileH.UploadProfileImage)
			r.Get("/files/{id}", fileH.Download)
			r.Get("/files/{id}/link", fileH.Link)
			r.Delete("/files/{id}", fileH.Delete)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)

				r.Get("/accounts", accountH.List)
				r.Get("/accounts/{id}", accountH.Get)
				r.Post("/accounts/{id}/block", accountH.Block)
				r.Post("/accounts/{id}/unblock", accountH.Unblock)
				r.Post("/accounts/{id}/review", accountH.MarkInReview)
				r.Delete("/accounts/{id}", accountH.Delete)
			})
		})
	})

	return r
}
