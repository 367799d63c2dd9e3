package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/valueaim/api/internal/app"
	"github.com/valueaim/api/internal/handler"
	"github.com/valueaim/api/internal/middleware"
	"github.com/valueaim/api/internal/model"
)

func SetupRoutes(a *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(a.DB)
	auth := handler.NewAuthHandler(a.AuthService, a.OAuthService)
	otp := handler.NewOTPHandler(a.OTPService, a.EmailService)
	user := handler.NewUserHandler(a.UserService)
	company := handler.NewCompanyHandler(a.CompanyService)
	offering := handler.NewOfferingHandler(a.OfferingService)
	contact := handler.NewContactHandler(a.ContactService)
	suggestion := handler.NewSuggestionHandler(a.SuggestionService, a.Cfg.MaxAttachmentSize)

	// Middleware
	requireAuth := middleware.RequireAuth(a.AuthService, a.UserService)
	optionalAuth := middleware.OptionalAuth(a.AuthService, a.UserService)
	requireAdmin := middleware.RequireRole(model.RoleAdmin)
	rateLimiter := middleware.NewRateLimiter(rate.Limit(a.Cfg.AuthRateLimit), a.Cfg.AuthRateBurst)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.Cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.Check)

		r.Route("/auth", func(r chi.Router) {
			// Credential endpoints are rate limited per IP
			r.Group(func(r chi.Router) {
				r.Use(rateLimiter.Limit)
				r.Post("/register", auth.Register)
				r.Post("/login", auth.Login)
				r.Post("/google", auth.GoogleExchange)
				r.Post("/otp/send", otp.Send)
				r.Post("/otp/verify", otp.Verify)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", auth.Me)
				r.Put("/onboarding", auth.UpdateOnboarding)
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/profile", user.Profile)
			r.Put("/profile", user.UpdateProfile)
			r.Put("/password", user.ChangePassword)
			r.Put("/plan", user.UpdatePlan)
		})

		r.Route("/company", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", company.Get)
			r.Post("/", company.Save)
			r.Put("/", company.Save)
			r.Delete("/", company.Delete)
		})

		r.Route("/service", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", offering.List)
			r.Post("/", offering.Create)
			r.Post("/bulk", offering.BulkReplace)
			r.Put("/bulk", offering.BulkReplace)
			r.Get("/{id}", offering.Get)
			r.Put("/{id}", offering.Update)
			r.Delete("/{id}", offering.Delete)
		})

		r.Route("/contact", func(r chi.Router) {
			// Public form; a valid token attributes the message
			r.With(optionalAuth).Post("/", contact.Submit)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)
				r.Get("/", contact.List)
				r.Get("/{id}", contact.Get)
				r.Put("/{id}", contact.UpdateStatus)
				r.Delete("/{id}", contact.Delete)
			})
		})

		r.Route("/suggestions", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", suggestion.Submit)
			r.Get("/", suggestion.ListMine)
			r.With(requireAdmin).Get("/all", suggestion.ListAll)
			r.Get("/{id}", suggestion.Get)
			r.Delete("/{id}", suggestion.Delete)
			r.With(requireAdmin).Put("/{id}", suggestion.UpdateStatus)
		})
	})

	return r
}
