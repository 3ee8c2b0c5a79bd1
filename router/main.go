package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/handlers"
	admin_handlers "github.com/sahilchouksey/unifriend-api/handlers/admin"
	application_handlers "github.com/sahilchouksey/unifriend-api/handlers/application"
	auth_handlers "github.com/sahilchouksey/unifriend-api/handlers/auth"
	newsletter_handlers "github.com/sahilchouksey/unifriend-api/handlers/newsletter"
	registration_handlers "github.com/sahilchouksey/unifriend-api/handlers/registration"
	university_handlers "github.com/sahilchouksey/unifriend-api/handlers/university"
	user_handlers "github.com/sahilchouksey/unifriend-api/handlers/user"
	"github.com/sahilchouksey/unifriend-api/services"
	"github.com/sahilchouksey/unifriend-api/utils"
	"github.com/sahilchouksey/unifriend-api/utils/auth"
	"github.com/sahilchouksey/unifriend-api/utils/middleware"
	"github.com/sirupsen/logrus"
)

// Dependencies is everything the route table needs
type Dependencies struct {
	Store    database.Storage
	Verifier auth.TokenVerifier
	Logger   logrus.FieldLogger
	Metrics  *middleware.Metrics // nil disables /metrics

	Environment       string
	AllowedOrigins    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitStorage  fiber.Storage
	AccessLog         bool
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	store := deps.Store

	// Services
	resolver := services.NewRoleResolver(store)
	authService := services.NewAuthService(deps.Verifier, store, resolver)
	profileService := services.NewProfileService(store)
	universityService := services.NewUniversityService(store)
	applicationService := services.NewApplicationService(store, store)
	leadService := services.NewLeadService(store)
	adminService := services.NewAdminService(store)

	// Handlers
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := auth_handlers.NewAuthHandler(authService)
	userHandler := user_handlers.NewUserHandler(profileService)
	universityHandler := university_handlers.NewUniversityHandler(universityService)
	applicationHandler := application_handlers.NewApplicationHandler(applicationService)
	registrationHandler := registration_handlers.NewRegistrationHandler(leadService)
	newsletterHandler := newsletter_handlers.NewNewsletterHandler(leadService)
	adminHandler := admin_handlers.NewAdminHandler(adminService)

	if deps.Metrics != nil {
		app.Use(deps.Metrics.Handler())
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    deps.AllowedOrigins,
		RateLimitRequests: deps.RateLimitRequests,
		RateLimitWindow:   deps.RateLimitWindow,
		RateLimitStorage:  deps.RateLimitStorage,
		AccessLog:         deps.AccessLog,
		Logger:            deps.Logger,
	})

	// Health check endpoint (public)
	app.Get("/health", utils.MakeHTTPHandleFunc(handlers.HealthCheck(deps.Environment), store))
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Endpoint())
	}

	api := app.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/verify", authHandler.VerifyToken)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.GetCurrentUser)

	// Profile routes (protected). /me must be registered before /:userId.
	users := api.Group("/users", authMiddleware.Required())
	users.Get("/me", userHandler.GetCurrentUserProfile)
	users.Put("/me", userHandler.UpdateCurrentUserProfile)
	users.Get("/:userId", userHandler.GetUserProfile)
	users.Put("/:userId", userHandler.UpdateUserProfile)

	// Universities routes
	universities := api.Group("/universities")
	universities.Get("/", universityHandler.ListUniversities)                                                                       // Public: List universities
	universities.Get("/:id", universityHandler.GetUniversity)                                                                       // Public: Get university by ID
	universities.Post("/", authMiddleware.Required(), authMiddleware.RequireGlobalAdmin(), universityHandler.CreateUniversity)      // Admin only
	universities.Put("/:id", authMiddleware.Required(), universityHandler.UpdateUniversity)                                         // Admin or matching university admin
	universities.Delete("/:id", authMiddleware.Required(), authMiddleware.RequireGlobalAdmin(), universityHandler.DeleteUniversity) // Admin only

	// Applications routes (protected). Static segments come before /:id.
	applications := api.Group("/applications", authMiddleware.Required())
	applications.Get("/", applicationHandler.ListApplications)
	applications.Post("/", applicationHandler.CreateApplication)
	applications.Get("/managed", authMiddleware.RequireUniversityAdmin(), applicationHandler.ListManagedApplications)
	applications.Get("/university/:universityId", applicationHandler.ListUniversityApplications)
	applications.Get("/:id", applicationHandler.GetApplication)
	applications.Put("/:id/status", applicationHandler.UpdateApplicationStatus)

	// Lead capture
	registrations := api.Group("/registrations")
	registrations.Post("/", registrationHandler.CreateRegistration)                                                               // Public
	registrations.Get("/", authMiddleware.Required(), authMiddleware.RequireGlobalAdmin(), registrationHandler.ListRegistrations) // Admin only

	newsletter := api.Group("/newsletter")
	newsletter.Post("/subscribe", newsletterHandler.Subscribe)                                                                            // Public
	newsletter.Get("/subscriptions", authMiddleware.Required(), authMiddleware.RequireGlobalAdmin(), newsletterHandler.ListSubscriptions) // Admin only

	// Role management (admin only)
	admin := api.Group("/admin", authMiddleware.Required(), authMiddleware.RequireGlobalAdmin())
	admin.Post("/roles/admin", adminHandler.GrantAdminRole)
	admin.Delete("/roles/admin/:userId", adminHandler.RevokeAdminRole)
	admin.Get("/roles/admin", adminHandler.GetAdminUsers)
	admin.Post("/roles/university", adminHandler.GrantUniversityRole)
	admin.Delete("/roles/university/:userId", adminHandler.RevokeUniversityRole)
	admin.Get("/roles/university", adminHandler.GetUniversityAdmins)
}
