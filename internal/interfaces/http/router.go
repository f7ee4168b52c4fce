package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/logger"
	"golang.org/x/time/rate"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC   *auth.AuthUseCase
	LeadUC   *usecase.LeadUseCase
	DealUC   *usecase.DealUseCase
	RoleRepo repository.RoleRepository
	Sessions *SessionManager
	Log      *logger.Logger
}

// Router registra las rutas de la API. El SessionMiddleware corre para TODO
// request (adjunta identidad si hay sesión válida); los guards por ruta deciden
// qué exige cada endpoint.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(SessionMiddleware(deps.Sessions, deps.AuthUC, deps.Log))

	api := app.Group("/api")

	// Auth (público). Login y register con rate limit por IP: 1 req/s, burst 5.
	credLimiter := NewRateLimiter(rate.Limit(1), 5)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Sessions, deps.Log)
	authGroup.Post("/register", credLimiter.Middleware(), authHandler.Register)
	authGroup.Post("/login", credLimiter.Middleware(), authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", RequireAuth(), authHandler.Me)

	// Rutas protegidas (requieren sesión activa)
	protected := api.Group("/", RequireAuth())

	// Leads: lectura para cualquier autenticado; mutaciones para admin/sales
	leads := protected.Group("/leads")
	leadHandler := NewLeadHandler(deps.LeadUC)
	leads.Get("/", leadHandler.List)
	leads.Get("/:id", leadHandler.GetByID)
	leads.Post("/", RequirePermission(deps.RoleRepo, "admin", "sales"), leadHandler.Create)
	leads.Put("/:id", RequirePermission(deps.RoleRepo, "admin", "sales"), leadHandler.Update)
	leads.Delete("/:id", RequirePermission(deps.RoleRepo, "admin"), leadHandler.Delete)

	// Deals: misma política que leads
	deals := protected.Group("/deals")
	dealHandler := NewDealHandler(deps.DealUC)
	deals.Get("/", dealHandler.List)
	deals.Get("/:id", dealHandler.GetByID)
	deals.Post("/", RequirePermission(deps.RoleRepo, "admin", "sales"), dealHandler.Create)
	deals.Put("/:id", RequirePermission(deps.RoleRepo, "admin", "sales"), dealHandler.Update)
	deals.Delete("/:id", RequirePermission(deps.RoleRepo, "admin"), dealHandler.Delete)
}
