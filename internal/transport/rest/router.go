package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/ntsfreight/client-portal/internal/accesscontrol"
	"github.com/ntsfreight/client-portal/internal/auth"
	"github.com/ntsfreight/client-portal/internal/company"
	"github.com/ntsfreight/client-portal/internal/notification"
	"github.com/ntsfreight/client-portal/internal/order"
	"github.com/ntsfreight/client-portal/internal/quote"
	"github.com/ntsfreight/client-portal/internal/transport/middleware"
	"github.com/ntsfreight/client-portal/internal/transport/swagger"
	"github.com/ntsfreight/client-portal/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Company      *company.Handler
	Quote        *quote.Handler
	Order        *order.Handler
	Notification *notification.Handler
}

var staffRoles = []accesscontrol.Role{
	accesscontrol.RoleSalesRep,
	accesscontrol.RoleManager,
	accesscontrol.RoleAdmin,
	accesscontrol.RoleSuperAdmin,
}

var adminRoles = []accesscontrol.Role{
	accesscontrol.RoleAdmin,
	accesscontrol.RoleSuperAdmin,
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, guard *accesscontrol.Guard, h Handlers, writeLimit *accesscontrol.RateLimitRule, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	companyParam := func(param string) accesscontrol.CompanyExtractor {
		return func(r *http.Request) []string {
			if id := chi.URLParam(r, param); id != "" {
				return []string{id}
			}
			return nil
		}
	}

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes run before any session exists, so they stay outside
		// the guard.
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		// Protected routes
		r.Group(func(pr chi.Router) {
			if h.User != nil {
				pr.Get("/users/me", guard.Wrap(accesscontrol.GuardConfig{
					AllowedMethods: []string{http.MethodGet},
				}, h.User.CurrentUser))

				pr.Get("/users", guard.Wrap(accesscontrol.GuardConfig{
					AllowedMethods:      []string{http.MethodGet},
					AllowedRoles:        adminRoles,
					RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermViewUsers},
				}, h.User.ListUsers))

				pr.Post("/users/{id}/active", guard.Wrap(accesscontrol.GuardConfig{
					AllowedMethods: []string{http.MethodPost},
					AllowedRoles:   adminRoles,
					RequiredPermissions: []accesscontrol.Permission{
						accesscontrol.PermEditUsers,
					},
				}, h.User.SetUserActive))
			}

			if h.Company != nil {
				pr.Route("/companies", func(cr chi.Router) {
					cr.Get("/", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodGet},
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermViewCompanies},
					}, h.Company.ListCompanies))

					cr.Post("/", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodPost},
						AllowedRoles:        adminRoles,
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermCreateCompanies},
					}, h.Company.CreateCompany))

					cr.Post("/assignments", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods: []string{http.MethodPost},
						AllowedRoles:   adminRoles,
						RequiredPermissions: []accesscontrol.Permission{
							accesscontrol.PermEditCompanies,
							accesscontrol.PermEditUsers,
						},
						RequireAllPermissions: true,
					}, h.Company.AssignStaff))

					cr.Get("/{id}", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodGet},
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermViewCompanies},
						CompanyIDs:          companyParam("id"),
					}, h.Company.GetCompany))

					cr.Patch("/{id}", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodPatch},
						AllowedRoles:        staffRoles,
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermEditCompanies},
						CompanyIDs:          companyParam("id"),
					}, h.Company.UpdateCompany))

					cr.Delete("/{id}", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodDelete},
						AllowedRoles:        adminRoles,
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermDeleteCompanies},
					}, h.Company.DeleteCompany))

					cr.Delete("/{id}/assignments/{staffID}", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods: []string{http.MethodDelete},
						AllowedRoles:   adminRoles,
						RequiredPermissions: []accesscontrol.Permission{
							accesscontrol.PermEditCompanies,
							accesscontrol.PermEditUsers,
						},
						RequireAllPermissions: true,
					}, h.Company.UnassignStaff))
				})
			}

			if h.Quote != nil {
				pr.Route("/quotes", func(qr chi.Router) {
					qr.Post("/", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodPost},
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermCreateQuotes},
						RateLimit:           writeLimit,
					}, h.Quote.SubmitQuote))

					qr.Get("/", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodGet},
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermViewQuotes},
					}, h.Quote.ListQuotes))

					qr.Get("/{id}", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodGet},
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermViewQuotes},
					}, h.Quote.GetQuote))

					qr.Post("/{id}/price", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodPost},
						AllowedRoles:        staffRoles,
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermEditQuotes},
						RateLimit:           writeLimit,
					}, h.Quote.PriceQuote))

					qr.Post("/{id}/convert", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods: []string{http.MethodPost},
						RequiredPermissions: []accesscontrol.Permission{
							accesscontrol.PermCreateOrders,
						},
						RateLimit: writeLimit,
					}, h.Quote.ConvertQuote))

					qr.Post("/{id}/decline", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodPost},
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermViewQuotes},
					}, h.Quote.DeclineQuote))
				})
			}

			if h.Order != nil {
				pr.Route("/orders", func(or chi.Router) {
					or.Get("/", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodGet},
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermViewOrders},
					}, h.Order.ListOrders))

					or.Get("/{id}", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodGet},
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermViewOrders},
					}, h.Order.GetOrder))

					or.Post("/{id}/status", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods:      []string{http.MethodPost},
						AllowedRoles:        staffRoles,
						RequiredPermissions: []accesscontrol.Permission{accesscontrol.PermEditOrders},
						RateLimit:           writeLimit,
					}, h.Order.UpdateOrderStatus))
				})
			}

			if h.Notification != nil {
				pr.Route("/notifications", func(nr chi.Router) {
					nr.Get("/", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods: []string{http.MethodGet},
					}, h.Notification.ListNotifications))

					nr.Get("/unread-count", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods: []string{http.MethodGet},
					}, h.Notification.UnreadCount))

					nr.Post("/{id}/read", guard.Wrap(accesscontrol.GuardConfig{
						AllowedMethods: []string{http.MethodPost},
					}, h.Notification.MarkRead))
				})
			}
		})
	})
}
