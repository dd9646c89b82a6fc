package server

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/SUSHIbit/ProjectRara/internal/config"
	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/SUSHIbit/ProjectRara/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	health handler.HealthHandler,
	auth handler.AuthHandler,
	customers handler.CustomerHandler,
	services handler.ServiceHandler,
	attendance handler.AttendanceHandler,
	tx handler.TransactionHandler,
	sales handler.SalesHandler,
	members handler.MemberHandler,
	benefits handler.BenefitHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	auth.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret))
		auth.RegisterProtectedRoutes(pr)

		// staff self-service (employee/manager)
		pr.Group(func(sr chi.Router) {
			sr.Use(RequirePermission(domain.PermAttendanceSelf))
			attendance.RegisterRoutes(sr)
		})
		// point of sale (employee)
		pr.Group(func(er chi.Router) {
			er.Use(RequirePermission(domain.PermCustomerLookup))
			customers.RegisterRoutes(er)
		})
		pr.Group(func(er chi.Router) {
			er.Use(RequirePermission(domain.PermServiceWrite))
			services.RegisterRoutes(er)
		})
		pr.Group(func(er chi.Router) {
			er.Use(RequirePermission(domain.PermBillingWrite))
			tx.RegisterRoutes(er)
		})
		pr.Group(func(er chi.Router) {
			er.Use(RequirePermission(domain.PermReceiptRead))
			tx.RegisterReceiptRoutes(er)
		})
		// management (manager)
		pr.Group(func(mr chi.Router) {
			mr.Use(RequirePermission(domain.PermSalesRead))
			sales.RegisterRoutes(mr)
		})
		pr.Group(func(mr chi.Router) {
			mr.Use(RequirePermission(domain.PermMemberAdmin))
			members.RegisterRoutes(mr)
		})
		pr.Group(func(mr chi.Router) {
			mr.Use(RequirePermission(domain.PermBenefitAdmin))
			benefits.RegisterRoutes(mr)
		})
		pr.Group(func(mr chi.Router) {
			mr.Use(RequirePermission(domain.PermAttendanceAdmin))
			attendance.RegisterAdminRoutes(mr)
		})
	})

	return r
}
