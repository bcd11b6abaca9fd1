package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/CAPRI-CORP/desinfec-backend/internal/catalog"
	"github.com/CAPRI-CORP/desinfec-backend/internal/scheduling"
)

type RouterConfig struct {
	Scheduling *scheduling.Service
	Catalog    *catalog.Manager
	Logger     *slog.Logger
	PgPool     *pgxpool.Pool
	Redis      *redis.Client
	Env        string
	Version    string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Scheduling endpoints
	r.Route("/schedulings", func(r chi.Router) {
		r.Post("/", createSchedulingHandler(cfg.Scheduling))
		r.Get("/", listSchedulingsHandler(cfg.Scheduling))
		r.Get("/{id}", getSchedulingHandler(cfg.Scheduling))
		r.Put("/{id}", updateSchedulingHandler(cfg.Scheduling))
		r.Delete("/{id}", deleteSchedulingHandler(cfg.Scheduling))
	})

	// Catalog endpoints
	r.Route("/categories", func(r chi.Router) {
		r.Post("/", createCategoryHandler(cfg.Catalog))
		r.Get("/", listCategoriesHandler(cfg.Catalog))
		r.Get("/{id}", getCategoryHandler(cfg.Catalog))
		r.Put("/{id}", updateCategoryHandler(cfg.Catalog))
		r.Delete("/{id}", deleteCategoryHandler(cfg.Catalog))
	})
	r.Route("/customers", func(r chi.Router) {
		r.Post("/", createCustomerHandler(cfg.Catalog))
		r.Get("/", listCustomersHandler(cfg.Catalog))
		r.Get("/{id}", getCustomerHandler(cfg.Catalog))
		r.Put("/{id}", updateCustomerHandler(cfg.Catalog))
		r.Delete("/{id}", deleteCustomerHandler(cfg.Catalog))
	})
	r.Route("/staff", func(r chi.Router) {
		r.Post("/", createStaffUserHandler(cfg.Catalog))
		r.Get("/", listStaffUsersHandler(cfg.Catalog))
		r.Get("/{id}", getStaffUserHandler(cfg.Catalog))
		r.Put("/{id}", updateStaffUserHandler(cfg.Catalog))
		r.Delete("/{id}", deleteStaffUserHandler(cfg.Catalog))
	})
	r.Route("/services", func(r chi.Router) {
		r.Post("/", createServiceHandler(cfg.Catalog))
		r.Get("/", listServicesHandler(cfg.Catalog))
		r.Get("/{id}", getServiceHandler(cfg.Catalog))
		r.Put("/{id}", updateServiceHandler(cfg.Catalog))
		r.Delete("/{id}", deleteServiceHandler(cfg.Catalog))
	})
	r.Route("/statuses", func(r chi.Router) {
		r.Post("/", createStatusHandler(cfg.Catalog))
		r.Get("/", listStatusesHandler(cfg.Catalog))
		r.Get("/{id}", getStatusHandler(cfg.Catalog))
		r.Put("/{id}", updateStatusHandler(cfg.Catalog))
		r.Delete("/{id}", deleteStatusHandler(cfg.Catalog))
	})

	return r
}
