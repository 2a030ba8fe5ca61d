package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"creativerse-backend/infrastructure/di"
	"creativerse-backend/interfaces/http/rest/handlers"
	"creativerse-backend/interfaces/http/rest/middleware"
	pkgerrors "creativerse-backend/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	errorHandler := pkgerrors.NewErrorHandler(rt.logger, rt.container.Config.IsDevelopment())
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.container.Config.EnableMetrics {
		router.Use(rt.container.Metrics.Middleware)
	}

	if rt.container.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:4200", "http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health and observability
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.container.Config.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", rt.container.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		// Project endpoints
		r.Route("/projects", func(r chi.Router) {
			projectHandler := handlers.NewProjectHandler(rt.container.Projects, rt.logger)
			r.Get("/", projectHandler.ListProjects)
			r.Post("/", projectHandler.CreateProject)
			r.Get("/selection", projectHandler.GetSelection)
			r.Put("/selection", projectHandler.SetSelection)
			r.Get("/{projectID}", projectHandler.GetProject)
			r.Put("/{projectID}", projectHandler.UpdateProject)
			r.Delete("/{projectID}", projectHandler.DeleteProject)
		})

		// AI persona endpoints
		r.Route("/ai", func(r chi.Router) {
			aiHandler := handlers.NewAIHandler(rt.container.Personas, rt.logger)
			r.Get("/personas", aiHandler.ListPersonas)
			r.Get("/personas/{personaID}", aiHandler.GetPersona)
			r.Get("/messages/{personaID}", aiHandler.GetMessages)
			r.Post("/messages", aiHandler.PostMessage)
		})

		// Universe graph endpoints
		r.Route("/universe", func(r chi.Router) {
			universeHandler := handlers.NewUniverseHandler(rt.container.Universe, rt.logger)
			r.Get("/nodes", universeHandler.ListNodes)
			r.Post("/nodes", universeHandler.CreateNode)
			r.Get("/nodes/{nodeID}", universeHandler.GetNode)
			r.Patch("/nodes/{nodeID}", universeHandler.UpdateNode)
			r.Delete("/nodes/{nodeID}", universeHandler.DeleteNode)
			r.Get("/fusion-nodes", universeHandler.ListFusionNodes)
			r.Post("/connections", universeHandler.Connect)
			r.Delete("/connections", universeHandler.Disconnect)
			r.Get("/selection", universeHandler.GetSelection)
			r.Put("/selection", universeHandler.SetSelection)
		})

		// Fusion pipeline endpoints
		fusionHandler := handlers.NewFusionHandler(rt.container.Fusion, rt.logger)
		r.Get("/reality-data", fusionHandler.ListCatalog)
		r.Get("/reality-data/{dataID}", fusionHandler.GetCatalogItem)
		r.Route("/fusion", func(r chi.Router) {
			r.Post("/", fusionHandler.PerformFusion)
			r.Get("/history", fusionHandler.GetHistory)
			r.Get("/recent", fusionHandler.GetRecent)
			r.Get("/compatibility", fusionHandler.GetCompatibility)
			r.Get("/selection", fusionHandler.GetSelection)
			r.Post("/selection", fusionHandler.SelectItem)
			r.Delete("/selection", fusionHandler.ClearSelection)
			r.Delete("/selection/{dataID}", fusionHandler.DeselectItem)
		})

		// Stats and notifications
		statsHandler := handlers.NewStatsHandler(rt.container.Stats, rt.container.Notifications, rt.logger)
		r.Get("/stats", statsHandler.GetStats)
		r.Get("/notifications", statsHandler.ListNotifications)

		// Client preferences
		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(rt.container.Snapshots, rt.logger)
			r.Get("/", settingsHandler.ListSettings)
			r.Get("/{key}", settingsHandler.GetSetting)
			r.Put("/{key}", settingsHandler.PutSetting)
			r.Delete("/{key}", settingsHandler.DeleteSetting)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests. The process is ready
// once the snapshot store answers.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if _, err := rt.container.Snapshots.Keys(req.Context()); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
