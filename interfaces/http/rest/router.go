package rest

import (
	"net/http"

	"clickstream-backend/application/ports"
	"clickstream-backend/application/services"
	"clickstream-backend/infrastructure/config"
	"clickstream-backend/interfaces/http/rest/handlers"
	"clickstream-backend/interfaces/http/rest/middleware"
	"clickstream-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	projects     *services.ProjectService
	apps         *services.ApplicationService
	pipelines    *services.PipelineService
	plugins      *services.PluginService
	dictionaries *services.DictionaryService
	dedupe       ports.DedupeStore
	cfg          *config.Config
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	projects *services.ProjectService,
	apps *services.ApplicationService,
	pipelines *services.PipelineService,
	plugins *services.PluginService,
	dictionaries *services.DictionaryService,
	dedupe ports.DedupeStore,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		projects:     projects,
		apps:         apps,
		pipelines:    pipelines,
		plugins:      plugins,
		dictionaries: dictionaries,
		dedupe:       dedupe,
		cfg:          cfg,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableTracing {
		router.Use(middleware.Tracing(observability.NewTracer("clickstream-backend")))
	}

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", middleware.RequestIDHeader},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.cfg.JWTSecret, rt.cfg.JWTIssuer))
		r.Use(middleware.Dedupe(rt.dedupe, rt.logger))

		r.Route("/projects", func(r chi.Router) {
			projectHandler := handlers.NewProjectHandler(rt.projects, rt.logger)
			r.Post("/", projectHandler.CreateProject)
			r.Get("/", projectHandler.ListProjects)
			r.Get("/{projectID}", projectHandler.GetProject)
			r.Put("/{projectID}", projectHandler.UpdateProject)
			r.Delete("/{projectID}", projectHandler.DeleteProject)

			r.Route("/{projectID}/applications", func(r chi.Router) {
				appHandler := handlers.NewApplicationHandler(rt.apps, rt.logger)
				r.Post("/", appHandler.CreateApplication)
				r.Get("/", appHandler.ListApplications)
				r.Get("/{appID}", appHandler.GetApplication)
				r.Delete("/{appID}", appHandler.DeleteApplication)
			})

			r.Route("/{projectID}/pipelines", func(r chi.Router) {
				pipelineHandler := handlers.NewPipelineHandler(rt.pipelines, rt.logger)
				r.Post("/", pipelineHandler.CreatePipeline)
				r.Get("/", pipelineHandler.ListPipelines)
				r.Get("/{pipelineID}", pipelineHandler.GetPipeline)
				r.Put("/{pipelineID}", pipelineHandler.UpdatePipeline)
				r.Delete("/{pipelineID}", pipelineHandler.DeletePipeline)
				r.Get("/{pipelineID}/versions/{version}", pipelineHandler.GetPipelineVersion)
			})
		})

		r.Route("/plugins", func(r chi.Router) {
			pluginHandler := handlers.NewPluginHandler(rt.plugins, rt.logger)
			r.Post("/", pluginHandler.CreatePlugin)
			r.Get("/", pluginHandler.ListPlugins)
			r.Get("/{pluginID}", pluginHandler.GetPlugin)
			r.Put("/{pluginID}", pluginHandler.UpdatePlugin)
			r.Delete("/{pluginID}", pluginHandler.DeletePlugin)
		})

		r.Route("/dictionaries", func(r chi.Router) {
			dictionaryHandler := handlers.NewDictionaryHandler(rt.dictionaries, rt.logger)
			r.Get("/", dictionaryHandler.ListDictionaries)
			r.Get("/{name}", dictionaryHandler.GetDictionary)
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
