package rest

import (
	"net/http"

	"markbase-backend/application/services"
	"markbase-backend/infrastructure/config"
	"markbase-backend/interfaces/http/rest/handlers"
	"markbase-backend/interfaces/http/rest/middleware"
	"markbase-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	bookmarkService *services.BookmarkService
	tempService     *services.TempBookmarkService
	validator       *auth.JWTValidator
	cfg             *config.Config
	logger          *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	bookmarkService *services.BookmarkService,
	tempService *services.TempBookmarkService,
	validator *auth.JWTValidator,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		bookmarkService: bookmarkService,
		tempService:     tempService,
		validator:       validator,
		cfg:             cfg,
		logger:          logger,
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

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.markbase.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Liveness check, unauthenticated
	router.Get("/hello", rt.hello)

	// Authenticated routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		bookmarkHandler := handlers.NewBookmarkHandler(rt.bookmarkService, rt.logger)
		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", bookmarkHandler.List)
			r.Post("/", bookmarkHandler.Save)
			r.Put("/", bookmarkHandler.Save)
			r.Delete("/", bookmarkHandler.Delete)
			r.Delete("/dir", bookmarkHandler.DeleteDirectory)
		})

		tempHandler := handlers.NewTempBookmarkHandler(rt.tempService, rt.logger)
		r.Route("/tempBookmarks", func(r chi.Router) {
			r.Get("/", tempHandler.List)
			r.Post("/", tempHandler.Save)
			r.Put("/", tempHandler.Save)
			r.Delete("/", tempHandler.Delete)
		})
	})

	return router
}

// hello handles liveness check requests
func (rt *Router) hello(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"msg":"hello"}`))
}
