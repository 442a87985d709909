package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"

	"github.com/helixml/intervalgen"
	apimiddleware "github.com/helixml/intervalgen/infrastructure/api/middleware"
	v1 "github.com/helixml/intervalgen/infrastructure/api/v1"
	"github.com/helixml/intervalgen/infrastructure/api/v1/dto"
	mcpinternal "github.com/helixml/intervalgen/internal/mcp"
)

// APIServer provides an HTTP API backed by an intervalgen Client.
type APIServer struct {
	client       *intervalgen.Client
	corsOrigins  []string
	version      string
	server       *Server
	router       chi.Router
	routerCalled bool
	logger       *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given Client.
// corsOrigins lists the origins allowed to call the API from a browser;
// an empty list allows any origin.
func NewAPIServer(client *intervalgen.Client, corsOrigins []string, version string) *APIServer {
	return &APIServer{
		client:      client,
		corsOrigins: corsOrigins,
		version:     version,
		logger:      client.Logger(),
	}
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call MountRoutes().
// If not called, ListenAndServe creates a default router with all standard routes.
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up all routes on the router.
// Call this after adding any custom middleware via Router().Use().
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

func (a *APIServer) mountRoutes(router chi.Router) {
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		apimiddleware.WriteJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
	})

	intervalsRouter := v1.NewIntervalsRouter(a.client)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(a.cors())
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Mount("/intervals", intervalsRouter.Routes())
	})

	// Streaming MCP responses are incompatible with the Timeout middleware.
	mcpSrv := mcpinternal.NewServer(a.client.Schedules, a.version, a.logger)
	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
}

func (a *APIServer) cors() func(http.Handler) http.Handler {
	origins := a.corsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	a.server = a.newServer(addr)
	return a.server.Start()
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (a *APIServer) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	a.server = a.newServer(addr)
	return a.server.Run(ctx, shutdownTimeout)
}

func (a *APIServer) newServer(addr string) *Server {
	srv := NewServer(addr, a.logger)
	if a.routerCalled && a.router != nil {
		srv.Router().Mount("/", a.router)
	} else {
		a.mountRoutes(srv.Router())
	}
	return &srv
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.Router()
		a.MountRoutes()
	}
	return a.router
}
