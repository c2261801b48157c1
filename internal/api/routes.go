// Package api wires the chi router: public health check, JWT-protected REST routes
// under /api/v1 and the streamable MCP endpoint at /mcp.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/peoplebridge/internal/api/handlers"
	apmiddleware "github.com/matiasleandrokruk/peoplebridge/internal/api/middleware"
	"github.com/matiasleandrokruk/peoplebridge/internal/domain/audit"
	"github.com/matiasleandrokruk/peoplebridge/internal/domain/contacts"
	"github.com/matiasleandrokruk/peoplebridge/internal/domain/tool"
)

// MCPPath is where the streamable HTTP MCP transport is mounted.
const MCPPath = "/mcp"

// Deps are the services the router exposes. Audit and MCP are optional.
type Deps struct {
	Contacts *contacts.Service
	Tools    *tool.ToolRegistry
	Audit    *audit.AuditService
	MCP      http.Handler
	Auth     apmiddleware.TokenParser
	Log      zerolog.Logger
}

// NewRouter creates the chi router with every route.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apmiddleware.RequestLogger(d.Log))
	r.Use(middleware.Recoverer)

	// ===== PUBLIC ROUTES =====

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	// ===== PROTECTED ROUTES (Bearer JWT) =====

	requireAuth := apmiddleware.AuthMiddleware(d.Auth)

	if d.MCP != nil {
		r.With(requireAuth).Handle(MCPPath, d.MCP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(requireAuth)

		peopleHandler := handlers.NewPeopleHandler(d.Contacts)
		r.Route("/people", func(r chi.Router) {
			r.Get("/", peopleHandler.ListPeople)          // GET /api/v1/people
			r.Post("/", peopleHandler.CreatePerson)       // POST /api/v1/people
			r.Get("/{id}", peopleHandler.GetPerson)       // GET /api/v1/people/{id}
			r.Patch("/{id}", peopleHandler.UpdatePerson)  // PATCH /api/v1/people/{id}
			r.Delete("/{id}", peopleHandler.DeletePerson) // DELETE /api/v1/people/{id}
		})

		toolHandler := handlers.NewToolHandler(d.Tools)
		r.Route("/tools", func(r chi.Router) {
			r.Get("/", toolHandler.ListTools)          // GET /api/v1/tools
			r.Post("/{name}", toolHandler.ExecuteTool) // POST /api/v1/tools/{name}
		})

		if d.Audit != nil {
			auditHandler := handlers.NewAuditHandler(d.Audit)
			r.Get("/audit", auditHandler.ListEvents)    // GET /api/v1/audit
			r.Get("/audit/{id}", auditHandler.GetEvent) // GET /api/v1/audit/{id}
		}
	})

	return r
}
