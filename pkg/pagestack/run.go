package pagestack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Routes builds the HTTP handler for the application: the JSON API under
// /api, the banner and health endpoints, and a permissive CORS layer so
// browser-based editors on any origin can talk to the API.
//
// Endpoints:
//
//	GET    /                    - Service banner
//	GET    /health              - Health status
//	GET    /api/health          - Health status
//	POST   /api/workspaces      - Create workspace
//	GET    /api/workspaces      - List workspaces
//	POST   /api/pages           - Create page
//	GET    /api/pages           - List pages, optional ?workspace_id= filter
//	PATCH  /api/pages/{id}      - Partial page update
//	DELETE /api/pages/{id}      - Delete page and its blocks
//	POST   /api/blocks          - Create block
//	GET    /api/blocks          - List blocks, required ?page_id= filter
//	PATCH  /api/blocks/{id}     - Partial block update
//	DELETE /api/blocks/{id}     - Delete block
//
// Every success, creations and deletions included, responds 200.
func (a *App) Routes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", a.handleRoot).Methods("GET")
	router.HandleFunc("/health", a.handleHealth).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", a.handleHealth).Methods("GET")

	api.HandleFunc("/workspaces", a.handleCreateWorkspace).Methods("POST")
	api.HandleFunc("/workspaces", a.handleListWorkspaces).Methods("GET")

	api.HandleFunc("/pages", a.handleCreatePage).Methods("POST")
	api.HandleFunc("/pages", a.handleListPages).Methods("GET")
	api.HandleFunc("/pages/{id}", a.handleUpdatePage).Methods("PATCH")
	api.HandleFunc("/pages/{id}", a.handleDeletePage).Methods("DELETE")

	api.HandleFunc("/blocks", a.handleCreateBlock).Methods("POST")
	api.HandleFunc("/blocks", a.handleListBlocks).Methods("GET")
	api.HandleFunc("/blocks/{id}", a.handleUpdateBlock).Methods("PATCH")
	api.HandleFunc("/blocks/{id}", a.handleDeleteBlock).Methods("DELETE")

	return cors.AllowAll().Handler(router)
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails. On cancellation in-flight requests get five seconds to
// finish before the listener closes.
func (a *App) Run(ctx context.Context, cmd *RunCommand) error {
	addr := fmt.Sprintf(":%s", a.config.ServerPort)
	a.logger.Info().Str("addr", addr).Bool("read_only", a.IsReadOnly()).Msg("starting server")

	server := &http.Server{
		Addr:    addr,
		Handler: a.Routes(),
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
