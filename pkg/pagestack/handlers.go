package pagestack

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pagestack/pagestack/pkg/models"
	"github.com/pagestack/pagestack/pkg/notes"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError translates domain errors into their HTTP status.
// Anything that does not carry a status, store failures mostly, becomes an
// opaque 500 with the detail kept in the log.
func (a *App) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr notes.HTTPError
	if errors.As(err, &httpErr) {
		respondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}
	a.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	respondError(w, http.StatusInternalServerError, "internal server error")
}

func (a *App) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"service": "pagestack",
		"status":  "ok",
	})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	backend := "surrealdb"
	if a.config.UsePostgres {
		backend = "postgres"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"backend":   backend,
		"read_only": a.IsReadOnly(),
		"time":      time.Now().Unix(),
	})
}

func (a *App) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req notes.CreateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	workspace, err := a.service.CreateWorkspace(r.Context(), req)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, workspace)
}

func (a *App) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	workspaces, err := a.service.ListWorkspaces(r.Context())
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, workspaces)
}

func (a *App) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	var req notes.CreatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	page, err := a.service.CreatePage(r.Context(), req)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

func (a *App) handleListPages(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.URL.Query().Get("workspace_id")

	pages, err := a.service.ListPages(r.Context(), workspaceID)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, pages)
}

func (a *App) handleUpdatePage(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]

	var upd models.PageUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	page, err := a.service.UpdatePage(r.Context(), rawID, upd)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	if page == nil {
		// Empty update: acknowledged without touching the store.
		respondJSON(w, http.StatusOK, map[string]string{"id": rawID})
		return
	}

	respondJSON(w, http.StatusOK, page)
}

func (a *App) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]

	if err := a.service.DeletePage(r.Context(), rawID); err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (a *App) handleCreateBlock(w http.ResponseWriter, r *http.Request) {
	var req notes.CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	block, err := a.service.CreateBlock(r.Context(), req)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, block)
}

func (a *App) handleListBlocks(w http.ResponseWriter, r *http.Request) {
	pageID := r.URL.Query().Get("page_id")
	if pageID == "" {
		respondError(w, http.StatusBadRequest, "page_id query parameter is required")
		return
	}

	blocks, err := a.service.ListBlocks(r.Context(), pageID)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, blocks)
}

func (a *App) handleUpdateBlock(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]

	var upd models.BlockUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	block, err := a.service.UpdateBlock(r.Context(), rawID, upd)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	if block == nil {
		respondJSON(w, http.StatusOK, map[string]string{"id": rawID})
		return
	}

	respondJSON(w, http.StatusOK, block)
}

func (a *App) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]

	if err := a.service.DeleteBlock(r.Context(), rawID); err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
