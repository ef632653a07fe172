package pagestack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagestack/pagestack/pkg/models"
	"github.com/pagestack/pagestack/pkg/notes"
	"github.com/pagestack/pagestack/pkg/store"
	"github.com/pagestack/pagestack/pkg/store/storetest"
)

func newTestApp() *App {
	app := &App{
		config: &Config{ServerPort: "8080"},
		logger: zerolog.Nop(),
	}
	app.store = store.NewReadOnlyStore(storetest.NewMemoryStore(), app.IsReadOnly)
	app.service = notes.NewService(app.store, app.logger)
	return app
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createWorkspace(t *testing.T, handler http.Handler, name string) models.Workspace {
	t.Helper()
	rec := doRequest(t, handler, "POST", "/api/workspaces", map[string]string{"name": name})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[models.Workspace](t, rec)
}

func createPage(t *testing.T, handler http.Handler, workspaceID, title string) models.Page {
	t.Helper()
	body := map[string]string{"workspace_id": workspaceID}
	if title != "" {
		body["title"] = title
	}
	rec := doRequest(t, handler, "POST", "/api/pages", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[models.Page](t, rec)
}

func TestRootAndHealthEndpoints(t *testing.T) {
	handler := newTestApp().Routes()

	rec := doRequest(t, handler, "GET", "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	banner := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "pagestack", banner["service"])

	for _, path := range []string{"/health", "/api/health"} {
		rec := doRequest(t, handler, "GET", path, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		health := decodeBody[map[string]any](t, rec)
		assert.Equal(t, "healthy", health["status"])
	}
}

func TestWorkspaceLifecycle(t *testing.T) {
	handler := newTestApp().Routes()

	ws := createWorkspace(t, handler, "Eng")
	assert.Equal(t, "Eng", ws.Name)
	assert.False(t, ws.ID.IsZero())

	rec := doRequest(t, handler, "GET", "/api/workspaces", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeBody[[]models.Workspace](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, ws.ID, listed[0].ID)
}

func TestCreateWorkspaceInvalidPayload(t *testing.T) {
	handler := newTestApp().Routes()

	req := httptest.NewRequest("POST", "/api/workspaces", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, "POST", "/api/workspaces", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePageAgainstMissingWorkspace(t *testing.T) {
	handler := newTestApp().Routes()

	missing := models.NewWorkspace("ghost").ID.String()
	rec := doRequest(t, handler, "POST", "/api/pages", map[string]string{"workspace_id": missing})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "Workspace not found", body["error"])

	rec = doRequest(t, handler, "POST", "/api/pages", map[string]string{"workspace_id": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPagesFilter(t *testing.T) {
	handler := newTestApp().Routes()

	ws := createWorkspace(t, handler, "Eng")
	other := createWorkspace(t, handler, "Ops")
	createPage(t, handler, ws.ID.String(), "Sprint Notes")
	createPage(t, handler, other.ID.String(), "Runbook")

	rec := doRequest(t, handler, "GET", "/api/pages?workspace_id="+ws.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pages := decodeBody[[]models.Page](t, rec)
	require.Len(t, pages, 1)
	assert.Equal(t, "Sprint Notes", pages[0].Title)

	rec = doRequest(t, handler, "GET", "/api/pages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Page](t, rec), 2)
}

func TestUpdatePageEmptyBodyEchoesID(t *testing.T) {
	handler := newTestApp().Routes()

	rec := doRequest(t, handler, "PATCH", "/api/pages/whatever-id", map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "whatever-id", body["id"])
}

func TestUpdatePage(t *testing.T) {
	handler := newTestApp().Routes()

	ws := createWorkspace(t, handler, "Eng")
	page := createPage(t, handler, ws.ID.String(), "")
	assert.Equal(t, models.DefaultPageTitle, page.Title)

	rec := doRequest(t, handler, "PATCH", "/api/pages/"+page.ID.String(), map[string]string{"title": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[models.Page](t, rec)
	assert.Equal(t, "Renamed", updated.Title)

	missing := models.NewWorkspace("x").ID.String()
	rec = doRequest(t, handler, "PATCH", "/api/pages/"+missing, map[string]string{"title": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePageCascades(t *testing.T) {
	handler := newTestApp().Routes()

	ws := createWorkspace(t, handler, "Eng")
	page := createPage(t, handler, ws.ID.String(), "Sprint Notes")

	rec := doRequest(t, handler, "POST", "/api/blocks", map[string]any{
		"page_id": page.ID.String(),
		"content": "hello",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, "DELETE", "/api/pages/"+page.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]bool](t, rec)
	assert.True(t, body["deleted"])

	// Second delete reports not found, the cascade already ran.
	rec = doRequest(t, handler, "DELETE", "/api/pages/"+page.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, handler, "GET", "/api/blocks?page_id="+page.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]models.Block](t, rec))
}

func TestListBlocksRequiresPageID(t *testing.T) {
	handler := newTestApp().Routes()

	rec := doRequest(t, handler, "GET", "/api/blocks", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Contains(t, body["error"], "page_id")
}

func TestBlockLifecycle(t *testing.T) {
	handler := newTestApp().Routes()

	ws := createWorkspace(t, handler, "Eng")
	page := createPage(t, handler, ws.ID.String(), "Sprint Notes")

	create := func(content string, position int, typ string) models.Block {
		body := map[string]any{
			"page_id":  page.ID.String(),
			"content":  content,
			"position": position,
		}
		if typ != "" {
			body["type"] = typ
		}
		rec := doRequest(t, handler, "POST", "/api/blocks", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decodeBody[models.Block](t, rec)
	}

	create("later", 2, "")
	todo := create("first", 0, "todo")

	rec := doRequest(t, handler, "GET", "/api/blocks?page_id="+page.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	blocks := decodeBody[[]models.Block](t, rec)
	require.Len(t, blocks, 2)
	assert.Equal(t, "first", blocks[0].Content)
	assert.Equal(t, models.BlockTypeTodo, blocks[0].Type)
	assert.Equal(t, "later", blocks[1].Content)

	rec = doRequest(t, handler, "PATCH", "/api/blocks/"+todo.ID.String(), map[string]any{"checked": true})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[models.Block](t, rec)
	assert.True(t, updated.Checked)
	assert.Equal(t, "first", updated.Content)

	rec = doRequest(t, handler, "DELETE", "/api/blocks/"+todo.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[map[string]bool](t, rec)["deleted"])

	rec = doRequest(t, handler, "DELETE", "/api/blocks/"+todo.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBlockValidation(t *testing.T) {
	handler := newTestApp().Routes()

	pageID := models.NewWorkspace("x").ID.String()

	rec := doRequest(t, handler, "POST", "/api/blocks", map[string]any{
		"page_id": pageID,
		"type":    "heading",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, "POST", "/api/blocks", map[string]any{
		"page_id":  pageID,
		"position": -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadOnlyModeRejectsWrites(t *testing.T) {
	app := newTestApp()
	handler := app.Routes()

	ws := createWorkspace(t, handler, "Eng")

	app.SetReadOnly(true)

	rec := doRequest(t, handler, "POST", "/api/workspaces", map[string]string{"name": "Ops"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// Reads keep working.
	rec = doRequest(t, handler, "GET", "/api/workspaces", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Workspace](t, rec), 1)

	app.SetReadOnly(false)
	rec = doRequest(t, handler, "POST", "/api/pages", map[string]string{"workspace_id": ws.ID.String()})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestParse(t *testing.T) {
	cmd, config, err := Parse([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, "run", cmd.Name())
	assert.Equal(t, "8080", config.ServerPort)
	assert.False(t, config.UsePostgres)

	cmd, config, err = Parse([]string{"-postgres", "-read-only", "-port=8090", "migrate"})
	require.NoError(t, err)
	assert.Equal(t, "migrate", cmd.Name())
	assert.Equal(t, "8090", config.ServerPort)
	assert.True(t, config.UsePostgres)
	assert.True(t, config.ReadOnly)

	_, _, err = Parse([]string{})
	require.Error(t, err)

	_, _, err = Parse([]string{"frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestCorsHeaders(t *testing.T) {
	handler := newTestApp().Routes()

	req := httptest.NewRequest("OPTIONS", "/api/workspaces", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodRouting(t *testing.T) {
	handler := newTestApp().Routes()

	rec := doRequest(t, handler, "PUT", fmt.Sprintf("/api/pages/%s", models.NewWorkspace("x").ID), map[string]string{"title": "x"})
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
