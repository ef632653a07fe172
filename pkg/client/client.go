// Package client is a typed HTTP client for the pagestack REST API.
//
// It mirrors the server's endpoint structure with one method per operation,
// handling JSON serialization and error translation. Client instances are
// safe for concurrent use by multiple goroutines.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pagestack/pagestack/pkg/models"
	"github.com/pagestack/pagestack/pkg/notes"
)

// Client provides typed access to the pagestack REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an API client. The baseURL includes protocol and host
// ("http://localhost:8080") with no trailing slash. Requests time out after
// 30 seconds.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Health checks the health status of the server.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Workspaces

// CreateWorkspace creates a new workspace.
func (c *Client) CreateWorkspace(ctx context.Context, req notes.CreateWorkspaceRequest) (*models.Workspace, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/workspaces", req)
	if err != nil {
		return nil, err
	}

	var result models.Workspace
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListWorkspaces retrieves all workspaces.
func (c *Client) ListWorkspaces(ctx context.Context) ([]*models.Workspace, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/workspaces", nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Workspace
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Pages

// CreatePage creates a new page in a workspace.
func (c *Client) CreatePage(ctx context.Context, req notes.CreatePageRequest) (*models.Page, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/pages", req)
	if err != nil {
		return nil, err
	}

	var result models.Page
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPages retrieves all pages, or only one workspace's pages when
// workspaceID is non-empty.
func (c *Client) ListPages(ctx context.Context, workspaceID string) ([]*models.Page, error) {
	path := "/api/pages"
	if workspaceID != "" {
		path += "?workspace_id=" + url.QueryEscape(workspaceID)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Page
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdatePage applies a partial update to a page. The returned record is nil
// when the update carried no fields: the server then only acknowledges the
// identifier without touching the page, recognizable by the bare-id body
// with no timestamps.
func (c *Client) UpdatePage(ctx context.Context, id string, upd models.PageUpdate) (*models.Page, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/api/pages/%s", id), upd)
	if err != nil {
		return nil, err
	}

	var result models.Page
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.CreatedAt.IsZero() {
		return nil, nil
	}
	return &result, nil
}

// DeletePage deletes a page and every block on it.
func (c *Client) DeletePage(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/pages/%s", id), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// Blocks

// CreateBlock creates a new block on a page.
func (c *Client) CreateBlock(ctx context.Context, req notes.CreateBlockRequest) (*models.Block, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/blocks", req)
	if err != nil {
		return nil, err
	}

	var result models.Block
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListBlocks retrieves a page's blocks sorted by position.
func (c *Client) ListBlocks(ctx context.Context, pageID string) ([]*models.Block, error) {
	path := "/api/blocks?page_id=" + url.QueryEscape(pageID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Block
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateBlock applies a partial update to a block, with the same nil result
// convention as UpdatePage for empty updates.
func (c *Client) UpdateBlock(ctx context.Context, id string, upd models.BlockUpdate) (*models.Block, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/api/blocks/%s", id), upd)
	if err != nil {
		return nil, err
	}

	var result models.Block
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.CreatedAt.IsZero() {
		return nil, nil
	}
	return &result, nil
}

// DeleteBlock deletes a single block.
func (c *Client) DeleteBlock(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/blocks/%s", id), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}
