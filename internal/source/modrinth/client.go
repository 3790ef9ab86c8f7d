package modrinth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"mcw/internal/domain"
)

const (
	defaultBaseURL = "https://api.modrinth.com/v2"
	userAgent      = "mcw/1.0 (mod manager)"
)

// Client wraps the Modrinth REST API v2
type Client struct {
	rc *resty.Client
}

// NewClient creates a new Modrinth API client. Modrinth requires a
// descriptive User-Agent; no authentication is needed for read access.
func NewClient(httpClient *http.Client) *Client {
	var rc *resty.Client
	if httpClient != nil {
		rc = resty.NewWithClient(httpClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(defaultBaseURL)
	rc.SetHeader("User-Agent", userAgent)
	rc.SetHeader("Accept", "application/json")

	return &Client{rc: rc}
}

// SetBaseURL overrides the API base URL (tests)
func (c *Client) SetBaseURL(u string) {
	c.rc.SetBaseURL(u)
}

// checkResponse maps HTTP failures to domain errors
func checkResponse(resp *resty.Response, what string) error {
	if !resp.IsError() {
		return nil
	}
	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, what)
	}

	var apiErr APIError
	if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Description != "" {
		return fmt.Errorf("modrinth: %s: %s (HTTP %d)", what, apiErr.Description, resp.StatusCode())
	}
	return fmt.Errorf("modrinth: %s: HTTP %d", what, resp.StatusCode())
}

// GetProject fetches a project by id or slug
func (c *Client) GetProject(ctx context.Context, idOrSlug string) (*Project, error) {
	var project Project
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&project).
		SetPathParam("id", idOrSlug).
		Get("/project/{id}")
	if err != nil {
		return nil, fmt.Errorf("fetching project %s: %w", idOrSlug, err)
	}
	if err := checkResponse(resp, "project "+idOrSlug); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetVersions fetches a project's version list. gameVersions and loaders
// filter server-side when non-empty.
func (c *Client) GetVersions(ctx context.Context, idOrSlug string, gameVersions, loaders []string) ([]Version, error) {
	req := c.rc.R().SetContext(ctx).SetPathParam("id", idOrSlug)

	var versions []Version
	req.SetResult(&versions)
	if len(gameVersions) > 0 {
		req.SetQueryParam("game_versions", jsonList(gameVersions))
	}
	if len(loaders) > 0 {
		req.SetQueryParam("loaders", jsonList(loaders))
	}

	resp, err := req.Get("/project/{id}/version")
	if err != nil {
		return nil, fmt.Errorf("fetching versions of %s: %w", idOrSlug, err)
	}
	if err := checkResponse(resp, "versions of "+idOrSlug); err != nil {
		return nil, err
	}
	return versions, nil
}

// GetVersion fetches a single version by id
func (c *Client) GetVersion(ctx context.Context, versionID string) (*Version, error) {
	var version Version
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&version).
		SetPathParam("id", versionID).
		Get("/version/{id}")
	if err != nil {
		return nil, fmt.Errorf("fetching version %s: %w", versionID, err)
	}
	if err := checkResponse(resp, "version "+versionID); err != nil {
		return nil, err
	}
	return &version, nil
}

// Search queries the search endpoint. facets follows the Modrinth facet
// syntax, a JSON array of AND-ed OR-groups.
func (c *Client) Search(ctx context.Context, query, facets string, limit, offset int) (*SearchResult, error) {
	req := c.rc.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		SetQueryParam("limit", fmt.Sprint(limit)).
		SetQueryParam("offset", fmt.Sprint(offset))
	if facets != "" {
		req.SetQueryParam("facets", facets)
	}

	var result SearchResult
	req.SetResult(&result)

	resp, err := req.Get("/search")
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	if err := checkResponse(resp, "search"); err != nil {
		return nil, err
	}
	return &result, nil
}

// jsonList renders values as the JSON string array Modrinth list params use
func jsonList(values []string) string {
	b, _ := json.Marshal(values)
	return string(b)
}
