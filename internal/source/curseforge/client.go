package curseforge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"mcw/internal/domain"
)

const defaultBaseURL = "https://api.curseforge.com"

// Client wraps the CurseForge REST API v1
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient creates a new CurseForge API client
func NewClient(httpClient *http.Client, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
	}
}

// SetAPIKey sets the API key for authentication
func (c *Client) SetAPIKey(key string) {
	c.apiKey = key
}

// IsAuthenticated returns true if an API key is configured
func (c *Client) IsAuthenticated() bool {
	return c.apiKey != ""
}

// SetBaseURL overrides the API base URL (tests)
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// doRequest performs an authenticated GET and decodes the response
func (c *Client) doRequest(ctx context.Context, path string, result interface{}) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing response body: %w", cerr)
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: CurseForge API key missing or invalid", domain.ErrAuthRequired)
	case http.StatusNotFound:
		return fmt.Errorf("%w: resource not found", domain.ErrProjectNotFound)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("curseforge: HTTP %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// GetMod fetches a mod by numeric ID
func (c *Client) GetMod(ctx context.Context, modID int) (*Mod, error) {
	var resp APIResponse[Mod]
	if err := c.doRequest(ctx, fmt.Sprintf("/v1/mods/%d", modID), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetModFiles fetches a mod's file list, newest first
func (c *Client) GetModFiles(ctx context.Context, modID int, pageSize int) ([]File, error) {
	q := url.Values{}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}

	var resp PaginatedResponse[[]File]
	path := fmt.Sprintf("/v1/mods/%d/files", modID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	if err := c.doRequest(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetDownloadURL fetches the download URL for a file. Authors can disable
// third-party distribution, in which case the API returns no URL.
func (c *Client) GetDownloadURL(ctx context.Context, modID, fileID int) (string, error) {
	var resp APIResponse[string]
	path := fmt.Sprintf("/v1/mods/%d/files/%d/download-url", modID, fileID)
	if err := c.doRequest(ctx, path, &resp); err != nil {
		return "", err
	}
	if resp.Data == "" {
		return "", fmt.Errorf("%w: author has disabled third-party downloads", domain.ErrDownloadFailed)
	}
	return resp.Data, nil
}

// SearchMods searches for mods in a game, optionally restricted to a class
func (c *Client) SearchMods(ctx context.Context, gameID int, search string, classID, pageSize, index int) ([]Mod, error) {
	q := url.Values{}
	q.Set("gameId", strconv.Itoa(gameID))
	q.Set("searchFilter", search)
	q.Set("sortField", "2") // popularity
	q.Set("sortOrder", "desc")
	if classID > 0 {
		q.Set("classId", strconv.Itoa(classID))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
	if index > 0 {
		q.Set("index", strconv.Itoa(index))
	}

	var resp PaginatedResponse[[]Mod]
	if err := c.doRequest(ctx, "/v1/mods/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
