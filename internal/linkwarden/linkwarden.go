package linkwarden

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// updateTimeout bounds a single link update call. Search requests carry no
// timeout because a full scan of a large instance can legitimately take a
// long time.
const updateTimeout = 30 * time.Second

// Client is the Linkwarden API client.
type Client struct {
	baseURL    string
	searchPath string
	linkPath   string
	httpClient *http.Client
	token      string
}

// NewClient creates a new Linkwarden API client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		searchPath: "/api/v1/search",
		linkPath:   "/api/v1/links",
		httpClient: &http.Client{},
		token:      token,
	}
}

// SetBaseURL sets the base URL for the Linkwarden API client.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// SetSearchPath sets the search endpoint path.
func (c *Client) SetSearchPath(path string) {
	c.searchPath = normalizePath(path)
}

// SetLinkPath sets the link update endpoint path.
func (c *Client) SetLinkPath(path string) {
	c.linkPath = strings.TrimRight(normalizePath(path), "/")
}

// SetHTTPClient sets the HTTP client for the Linkwarden API client.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// Tag represents a Linkwarden tag. New tags carry only a name; the server
// assigns the identifier.
type Tag struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// Collection represents the collection a link belongs to.
type Collection struct {
	ID      int64 `json:"id"`
	OwnerID int64 `json:"ownerId"`
}

// PinRef references a user that pinned a link.
type PinRef struct {
	ID int64 `json:"id"`
}

// Link represents a Linkwarden link as returned by the search API.
type Link struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	URL          string      `json:"url"`
	Description  string      `json:"description"`
	TextContent  string      `json:"textContent"`
	Icon         *string     `json:"icon"`
	IconWeight   *string     `json:"iconWeight"`
	Color        *string     `json:"color"`
	AiTagged     bool        `json:"aiTagged"`
	CollectionID int64       `json:"collectionId"`
	Collection   *Collection `json:"collection"`
	Tags         []Tag       `json:"tags"`
	PinnedBy     []PinRef    `json:"pinnedBy"`
}

// UpdatePayload is the full request body for a link update. The update API
// replaces the link wholesale, so descriptive fields are copied verbatim
// from the source link.
type UpdatePayload struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	Icon        *string    `json:"icon"`
	IconWeight  *string    `json:"iconWeight"`
	Color       *string    `json:"color"`
	Collection  Collection `json:"collection"`
	Tags        []Tag      `json:"tags"`
	PinnedBy    []PinRef   `json:"pinnedBy,omitempty"`
}

type searchResponse struct {
	Data struct {
		Links      []Link `json:"links"`
		NextCursor *int64 `json:"nextCursor"`
	} `json:"data"`
}

// Pager iterates the search endpoint using cursor pagination. It holds the
// current cursor and is not restartable; create a new one per scan.
type Pager struct {
	client *Client
	cursor int64
	done   bool
}

// Search returns a Pager over all links, starting at cursor 0.
func (c *Client) Search() *Pager {
	return &Pager{client: c}
}

// Next fetches the next page of links. The second return value is false
// once the server reports no further cursor and every page has been
// yielded.
func (p *Pager) Next() ([]Link, bool, error) {
	if p.done {
		return nil, false, nil
	}

	c := p.client
	req, err := http.NewRequest("GET", fmt.Sprintf("%s%s?cursor=%d", c.baseURL, c.searchPath, p.cursor), nil)
	if err != nil {
		return nil, false, err
	}

	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, fmt.Errorf("failed to search links: %s", resp.Status)
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, false, err
	}

	if response.Data.NextCursor == nil {
		p.done = true
	} else {
		p.cursor = *response.Data.NextCursor
	}

	return response.Data.Links, true, nil
}

// UpdateLink replaces a link via the update API. Any non-2xx response is an
// error; there is no retry.
func (c *Client) UpdateLink(payload *UpdatePayload) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "PUT", fmt.Sprintf("%s%s/%d", c.baseURL, c.linkPath, payload.ID), bytes.NewBuffer(jsonPayload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to update link %d: %s", payload.ID, resp.Status)
	}

	return nil
}
