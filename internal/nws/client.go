// Package nws queries the National Weather Service alerts API and
// normalizes its responses into display records.
package nws

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dc404/weathermap/internal/models"
	"github.com/dc404/weathermap/internal/params"
)

// BaseURL is the production alerts provider.
const BaseURL = "https://api.weather.gov"

const (
	// auxiliaryTimeout bounds the point-metadata lookup used by zone queries.
	auxiliaryTimeout = 10 * time.Second
	// primaryTimeout bounds the alerts call itself.
	primaryTimeout = 15 * time.Second
)

// AlertFetcher performs the HTTP call(s) described by a query descriptor.
type AlertFetcher interface {
	Fetch(ctx context.Context, desc QueryDescriptor, settings params.AlertSettings) (*models.Feed, error)
}

// Client implements AlertFetcher against the NWS API.
type Client struct {
	baseURL   string
	primary   *http.Client
	auxiliary *http.Client
}

// NewClient creates a client for the production NWS API.
func NewClient() *Client {
	return &Client{
		baseURL:   BaseURL,
		primary:   &http.Client{Timeout: primaryTimeout},
		auxiliary: &http.Client{Timeout: auxiliaryTimeout},
	}
}

// Resolve builds a query descriptor against this client's base URL.
func (c *Client) Resolve(mode params.QueryMode, snap params.Snapshot, settings params.AlertSettings) QueryDescriptor {
	return resolveAgainst(c.baseURL, mode, snap, settings)
}

// Fetch executes a descriptor and returns a fresh feed. Zone descriptors
// run the auxiliary lookup first; the primary call never overlaps it since
// its URL depends on the lookup's result. Errors are always *FetchError.
func (c *Client) Fetch(ctx context.Context, desc QueryDescriptor, settings params.AlertSettings) (*models.Feed, error) {
	primaryURL := desc.PrimaryURL
	if desc.Kind == QueryZone {
		resolved, err := c.resolveZone(ctx, desc, settings)
		if err != nil {
			return nil, err
		}
		primaryURL = resolved
	}

	body, err := c.get(ctx, c.primary, primaryURL, settings)
	if err != nil {
		return nil, err
	}

	return &models.Feed{
		Records:   Normalize(body),
		SourceURL: primaryURL,
		FetchedAt: time.Now(),
	}, nil
}

// pointMetadata is the subset of the /points response the zone lookup needs.
// County is a zone URL like ".../zones/county/FLC033"; its last path segment
// is the identifier the alerts endpoint accepts.
type pointMetadata struct {
	Properties struct {
		County string `json:"county"`
	} `json:"properties"`
}

// resolveZone performs the auxiliary point lookup and returns the effective
// primary URL. A response without a county identifier degrades to the point
// query for the same coordinates; that fallback is policy, not an error.
func (c *Client) resolveZone(ctx context.Context, desc QueryDescriptor, settings params.AlertSettings) (string, error) {
	body, err := c.get(ctx, c.auxiliary, desc.AuxiliaryURL, settings)
	if err != nil {
		return "", err
	}

	var meta pointMetadata
	if err := json.Unmarshal(body, &meta); err != nil || meta.Properties.County == "" {
		return desc.FallbackURL, nil
	}

	segments := strings.Split(meta.Properties.County, "/")
	zoneID := segments[len(segments)-1]
	if zoneID == "" {
		return desc.FallbackURL, nil
	}
	return zoneURL(c.baseURL, zoneID), nil
}

// get issues one GET with the provider's required headers and translates
// failures into FetchError kinds.
func (c *Client) get(ctx context.Context, client *http.Client, url string, settings params.AlertSettings) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: ErrNetwork, SourceURL: url, Err: err}
	}

	// The NWS rejects requests without an identifying User-Agent.
	req.Header.Set("User-Agent", settings.EffectiveUserAgent())
	req.Header.Set("Accept", "application/geo+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: ErrNetwork, SourceURL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Kind: ErrHTTPStatus, StatusCode: resp.StatusCode, SourceURL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: ErrNetwork, SourceURL: url, Err: err}
	}
	if !json.Valid(body) {
		return nil, &FetchError{Kind: ErrMalformedResponse, SourceURL: url}
	}
	return body, nil
}
