// Package source is the HTTP client for the CRUD backend the engine polls.
//
// The engine is agnostic to transport details beyond a success/failure
// outcome and a JSON-parseable body; count endpoints return heterogeneous
// payloads that are normalized through countparse.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	countparse "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/countparse"
	model "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/model"
)

const defaultTimeout = 10 * time.Second

// Client defines what the engine needs from the backend.
type Client interface {
	// Listings fetches the full current snapshot of the listing collection.
	Listings(ctx context.Context) ([]model.Listing, error)

	// Reviews fetches all reviews.
	Reviews(ctx context.Context) ([]model.Review, error)

	// ListingViews fetches the view count for one listing.
	ListingViews(ctx context.Context, listingID string) (int, error)

	// LandlordViews fetches the view count for one landlord.
	LandlordViews(ctx context.Context, landlordID string) (int, error)
}

// HTTPClient implements Client against the REST backend.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a backend client with configuration options.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Listings fetches GET /listings.
func (c *HTTPClient) Listings(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	if err := c.getJSON(ctx, "/listings", &listings); err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	return listings, nil
}

// Reviews fetches GET /reviews.
func (c *HTTPClient) Reviews(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := c.getJSON(ctx, "/reviews", &reviews); err != nil {
		return nil, fmt.Errorf("fetch reviews: %w", err)
	}
	return reviews, nil
}

// ListingViews fetches GET /listings/{id}/views. The body may take any of
// the recognized count shapes; unrecognized shapes count as zero.
func (c *HTTPClient) ListingViews(ctx context.Context, listingID string) (int, error) {
	return c.getCount(ctx, "/listings/"+listingID+"/views")
}

// LandlordViews fetches GET /landlords/{id}/views.
func (c *HTTPClient) LandlordViews(ctx context.Context, landlordID string) (int, error) {
	return c.getCount(ctx, "/landlords/"+landlordID+"/views")
}

func (c *HTTPClient) getCount(ctx context.Context, path string) (int, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("fetch count %s: %w", path, err)
	}
	return countparse.Extract(body), nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

func (c *HTTPClient) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatus, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return body, nil
}
