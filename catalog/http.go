package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gridverse/spacesync/space/engine"
)

// HTTPDirectory resolves space descriptors from the upstream metadata
// service's GET /api/v1/space/{id} endpoint.
type HTTPDirectory struct {
	baseURL string
	client  *http.Client
}

// NewHTTPDirectory creates a directory against the service at baseURL.
func NewHTTPDirectory(baseURL string, timeout time.Duration) *HTTPDirectory {
	return &HTTPDirectory{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Describe fetches and converts the space descriptor. A 404 maps to
// ErrSpaceNotFound; any other non-200 status is a lookup failure.
func (d *HTTPDirectory) Describe(ctx context.Context, spaceID string) (*engine.SpaceSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/v1/space/%s", d.baseURL, spaceID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build space lookup request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("space lookup failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrSpaceNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("space lookup returned status %d", resp.StatusCode)
	}

	var def SpaceDefinition
	if err := json.NewDecoder(resp.Body).Decode(&def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpace, err)
	}
	return def.Snapshot(spaceID)
}
