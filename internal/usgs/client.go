// Package usgs is a client for the USGS FDSN event web service. A Client
// issues catalog queries built with a fluent Query and filters results by
// country through a domain.BoundaryLookup.
package usgs

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-catalog-service/internal/domain"
	"github.com/couchcryptid/quake-catalog-service/internal/observability"
)

// DefaultBaseURL is the production event-query endpoint.
const DefaultBaseURL = "https://earthquake.usgs.gov/fdsnws/event/1/query"

// Client issues queries against the USGS event catalog.
type Client struct {
	httpClient *http.Client
	baseURL    string
	boundaries domain.BoundaryLookup
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a catalog client. A nil boundaries lookup disables
// country filtering regardless of the query's country code; callers that
// want filtering pass boundary.Shared(). The timeout bounds each fetch
// end-to-end, body decode included.
func NewClient(baseURL string, boundaries domain.BoundaryLookup, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:    baseURL,
		boundaries: boundaries,
		metrics:    metrics,
		logger:     logger,
	}
}
