package feed

import (
	"context"
	"time"

	"github.com/couchcryptid/quake-catalog-service/internal/config"
	"github.com/couchcryptid/quake-catalog-service/internal/domain"
	"github.com/couchcryptid/quake-catalog-service/internal/usgs"
)

// CatalogFetcher implements Fetcher on a usgs.Client with fixed constraints
// from config. Only the time window varies per poll.
type CatalogFetcher struct {
	client       *usgs.Client
	countryCode  string
	minMagnitude float64
	maxMagnitude float64
	alertLevel   usgs.AlertLevel
	orderBy      usgs.Order
}

// NewCatalogFetcher binds a client to the configured query constraints.
func NewCatalogFetcher(client *usgs.Client, cfg *config.Config) *CatalogFetcher {
	return &CatalogFetcher{
		client:       client,
		countryCode:  cfg.CountryCode,
		minMagnitude: cfg.MinMagnitude,
		maxMagnitude: cfg.MaxMagnitude,
		alertLevel:   cfg.AlertLevel,
		orderBy:      cfg.OrderBy,
	}
}

func (cf *CatalogFetcher) FetchWindow(ctx context.Context, start, end time.Time) (domain.Catalog, error) {
	return cf.client.Query().
		CountryCode(cf.countryCode).
		StartAt(start).
		EndAt(end).
		MinMagnitude(cf.minMagnitude).
		MaxMagnitude(cf.maxMagnitude).
		AlertLevel(cf.alertLevel).
		OrderBy(cf.orderBy).
		Fetch(ctx)
}
