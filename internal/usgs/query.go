package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-catalog-service/internal/domain"
)

// timeLayout is the FDSN ISO-8601 instant format. Values are already UTC, so
// no zone designator is sent.
const timeLayout = "2006-01-02T15:04:05"

// Query accumulates constraints for one catalog request. Setters chain, may
// be called in any order, and never fail; constraints are checked once, at
// Fetch. A Query is single-use and not safe for concurrent mutation.
type Query struct {
	client *Client

	countryCode  string
	startTime    *time.Time
	endTime      time.Time
	minMagnitude float64
	maxMagnitude float64
	alertLevel   AlertLevel
	orderBy      Order
}

// Query starts a new query with defaults: country "US", no start time, end
// time now, magnitude range [0, 10], all alert levels, ordered by time
// descending.
func (c *Client) Query() *Query {
	return &Query{
		client:       c,
		countryCode:  "US",
		endTime:      domain.NowUTC(),
		minMagnitude: 0.0,
		maxMagnitude: 10.0,
		alertLevel:   AlertAll,
		orderBy:      OrderTime,
	}
}

// CountryCode filters results to epicenters inside the named country.
// Codes are matched exactly against the boundary lookup's identifiers
// (ISO 3166-1 alpha-2 or alpha-3, e.g. "TR" or "TUR"). An empty string
// disables country filtering; an unrecognized code matches nothing.
func (q *Query) CountryCode(code string) *Query {
	q.countryCode = code
	return q
}

// StartTime sets the window start from local calendar components.
func (q *Query) StartTime(year int, month time.Month, day, hour, min int) *Query {
	t := domain.CivilUTC(year, month, day, hour, min)
	q.startTime = &t
	return q
}

// EndTime sets the window end from local calendar components.
func (q *Query) EndTime(year int, month time.Month, day, hour, min int) *Query {
	q.endTime = domain.CivilUTC(year, month, day, hour, min)
	return q
}

// StartAt sets the window start from an absolute instant.
func (q *Query) StartAt(t time.Time) *Query {
	u := t.UTC()
	q.startTime = &u
	return q
}

// EndAt sets the window end from an absolute instant.
func (q *Query) EndAt(t time.Time) *Query {
	q.endTime = t.UTC()
	return q
}

// MinMagnitude sets the minimum magnitude filter.
func (q *Query) MinMagnitude(min float64) *Query {
	q.minMagnitude = min
	return q
}

// MaxMagnitude sets the maximum magnitude filter.
func (q *Query) MaxMagnitude(max float64) *Query {
	q.maxMagnitude = max
	return q
}

// AlertLevel sets the PAGER alert level filter.
func (q *Query) AlertLevel(level AlertLevel) *Query {
	q.alertLevel = level
	return q
}

// OrderBy sets the result ordering.
func (q *Query) OrderBy(order Order) *Query {
	q.orderBy = order
	return q
}

// validate checks the constraint set in a fixed order and returns the first
// violation. It has no side effects. The magnitude bounds are checked
// individually only: min > max is deliberately not an error, matching the
// upstream API, which answers such windows with an empty feature set.
func (q *Query) validate() error {
	if q.startTime == nil {
		return ErrMissingStartTime
	}
	if q.startTime.After(q.endTime) {
		return ErrStartAfterEnd
	}
	if q.startTime.After(domain.NowUTC()) {
		return ErrStartInFuture
	}
	if q.minMagnitude < 0.0 {
		return ErrMagnitudeBelowFloor
	}
	if q.maxMagnitude > 10.0 {
		return ErrMagnitudeAboveCeiling
	}
	return nil
}

// requestURL renders the validated constraint set into the full request URL.
// AlertAll is expressed by omitting the alertlevel parameter; sending a
// literal "all" makes the API return nothing.
func (q *Query) requestURL() string {
	params := url.Values{
		"format":       {"geojson"},
		"starttime":    {q.startTime.Format(timeLayout)},
		"endtime":      {q.endTime.Format(timeLayout)},
		"minmagnitude": {formatMagnitude(q.minMagnitude)},
		"maxmagnitude": {formatMagnitude(q.maxMagnitude)},
		"orderby":      {string(q.orderBy)},
	}
	if q.alertLevel != AlertAll {
		params.Set("alertlevel", string(q.alertLevel))
	}
	return q.client.baseURL + "?" + params.Encode()
}

// formatMagnitude renders a magnitude with no trailing zeros: 4.0 → "4".
func formatMagnitude(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Fetch validates the constraints, executes the query, and returns the
// country-filtered catalog. Validation errors are the package sentinels;
// transport and decode failures are wrapped and surfaced verbatim, never
// retried.
func (q *Query) Fetch(ctx context.Context) (domain.Catalog, error) {
	c := q.client
	c.metrics.QueriesTotal.Inc()

	if err := q.validate(); err != nil {
		c.metrics.QueryErrors.WithLabelValues("validate").Inc()
		return domain.Catalog{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.requestURL(), nil)
	if err != nil {
		c.metrics.QueryErrors.WithLabelValues("request").Inc()
		return domain.Catalog{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.QueryErrors.WithLabelValues("request").Inc()
		return domain.Catalog{}, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.APIDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.QueryErrors.WithLabelValues("request").Inc()
		return domain.Catalog{}, fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, body)
	}

	var cat domain.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&cat); err != nil {
		c.metrics.QueryErrors.WithLabelValues("decode").Inc()
		return domain.Catalog{}, fmt.Errorf("decode response: %w", err)
	}

	c.metrics.EventsFetched.Add(float64(len(cat.Features)))

	if q.countryCode != "" && c.boundaries != nil {
		before := len(cat.Features)
		cat = domain.FilterByCountry(cat, q.countryCode, c.boundaries)
		dropped := before - len(cat.Features)
		c.metrics.EventsFiltered.Add(float64(dropped))
		c.logger.Debug("country filter applied",
			"country", q.countryCode,
			"kept", len(cat.Features),
			"dropped", dropped,
		)
	}

	return cat, nil
}
