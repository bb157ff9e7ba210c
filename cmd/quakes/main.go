// Command quakes runs a single catalog query and prints the result as JSON.
// Useful for ad-hoc inspection and for generating test fixtures.
//
// Usage:
//
//	go run ./cmd/quakes \
//	  -start 2024-01-01T00:00 -end 2024-12-31T23:59 \
//	  -country TR -min-mag 4 -alert all -order time
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/quake-catalog-service/internal/boundary"
	"github.com/couchcryptid/quake-catalog-service/internal/domain"
	"github.com/couchcryptid/quake-catalog-service/internal/observability"
	"github.com/couchcryptid/quake-catalog-service/internal/usgs"
)

// flagLayout accepts local calendar time without seconds, matching the
// builder's minute granularity.
const flagLayout = "2006-01-02T15:04"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	start := flag.String("start", "", "window start, local time (2006-01-02T15:04), required")
	end := flag.String("end", "", "window end, local time (defaults to now)")
	country := flag.String("country", "US", `country code filter ("" for worldwide)`)
	minMag := flag.Float64("min-mag", 0, "minimum magnitude")
	maxMag := flag.Float64("max-mag", 10, "maximum magnitude")
	alert := flag.String("alert", "all", "alert level: green|yellow|orange|red|all")
	order := flag.String("order", "time", "ordering: time|time-asc|magnitude|magnitude-asc")
	baseURL := flag.String("base-url", usgs.DefaultBaseURL, "event query endpoint")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	if *start == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -start")
	}

	alertLevel, err := usgs.ParseAlertLevel(*alert)
	if err != nil {
		return err
	}
	orderBy, err := usgs.ParseOrder(*order)
	if err != nil {
		return err
	}

	var boundaries domain.BoundaryLookup
	if *country != "" {
		idx, err := boundary.Shared()
		if err != nil {
			return err
		}
		boundaries = idx
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := usgs.NewClient(*baseURL, boundaries, *timeout, observability.NewMetrics(), logger)

	q := client.Query().
		CountryCode(*country).
		MinMagnitude(*minMag).
		MaxMagnitude(*maxMag).
		AlertLevel(alertLevel).
		OrderBy(orderBy)

	startTime, err := time.ParseInLocation(flagLayout, *start, time.Local)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}
	q.StartTime(startTime.Year(), startTime.Month(), startTime.Day(), startTime.Hour(), startTime.Minute())

	if *end != "" {
		endTime, err := time.ParseInLocation(flagLayout, *end, time.Local)
		if err != nil {
			return fmt.Errorf("parse -end: %w", err)
		}
		q.EndTime(endTime.Year(), endTime.Month(), endTime.Day(), endTime.Hour(), endTime.Minute())
	}

	cat, err := q.Fetch(context.Background())
	if err != nil {
		return err
	}

	log.Printf("%d events", cat.Metadata.Count)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cat)
}
