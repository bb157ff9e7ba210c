// Package boundary implements domain.BoundaryLookup on top of a bundled
// Natural Earth country-boundary dataset.
package boundary

import (
	"fmt"
	"sync"

	"github.com/sams96/rgeo"
)

// Index resolves coordinates to the ISO 3166-1 codes of the country whose
// territory contains them. It is immutable after construction and safe for
// concurrent use.
type Index struct {
	rg *rgeo.Rgeo
}

var (
	sharedOnce sync.Once
	shared     *Index
	sharedErr  error
)

// Shared returns the process-wide index, parsing the bundled dataset on the
// first call only. A parse failure is an unrecoverable initialization fault
// and is returned on every subsequent call.
func Shared() (*Index, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = New()
	})
	return shared, sharedErr
}

// New parses the bundled countries dataset into a fresh index. The parse is
// expensive; prefer Shared outside of tests.
func New() (*Index, error) {
	rg, err := rgeo.New(rgeo.Countries110)
	if err != nil {
		return nil, fmt.Errorf("load country boundaries: %w", err)
	}
	return &Index{rg: rg}, nil
}

// RegionIDs returns the ISO 3166-1 alpha-2 and alpha-3 codes of the country
// containing the coordinate, or nil for points outside every country
// boundary (open ocean, Antarctica gaps in the dataset).
func (i *Index) RegionIDs(lat, lon float64) []string {
	loc, err := i.rg.ReverseGeocode([]float64{lon, lat})
	if err != nil {
		// rgeo.ErrLocationNotFound; there is nothing else it returns here.
		return nil
	}

	ids := make([]string, 0, 2)
	if loc.CountryCode2 != "" {
		ids = append(ids, loc.CountryCode2)
	}
	if loc.CountryCode3 != "" {
		ids = append(ids, loc.CountryCode3)
	}
	return ids
}
