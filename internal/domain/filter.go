package domain

import "slices"

// BoundaryLookup maps a coordinate to the identifiers of the regions whose
// boundary polygon contains it. Implementations return an empty set for
// points outside every known region (open ocean).
type BoundaryLookup interface {
	RegionIDs(lat, lon float64) []string
}

// FilterByCountry retains only the events whose epicenter lies inside the
// named country and rewrites Metadata.Count to match. Matching is an exact
// string comparison against the lookup's region identifiers.
//
// An empty country code disables filtering: the catalog passes through
// untouched, including its reported count even if upstream data made it
// disagree with len(Features). An unrecognized code is not an error; it
// simply matches nothing. Filtering is idempotent.
func FilterByCountry(cat Catalog, countryCode string, boundaries BoundaryLookup) Catalog {
	if countryCode == "" {
		return cat
	}

	kept := make([]Event, 0, len(cat.Features))
	for _, ev := range cat.Features {
		ids := boundaries.RegionIDs(ev.Geometry.Lat(), ev.Geometry.Lon())
		if slices.Contains(ids, countryCode) {
			kept = append(kept, ev)
		}
	}

	cat.Features = kept
	cat.Metadata.Count = len(kept)
	return cat
}
