package domain

// Catalog is the decoded GeoJSON feature collection returned by the event
// endpoint. It is constructed once per fetch; the only later mutation is
// [FilterByCountry], which replaces Features and repairs Metadata.Count.
type Catalog struct {
	Type     string    `json:"type"` // always "FeatureCollection"
	Metadata Metadata  `json:"metadata"`
	Features []Event   `json:"features"`
	BBox     []float64 `json:"bbox,omitempty"`
}

// Metadata describes the request that produced a catalog.
type Metadata struct {
	Generated  int64  `json:"generated"` // ms since Unix epoch
	URL        string `json:"url"`
	Title      string `json:"title"`
	Status     int    `json:"status"`
	APIVersion string `json:"api"`
	Count      int    `json:"count"`
}

// Event is a single seismic event feature.
type Event struct {
	Type       string     `json:"type"` // always "Feature"
	ID         string     `json:"id"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry holds the epicenter as a GeoJSON point.
type Geometry struct {
	Type        string    `json:"type"`        // always "Point"
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

// Lon returns the epicenter longitude, or 0 when coordinates are malformed.
func (g Geometry) Lon() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[0]
}

// Lat returns the epicenter latitude, or 0 when coordinates are malformed.
func (g Geometry) Lat() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[1]
}

// Depth returns the hypocenter depth in kilometers, or 0 when absent.
func (g Geometry) Depth() float64 {
	if len(g.Coordinates) < 3 {
		return 0
	}
	return g.Coordinates[2]
}

// Properties holds the descriptive fields of an event. Everything is optional;
// see the package documentation for why.
type Properties struct {
	Mag     *float64 `json:"mag"`
	Place   *string  `json:"place"`
	Time    *int64   `json:"time"`    // ms since Unix epoch
	Updated *int64   `json:"updated"` // ms since Unix epoch
	TZ      *int     `json:"tz"`      // offset from UTC in minutes
	URL     *string  `json:"url"`
	Detail  *string  `json:"detail"`
	Felt    *int     `json:"felt"`
	CDI     *float64 `json:"cdi"`
	MMI     *float64 `json:"mmi"`
	Alert   *string  `json:"alert"` // PAGER level: green/yellow/orange/red
	Status  *string  `json:"status"`
	Tsunami *int     `json:"tsunami"`
	Sig     *int     `json:"sig"`
	Net     *string  `json:"net"`
	Code    *string  `json:"code"`
	IDs     *string  `json:"ids"`
	Sources *string  `json:"sources"`
	Types   *string  `json:"types"`
	NST     *int     `json:"nst"`
	DMin    *float64 `json:"dmin"`
	RMS     *float64 `json:"rms"`
	Gap     *float64 `json:"gap"`
	MagType *string  `json:"magType"`
	Kind    *string  `json:"type"` // "earthquake", "quarry blast", ...
	Title   *string  `json:"title"`
}

// Magnitude returns the event magnitude, or 0 when unreported.
func (e Event) Magnitude() float64 {
	if e.Properties.Mag == nil {
		return 0
	}
	return *e.Properties.Mag
}

// AlertLevel returns the PAGER alert level, or "" when PAGER has not
// assessed the event.
func (e Event) AlertLevel() string {
	if e.Properties.Alert == nil {
		return ""
	}
	return *e.Properties.Alert
}
