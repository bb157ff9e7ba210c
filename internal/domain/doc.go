// Package domain models USGS earthquake catalog data.
//
// # Data Source
//
// Events come from the USGS FDSN event web service
// (https://earthquake.usgs.gov/fdsnws/event/1/) in GeoJSON format. The response
// is a feature collection: metadata about the request plus one feature per
// seismic event.
//
// # USGS Data Conventions
//
// Coordinates:
//
//	GeoJSON order [longitude, latitude, depth]; depth in kilometers.
//	WGS-84. Note the lon/lat order is the reverse of most geographic APIs.
//
// Timestamps:
//
//	Milliseconds since the Unix epoch, UTC. Applies to metadata.generated and
//	the time/updated event properties.
//
// Alert levels:
//
//	The PAGER alert property is one of "green", "yellow", "orange", "red",
//	or absent for events PAGER has not assessed.
//
// Optional properties:
//
//	Upstream data completeness varies by reporting network and event age, so
//	every event property is a pointer; nil means the source omitted the field
//	or sent an explicit null. Automatic (unreviewed) solutions in particular
//	often lack felt/cdi/mmi values.
//
// # Country Filtering
//
// The service filters events by the country containing the epicenter. The
// catalog API has no such parameter, so filtering happens after the fetch:
// each epicenter is resolved against a [BoundaryLookup] and the event is kept
// when the requested country code is among the returned region identifiers.
// See [FilterByCountry].
package domain
