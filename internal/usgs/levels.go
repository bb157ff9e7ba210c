package usgs

import "fmt"

// AlertLevel is a PAGER alert severity filter. The constant values are the
// wire-format parameter values, except AlertAll: the API treats the absence
// of the alertlevel parameter as "no alert filter", so AlertAll is never
// rendered into a request.
type AlertLevel string

const (
	AlertGreen  AlertLevel = "green"
	AlertYellow AlertLevel = "yellow"
	AlertOrange AlertLevel = "orange"
	AlertRed    AlertLevel = "red"
	AlertAll    AlertLevel = "all"
)

// ParseAlertLevel maps a config string to an AlertLevel.
func ParseAlertLevel(s string) (AlertLevel, error) {
	switch AlertLevel(s) {
	case AlertGreen, AlertYellow, AlertOrange, AlertRed, AlertAll:
		return AlertLevel(s), nil
	default:
		return "", fmt.Errorf("unknown alert level %q", s)
	}
}

// Order selects the result ordering. Constant values are wire-format.
type Order string

const (
	OrderTime         Order = "time"
	OrderTimeAsc      Order = "time-asc"
	OrderMagnitude    Order = "magnitude"
	OrderMagnitudeAsc Order = "magnitude-asc"
)

// ParseOrder maps a config string to an Order.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case OrderTime, OrderTimeAsc, OrderMagnitude, OrderMagnitudeAsc:
		return Order(s), nil
	default:
		return "", fmt.Errorf("unknown ordering %q", s)
	}
}
