// README: Pipeline error taxonomy surfaced to the transport layer.
package service

import "fmt"

// MissingCoordinatesError is fatal: an endpoint could not be resolved to
// coordinates by any method. Endpoint is "start" or "destination".
type MissingCoordinatesError struct {
	Endpoint string
}

func (e *MissingCoordinatesError) Error() string {
	return "no coordinates resolved for " + e.Endpoint
}

// GeocodeError is fatal: geocoding was the last remaining resolution path
// for the destination and it failed.
type GeocodeError struct {
	Query string
	Err   error
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocoding %q failed: %v", e.Query, e.Err)
}

func (e *GeocodeError) Unwrap() error { return e.Err }

// RouteEngineError is fatal: the routing engine failed on the only request
// left to try (the direct fallback, or the primary when there were no
// via-points to drop).
type RouteEngineError struct {
	Err error
}

func (e *RouteEngineError) Error() string {
	return "routing engine: " + e.Err.Error()
}

func (e *RouteEngineError) Unwrap() error { return e.Err }
