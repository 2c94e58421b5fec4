package bus

import "time"

// Route is a normalized bus route from the discovery API.
type Route struct {
	ID          string `json:"id"`
	ShortName   string `json:"shortName"`
	LongName    string `json:"longName"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Stop is a normalized bus stop from the discovery API.
type Stop struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Direction string  `json:"direction,omitempty"`
}

// Arrival is a normalized real-time arrival from the telemetry API.
// Entries with neither a status text nor an expected time are dropped
// during decoding.
type Arrival struct {
	RouteID         string     `json:"routeId"`
	VehicleID       string     `json:"vehicleId"`
	StopID          string     `json:"stopId"`
	StatusText      string     `json:"statusText"`
	ExpectedArrival *time.Time `json:"expectedArrival,omitempty"`
	DistanceMeters  *float64   `json:"distanceMeters,omitempty"`
	Bearing         *float64   `json:"bearing,omitempty"`
}

// Vehicle is a live vehicle position from the telemetry API.
type Vehicle struct {
	VehicleID  string   `json:"vehicleId"`
	RouteID    string   `json:"routeId"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Bearing    *float64 `json:"bearing,omitempty"`
	NextStop   string   `json:"nextStop,omitempty"`
	StatusText string   `json:"statusText,omitempty"`
}

// RouteShape is the pre-encoded geometry and stop list for a bus route.
// The upstream encodes the polylines itself; they are passed through
// verbatim.
type RouteShape struct {
	RouteID   string   `json:"routeId"`
	Polylines []string `json:"polylines"`
	Stops     []Stop   `json:"stops"`
}
