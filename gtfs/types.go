package gtfs

// Stop is one static station or platform reference point.
type Stop struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Point is one vertex of a route geometry.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteStopEntry is a stop bound to a position along a route geometry.
type RouteStopEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Sequence int     `json:"sequence"`
}

// RouteShape is the geometry builder output: one encoded polyline per
// direction plus the ordered stop list of the primary direction.
type RouteShape struct {
	RouteID   string           `json:"routeId"`
	Polylines []string         `json:"polylines"`
	Stops     []RouteStopEntry `json:"stops"`
}

// Station is one parent station with the union of routes serving it.
type Station struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Lat    float64  `json:"lat"`
	Lon    float64  `json:"lon"`
	Routes []string `json:"routes"`
}
