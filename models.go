package track

// NearbyTransitArrival is one mode-agnostic upcoming arrival near the user.
type NearbyTransitArrival struct {
	RouteID     string   `json:"routeId"`
	StopName    string   `json:"stopName"`
	Direction   string   `json:"direction"`
	MinutesAway int      `json:"minutesAway"`
	Status      string   `json:"status"`
	Mode        string   `json:"mode"`
	StopLat     *float64 `json:"stopLat,omitempty"`
	StopLon     *float64 `json:"stopLon,omitempty"`
}

// DirectionArrivals holds the arrivals of one direction of a route.
type DirectionArrivals struct {
	Direction string                 `json:"direction"`
	Arrivals  []NearbyTransitArrival `json:"arrivals"`
}

// GroupedNearbyTransit collapses one route's arrivals across directions.
// Clients render one card per route with swipeable direction tabs.
type GroupedNearbyTransit struct {
	RouteID     string              `json:"routeId"`
	DisplayName string              `json:"displayName"`
	Mode        string              `json:"mode"`
	ColorHex    string              `json:"colorHex,omitempty"`
	Directions  []DirectionArrivals `json:"directions"`
}

// LineOverlay is the geometry of one subway line for the full system map:
// encoded polylines plus the line color, no stop lists.
type LineOverlay struct {
	RouteID   string   `json:"routeId"`
	ColorHex  string   `json:"colorHex"`
	Polylines []string `json:"polylines"`
}

const (
	// ModeSubway and ModeBus tag the source of a NearbyTransitArrival.
	ModeSubway = "subway"
	ModeBus    = "bus"
)
