package gtfsrt

// Arrival is one predicted train arrival. StopID is the raw platform id
// from the feed; callers resolve display names through the stop index.
// For commuter rail the Direction field carries the branch (route) id.
type Arrival struct {
	RouteID     string `json:"routeId,omitempty"`
	StopID      string `json:"station"`
	Direction   string `json:"direction"`
	Destination string `json:"destination,omitempty"`
	MinutesAway int    `json:"minutesAway"`
	Status      string `json:"status"`
}

// Alert is one service alert of severity WARNING or SEVERE.
type Alert struct {
	RouteID     string `json:"routeId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// ElevatorOutage is one currently out-of-service elevator or escalator.
type ElevatorOutage struct {
	Station       string `json:"station"`
	EquipmentType string `json:"equipmentType"`
	Description   string `json:"description"`
	OutageSince   string `json:"outageSince,omitempty"`
}
