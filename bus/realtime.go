package bus

import (
	"context"
	"net/url"
)

// RealtimeArrivals returns the live arrivals at one stop from the
// stop-monitoring telemetry feed. Visits carrying neither a presentable
// distance nor an expected arrival time are dropped.
func (c *Client) RealtimeArrivals(ctx context.Context, stopID string) ([]Arrival, error) {
	if c.endpoints.StopMonitoring == "" {
		return nil, nil
	}
	params := url.Values{
		"version":                   {"2"},
		"MonitoringRef":             {stopID},
		"StopMonitoringDetailLevel": {"minimum"},
	}
	doc, err := c.getJSON(ctx, c.siriBase, c.endpoints.StopMonitoring, params)
	if err != nil {
		return nil, err
	}
	deliveries := asList(dig(doc, "Siri", "ServiceDelivery", "StopMonitoringDelivery"))
	if len(deliveries) == 0 {
		return nil, nil
	}

	var arrivals []Arrival
	for _, raw := range asList(asMap(deliveries[0])["MonitoredStopVisit"]) {
		journey := asMap(asMap(raw)["MonitoredVehicleJourney"])
		call := asMap(journey["MonitoredCall"])
		distances := asMap(dig(call, "Extensions", "Distances"))

		statusText := asString(distances["PresentableDistance"])
		expected, hasExpected := parseTimestamp(asString(call["ExpectedArrivalTime"]))
		if statusText == "" && !hasExpected {
			continue
		}

		routeID := asString(journey["LineRef"])
		if routeID == "" {
			routeID = firstString(journey["PublishedLineName"])
		}
		arrival := Arrival{
			RouteID:    routeID,
			VehicleID:  asString(journey["VehicleRef"]),
			StopID:     stopID,
			StatusText: statusText,
		}
		if arrival.StatusText == "" {
			arrival.StatusText = "En Route"
		}
		if hasExpected {
			arrival.ExpectedArrival = &expected
		}
		if d, ok := asFloat(distances["DistanceFromCall"]); ok {
			arrival.DistanceMeters = &d
		}
		if b, ok := asFloat(journey["Bearing"]); ok {
			arrival.Bearing = &b
		}
		arrivals = append(arrivals, arrival)
	}
	return arrivals, nil
}

// VehiclePositions returns the live vehicles of one route from the
// vehicle-monitoring telemetry feed. Activity without parseable
// coordinates is dropped.
func (c *Client) VehiclePositions(ctx context.Context, routeID string) ([]Vehicle, error) {
	if c.endpoints.VehicleMonitoring == "" {
		return nil, nil
	}
	params := url.Values{
		"version":                      {"2"},
		"LineRef":                      {routeID},
		"VehicleMonitoringDetailLevel": {"normal"},
	}
	doc, err := c.getJSON(ctx, c.siriBase, c.endpoints.VehicleMonitoring, params)
	if err != nil {
		return nil, err
	}
	deliveries := asList(dig(doc, "Siri", "ServiceDelivery", "VehicleMonitoringDelivery"))
	if len(deliveries) == 0 {
		return nil, nil
	}

	var vehicles []Vehicle
	for _, raw := range asList(asMap(deliveries[0])["VehicleActivity"]) {
		journey := asMap(asMap(raw)["MonitoredVehicleJourney"])
		location := asMap(journey["VehicleLocation"])
		lat, latOK := asFloat(location["Latitude"])
		lon, lonOK := asFloat(location["Longitude"])
		if !latOK || !lonOK {
			continue
		}

		lineRef := asString(journey["LineRef"])
		if lineRef == "" {
			lineRef = routeID
		}
		vehicle := Vehicle{
			VehicleID: asString(journey["VehicleRef"]),
			RouteID:   lineRef,
			Lat:       lat,
			Lon:       lon,
			// The next-stop name arrives as a string or a one-element list.
			NextStop:   firstString(dig(journey, "MonitoredCall", "StopPointName")),
			StatusText: asString(dig(journey, "MonitoredCall", "Extensions", "Distances", "PresentableDistance")),
		}
		if b, ok := asFloat(journey["Bearing"]); ok {
			vehicle.Bearing = &b
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, nil
}
