package bus

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Bounding-box degree conversion for the service region's latitude.
const (
	metersPerDegreeLat = 111000.0
	metersPerDegreeLon = 85000.0
	minSpanDegrees     = 0.005
)

// Routes returns every route of the agency from the discovery API.
func (c *Client) Routes(ctx context.Context) ([]Route, error) {
	if c.endpoints.RoutesForAgency == "" {
		return nil, nil
	}
	if v, err := c.cache.Get("routes"); err == nil {
		return v.([]Route), nil
	}
	doc, err := c.getJSON(ctx, c.obaBase, c.endpoints.RoutesForAgency, nil)
	if err != nil {
		return nil, err
	}
	var routes []Route
	for _, raw := range asList(dig(doc, "data", "list")) {
		r := asMap(raw)
		route := Route{
			ID:          asString(r["id"]),
			ShortName:   asString(r["shortName"]),
			LongName:    asString(r["longName"]),
			Color:       "0039A6",
			Description: asString(r["description"]),
		}
		if color := asString(r["color"]); color != "" {
			route.Color = color
		}
		routes = append(routes, route)
	}
	c.cache.Set("routes", routes)
	return routes, nil
}

// Stops returns the stops of one route. routeID must be fully qualified.
func (c *Client) Stops(ctx context.Context, routeID string) ([]Stop, error) {
	if c.endpoints.StopsForRoute == "" {
		return nil, nil
	}
	cacheKey := "stops:" + routeID
	if v, err := c.cache.Get(cacheKey); err == nil {
		return v.([]Stop), nil
	}
	path := strings.ReplaceAll(c.endpoints.StopsForRoute, "{route_id}", url.PathEscape(routeID))
	params := url.Values{"includePolylines": {"false"}, "version": {"2"}}
	doc, err := c.getJSON(ctx, c.obaBase, path, params)
	if err != nil {
		return nil, err
	}
	stops := decodeStops(asList(dig(doc, "data", "references", "stops")))
	c.cache.Set(cacheKey, stops)
	return stops, nil
}

// NearbyStops queries the discovery API for stops inside a bounding box
// around the given point. The endpoint is empirically unreliable, so this
// is the one call wrapped in a bounded retry loop; when every attempt
// fails the last error is surfaced.
func (c *Client) NearbyStops(ctx context.Context, lat, lon, radiusM float64) ([]Stop, error) {
	if c.endpoints.StopsNearLocation == "" {
		return nil, nil
	}
	latSpan := radiusM / metersPerDegreeLat
	if latSpan < minSpanDegrees {
		latSpan = minSpanDegrees
	}
	lonSpan := radiusM / metersPerDegreeLon
	if lonSpan < minSpanDegrees {
		lonSpan = minSpanDegrees
	}
	params := url.Values{
		"lat":     {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":     {strconv.FormatFloat(lon, 'f', -1, 64)},
		"latSpan": {strconv.FormatFloat(latSpan, 'f', -1, 64)},
		"lonSpan": {strconv.FormatFloat(lonSpan, 'f', -1, 64)},
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying nearby stops query", "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
		doc, err := c.getJSON(ctx, c.obaBase, c.endpoints.StopsNearLocation, cloneValues(params))
		if err != nil {
			lastErr = err
			continue
		}
		return decodeStops(asList(dig(doc, "data", "list"))), nil
	}
	return nil, lastErr
}

// RouteShape returns the pre-encoded polylines and stops of one route.
func (c *Client) RouteShape(ctx context.Context, routeID string) (RouteShape, error) {
	shape := RouteShape{RouteID: routeID}
	if c.endpoints.StopsForRoute == "" {
		return shape, nil
	}
	cacheKey := "shape:" + routeID
	if v, err := c.cache.Get(cacheKey); err == nil {
		return v.(RouteShape), nil
	}
	path := strings.ReplaceAll(c.endpoints.StopsForRoute, "{route_id}", url.PathEscape(routeID))
	params := url.Values{"includePolylines": {"true"}, "version": {"2"}}
	doc, err := c.getJSON(ctx, c.obaBase, path, params)
	if err != nil {
		return shape, err
	}
	for _, raw := range asList(dig(doc, "data", "entry", "polylines")) {
		if points := asString(asMap(raw)["points"]); points != "" {
			shape.Polylines = append(shape.Polylines, points)
		}
	}
	shape.Stops = decodeStops(asList(dig(doc, "data", "references", "stops")))
	c.cache.Set(cacheKey, shape)
	return shape, nil
}

func decodeStops(items []any) []Stop {
	var stops []Stop
	for _, raw := range items {
		s := asMap(raw)
		stop := Stop{
			ID:        asString(s["id"]),
			Name:      asString(s["name"]),
			Direction: asString(s["direction"]),
		}
		stop.Lat, _ = asFloat(s["lat"])
		stop.Lon, _ = asFloat(s["lon"])
		stops = append(stops, stop)
	}
	return stops
}

func cloneValues(v url.Values) url.Values {
	out := url.Values{}
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
