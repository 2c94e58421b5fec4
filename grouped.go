package track

import (
	"context"
	"sort"
	"strings"
)

// Agency prefixes stripped from bus route ids for display.
var busAgencyPrefixes = []string{"MTA NYCT_", "MTABC_"}

// emptyGroupSentinel sorts a group without arrivals after every real one.
const emptyGroupSentinel = 1 << 30

// NearbyGrouped runs the same two-branch fetch as Nearby and collapses the
// combined list into one group per route, sub-grouped by direction.
// Directions are ordered lexicographically, arrivals within a direction by
// minutes ascending, and groups by their most imminent arrival.
func (e *Engine) NearbyGrouped(ctx context.Context, lat, lon, radiusM float64) []GroupedNearbyTransit {
	flat := e.fetchBranches(ctx, lat, lon, radiusM)

	type group struct {
		GroupedNearbyTransit
		byDirection map[string][]NearbyTransitArrival
	}
	groups := map[string]*group{}
	var order []string
	for _, arrival := range flat {
		g, ok := groups[arrival.RouteID]
		if !ok {
			display := arrival.RouteID
			if arrival.Mode == ModeBus {
				display = stripAgencyPrefix(display)
			}
			g = &group{
				GroupedNearbyTransit: GroupedNearbyTransit{
					RouteID:     arrival.RouteID,
					DisplayName: display,
					Mode:        arrival.Mode,
				},
				byDirection: map[string][]NearbyTransitArrival{},
			}
			if arrival.Mode == ModeSubway {
				g.ColorHex = subwayColors[strings.ToUpper(display)]
			}
			groups[arrival.RouteID] = g
			order = append(order, arrival.RouteID)
		}
		g.byDirection[arrival.Direction] = append(g.byDirection[arrival.Direction], arrival)
	}

	type rankedGroup struct {
		group GroupedNearbyTransit
		min   int
	}
	ranked := make([]rankedGroup, 0, len(order))
	for _, routeID := range order {
		g := groups[routeID]
		directions := make([]string, 0, len(g.byDirection))
		for d := range g.byDirection {
			directions = append(directions, d)
		}
		sort.Strings(directions)

		min := emptyGroupSentinel
		for _, d := range directions {
			arrivals := g.byDirection[d]
			sort.SliceStable(arrivals, func(i, j int) bool { return arrivals[i].MinutesAway < arrivals[j].MinutesAway })
			if len(arrivals) > 0 && arrivals[0].MinutesAway < min {
				min = arrivals[0].MinutesAway
			}
			g.Directions = append(g.Directions, DirectionArrivals{Direction: d, Arrivals: arrivals})
		}
		ranked = append(ranked, rankedGroup{group: g.GroupedNearbyTransit, min: min})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].min < ranked[j].min })
	out := make([]GroupedNearbyTransit, len(ranked))
	for i, r := range ranked {
		out[i] = r.group
	}
	return out
}

func stripAgencyPrefix(routeID string) string {
	for _, prefix := range busAgencyPrefixes {
		if strings.HasPrefix(routeID, prefix) {
			return strings.TrimPrefix(routeID, prefix)
		}
	}
	return routeID
}
