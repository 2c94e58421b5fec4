package gtfsrt

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/wiggapony0925/track/config"
	"github.com/wiggapony0925/track/errs"
	"github.com/wiggapony0925/track/gtfs"
)

// ArrivalsForLine fetches the feed-group covering lineID and returns every
// upcoming arrival in it, sorted ascending by minutes away. A feed covers a
// family of lines, so the result contains all routes of the group, not just
// lineID. Unknown lines return errs.ErrNotFound.
func (d *Decoder) ArrivalsForLine(ctx context.Context, lineID string) ([]Arrival, error) {
	url, ok := config.FeedURL(lineID)
	if !ok || url == "" {
		return nil, fmt.Errorf("line %s: %w", lineID, errs.ErrNotFound)
	}
	fm, err := d.fetchFeed(ctx, url)
	if err != nil {
		return nil, err
	}
	now := d.now().Unix()

	var arrivals []Arrival
	for _, e := range fm.Entity {
		tu := e.TripUpdate
		if tu == nil {
			continue
		}
		route := tu.GetTrip().GetRouteId()

		// Destination is the last stop of the trip's update sequence.
		destination := ""
		if n := len(tu.StopTimeUpdate); n > 0 {
			destination = d.destinationName(tu.StopTimeUpdate[n-1].GetStopId())
		}

		for _, stu := range tu.StopTimeUpdate {
			arrivalTime := stu.GetArrival().GetTime()
			if arrivalTime == 0 {
				continue
			}
			stopID := stu.GetStopId()
			direction := "S"
			if strings.HasSuffix(stopID, "N") {
				direction = "N"
			}
			arrivals = append(arrivals, Arrival{
				RouteID:     route,
				StopID:      stopID,
				Direction:   direction,
				Destination: destination,
				MinutesAway: minutesUntil(arrivalTime, now),
				Status:      "On Time",
			})
		}
	}
	sort.SliceStable(arrivals, func(i, j int) bool { return arrivals[i].MinutesAway < arrivals[j].MinutesAway })
	return arrivals, nil
}

// destinationName resolves a stop id to a display name, retrying with the
// parent id when the platform id itself is unknown. Returns "" when no name
// can be resolved.
func (d *Decoder) destinationName(stopID string) string {
	if stop, ok := d.stops.Lookup(stopID); ok && stop.Name != "" {
		return stop.Name
	}
	if parent := gtfs.ParentStopID(stopID); parent != stopID {
		if stop, ok := d.stops.Lookup(parent); ok {
			return stop.Name
		}
	}
	return ""
}

// CommuterArrivals returns upcoming commuter rail arrivals, sorted ascending
// by minutes away. The upstream feed keys trains by branch rather than
// platform direction, so Direction carries the branch (route) id and StopID
// stays the raw feed id.
func (d *Decoder) CommuterArrivals(ctx context.Context) ([]Arrival, error) {
	url := config.Config.URLs.LIRR
	if url == "" {
		return nil, fmt.Errorf("commuter feed: %w", errs.ErrNotFound)
	}
	fm, err := d.fetchFeed(ctx, url)
	if err != nil {
		return nil, err
	}
	now := d.now().Unix()

	var arrivals []Arrival
	for _, e := range fm.Entity {
		tu := e.TripUpdate
		if tu == nil {
			continue
		}
		branch := tu.GetTrip().GetRouteId()
		for _, stu := range tu.StopTimeUpdate {
			arrivalTime := stu.GetArrival().GetTime()
			if arrivalTime == 0 {
				continue
			}
			arrivals = append(arrivals, Arrival{
				StopID:      stu.GetStopId(),
				Direction:   branch,
				MinutesAway: minutesUntil(arrivalTime, now),
				Status:      "On Time",
			})
		}
	}
	sort.SliceStable(arrivals, func(i, j int) bool { return arrivals[i].MinutesAway < arrivals[j].MinutesAway })
	return arrivals, nil
}
