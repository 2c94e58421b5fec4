package track

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/wiggapony0925/track/bus"
	"github.com/wiggapony0925/track/config"
	"github.com/wiggapony0925/track/gtfs"
)

// busMinutesSentinel sorts arrivals without a prediction last.
const busMinutesSentinel = 99

// Nearby returns the closest upcoming arrivals across both modes as a flat
// list sorted ascending by minutes away, capped at the configured maximum.
// Each mode degrades independently: a failing source contributes nothing
// and never fails the call.
func (e *Engine) Nearby(ctx context.Context, lat, lon, radiusM float64) []NearbyTransitArrival {
	results := e.fetchBranches(ctx, lat, lon, radiusM)
	sort.SliceStable(results, func(i, j int) bool { return results[i].MinutesAway < results[j].MinutesAway })
	if len(results) > e.cfg.NearbyMaxResults {
		results = results[:e.cfg.NearbyMaxResults]
	}
	return results
}

// fetchBranches runs the subway and bus branches concurrently and returns
// the combined unsorted list.
func (e *Engine) fetchBranches(ctx context.Context, lat, lon, radiusM float64) []NearbyTransitArrival {
	var subwayArrivals, busArrivals []NearbyTransitArrival
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		subwayArrivals = e.nearbySubway(ctx)
	}()
	go func() {
		defer wg.Done()
		busArrivals = e.nearbyBuses(ctx, lat, lon, radiusM)
	}()
	wg.Wait()
	return append(subwayArrivals, busArrivals...)
}

// nearbySubway queries one representative line per physical feed and keeps
// the most imminent arrivals of each. Arrivals already departed (zero
// minutes) are stale by the time a rider could act on them and are dropped
// here, but not from direct single-line queries.
func (e *Engine) nearbySubway(ctx context.Context) []NearbyTransitArrival {
	perLine := make([][]NearbyTransitArrival, len(config.RepresentativeLines))
	var wg sync.WaitGroup
	for i, line := range config.RepresentativeLines {
		wg.Add(1)
		go func(i int, line string) {
			defer wg.Done()
			arrivals, err := e.subway.ArrivalsForLine(ctx, line)
			if err != nil {
				e.logger.Warn("subway feed skipped", "line", line, "error", err)
				return
			}
			kept := 0
			for _, a := range arrivals {
				if a.MinutesAway <= 0 {
					continue
				}
				if kept >= e.cfg.PerFeedArrivals {
					break
				}
				kept++
				routeID := a.RouteID
				if routeID == "" {
					routeID = line
				}
				entry := NearbyTransitArrival{
					RouteID:     routeID,
					StopName:    e.stopDisplayName(a.StopID),
					Direction:   a.Direction,
					MinutesAway: a.MinutesAway,
					Status:      a.Status,
					Mode:        ModeSubway,
				}
				if stop, ok := e.lookupWithParent(a.StopID); ok {
					entry.StopLat, entry.StopLon = &stop.Lat, &stop.Lon
				}
				perLine[i] = append(perLine[i], entry)
			}
		}(i, line)
	}
	wg.Wait()

	var results []NearbyTransitArrival
	for _, arrivals := range perLine {
		results = append(results, arrivals...)
	}
	return results
}

// nearbyBuses finds the closest stops and fans out one arrivals query per
// stop, keeping per-stop failures isolated.
func (e *Engine) nearbyBuses(ctx context.Context, lat, lon, radiusM float64) []NearbyTransitArrival {
	stops, err := e.buses.NearbyStops(ctx, lat, lon, radiusM)
	if err != nil {
		e.logger.Warn("bus branch skipped", "error", err)
		return nil
	}
	if len(stops) > e.cfg.NearbyStopQueries {
		stops = stops[:e.cfg.NearbyStopQueries]
	}

	perStop := make([][]NearbyTransitArrival, len(stops))
	now := e.now()
	var wg sync.WaitGroup
	for i, stop := range stops {
		wg.Add(1)
		go func(i int, stop bus.Stop) {
			defer wg.Done()
			arrivals, err := e.buses.RealtimeArrivals(ctx, stop.ID)
			if err != nil {
				e.logger.Warn("bus stop skipped", "stop", stop.ID, "error", err)
				return
			}
			for _, a := range arrivals {
				lat, lon := stop.Lat, stop.Lon
				perStop[i] = append(perStop[i], NearbyTransitArrival{
					RouteID:     a.RouteID,
					StopName:    stop.Name,
					Direction:   a.StatusText,
					MinutesAway: busMinutesAway(a.ExpectedArrival, now),
					Status:      a.StatusText,
					Mode:        ModeBus,
					StopLat:     &lat,
					StopLon:     &lon,
				})
			}
		}(i, stop)
	}
	wg.Wait()

	var results []NearbyTransitArrival
	for _, arrivals := range perStop {
		results = append(results, arrivals...)
	}
	return results
}

// busMinutesAway converts an expected arrival to whole minutes from now.
// Missing predictions get a large sentinel so they sort last.
func busMinutesAway(expected *time.Time, now time.Time) int {
	if expected == nil {
		return busMinutesSentinel
	}
	mins := int(math.Floor(expected.Sub(now).Minutes()))
	if mins < 0 {
		return 0
	}
	return mins
}

func (e *Engine) stopDisplayName(stopID string) string {
	if stop, ok := e.static.Lookup(stopID); ok && stop.Name != "" {
		return stop.Name
	}
	if parent := gtfs.ParentStopID(stopID); parent != stopID {
		if stop, ok := e.static.Lookup(parent); ok && stop.Name != "" {
			return stop.Name
		}
	}
	return stopID
}

func (e *Engine) lookupWithParent(stopID string) (gtfs.Stop, bool) {
	if stop, ok := e.static.Lookup(stopID); ok {
		return stop, true
	}
	return e.static.Lookup(gtfs.ParentStopID(stopID))
}
