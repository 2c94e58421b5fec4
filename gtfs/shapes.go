package gtfs

import (
	"sort"
	"strings"

	"github.com/wiggapony0925/track/errs"
)

// RouteShape builds the route geometry: one encoded polyline per direction
// and the ordered stop list of the first direction. Per direction, the
// candidate shape with the longest precomputed stop list wins, which picks
// the trunk branch over short-turn or spur variants. Returns
// errs.ErrNotFound when the route has no geometry at all.
func (s *Static) RouteShape(routeID string) (RouteShape, error) {
	dirs := s.routeShapes[routeID]
	if len(dirs) == 0 {
		return RouteShape{}, errs.ErrNotFound
	}
	dirIDs := make([]string, 0, len(dirs))
	for d := range dirs {
		dirIDs = append(dirIDs, d)
	}
	sort.Strings(dirIDs)

	out := RouteShape{RouteID: routeID}
	for _, d := range dirIDs {
		shapeID := s.trunkShape(dirs[d])
		if pts := s.shapePoints[shapeID]; len(pts) > 0 {
			out.Polylines = append(out.Polylines, EncodePolyline(pts))
		}
		// Reverse-direction stops would duplicate every station.
		if out.Stops == nil {
			out.Stops = s.stopsForShape(shapeID)
		}
	}
	if len(out.Polylines) == 0 {
		return RouteShape{}, errs.ErrNotFound
	}
	return out, nil
}

// trunkShape picks the candidate with the longest precomputed stop list.
// This is a heuristic: it assumes the precomputed branch data is
// representative of actual service patterns.
func (s *Static) trunkShape(candidates []string) string {
	best, bestLen := "", -1
	for _, id := range candidates {
		if n := len(s.shapeStops[id]); n > bestLen {
			best, bestLen = id, n
		}
	}
	return best
}

// stopsForShape resolves a shape's stop ids to entries. Unknown stops are
// skipped, and stops sharing a display name collapse into one entry since
// paired directional platforms map to one station. Sequence keeps the
// position in the raw stop list.
func (s *Static) stopsForShape(shapeID string) []RouteStopEntry {
	var out []RouteStopEntry
	seen := map[string]bool{}
	for seq, id := range s.shapeStops[shapeID] {
		stop, ok := s.Lookup(id)
		if !ok {
			continue
		}
		if seen[stop.Name] {
			continue
		}
		seen[stop.Name] = true
		out = append(out, RouteStopEntry{
			ID:       id,
			Name:     stop.Name,
			Lat:      stop.Lat,
			Lon:      stop.Lon,
			Sequence: seq,
		})
	}
	return out
}

// AllStations groups every stop of every route's trunk shapes by parent id
// and merges the serving-route sets. Each parent appears once, with its
// routes sorted.
func (s *Static) AllStations() []Station {
	stations := map[string]*Station{}
	serving := map[string]map[string]bool{}
	for routeID, dirs := range s.routeShapes {
		visited := map[string]bool{}
		for _, candidates := range dirs {
			shapeID := s.trunkShape(candidates)
			if visited[shapeID] {
				continue
			}
			visited[shapeID] = true
			for _, stop := range s.stopsForShape(shapeID) {
				parent := ParentStopID(stop.ID)
				if _, ok := stations[parent]; !ok {
					stations[parent] = &Station{
						ID:   parent,
						Name: stop.Name,
						Lat:  stop.Lat,
						Lon:  stop.Lon,
					}
					serving[parent] = map[string]bool{}
				}
				serving[parent][routeID] = true
			}
		}
	}
	out := make([]Station, 0, len(stations))
	for parent, st := range stations {
		for r := range serving[parent] {
			st.Routes = append(st.Routes, r)
		}
		sort.Strings(st.Routes)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ParentStopID strips the trailing directional platform suffix.
func ParentStopID(stopID string) string {
	if len(stopID) > 1 && (strings.HasSuffix(stopID, "N") || strings.HasSuffix(stopID, "S")) {
		return stopID[:len(stopID)-1]
	}
	return stopID
}
