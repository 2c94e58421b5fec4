package gtfs

import (
	"math"
	"sort"
)

const earthRadiusM = 6371000.0

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Lookup returns the stop record for stopID.
func (s *Static) Lookup(stopID string) (Stop, bool) {
	stop, ok := s.stops[stopID]
	return stop, ok
}

// NameOf returns the display name for stopID, falling back to the raw id
// when the stop is unknown.
func (s *Static) NameOf(stopID string) string {
	if stop, ok := s.stops[stopID]; ok && stop.Name != "" {
		return stop.Name
	}
	return stopID
}

// WithinRadius returns the ids of all stops within radiusM meters of the
// given point, nearest first.
func (s *Static) WithinRadius(lat, lon, radiusM float64) []string {
	type hit struct {
		id   string
		dist float64
	}
	var hits []hit
	for id, stop := range s.stops {
		if d := Haversine(lat, lon, stop.Lat, stop.Lon); d <= radiusM {
			hits = append(hits, hit{id, d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].id < hits[j].id
	})
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}
