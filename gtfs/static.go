package gtfs

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Static stores the parsed reference tables in memory for fast lookups.
// It is read-only after Load returns.
type Static struct {
	stops       map[string]Stop
	shapePoints map[string][]Point            // shape_id -> ordered points
	routeShapes map[string]map[string][]string // route_id -> direction_id -> shape_ids
	shapeStops  map[string][]string            // shape_id -> ordered stop_ids
}

var (
	defaultOnce   sync.Once
	defaultStatic *Static
	defaultErr    error
)

// Default loads the tables from dir exactly once and returns the shared
// handle on every subsequent call, regardless of dir.
func Default(dir string) (*Static, error) {
	defaultOnce.Do(func() {
		defaultStatic, defaultErr = Load(dir)
	})
	return defaultStatic, defaultErr
}

// Load parses stops.txt, shapes.txt, trips.txt and shape_stops.json from
// dir. A missing file yields an empty table rather than an error; callers
// must tolerate unknown stops and absent geometry.
func Load(dir string) (*Static, error) {
	s := &Static{
		stops:       map[string]Stop{},
		shapePoints: map[string][]Point{},
		routeShapes: map[string]map[string][]string{},
		shapeStops:  map[string][]string{},
	}
	if err := s.loadStops(filepath.Join(dir, "stops.txt")); err != nil {
		return nil, fmt.Errorf("stops.txt: %w", err)
	}
	if err := s.loadShapes(filepath.Join(dir, "shapes.txt")); err != nil {
		return nil, fmt.Errorf("shapes.txt: %w", err)
	}
	if err := s.loadTrips(filepath.Join(dir, "trips.txt")); err != nil {
		return nil, fmt.Errorf("trips.txt: %w", err)
	}
	if err := s.loadShapeStops(filepath.Join(dir, "shape_stops.json")); err != nil {
		return nil, fmt.Errorf("shape_stops.json: %w", err)
	}
	return s, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func headerIndex(head []string) func(string) int {
	return func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
}

func (s *Static) loadStops(path string) error {
	rec, err := readCSV(path)
	if err != nil || len(rec) == 0 {
		return err
	}
	idx := headerIndex(rec[0])
	sID, sName := idx("stop_id"), idx("stop_name")
	sLat, sLon := idx("stop_lat"), idx("stop_lon")
	if sID < 0 {
		return nil
	}
	for _, row := range rec[1:] {
		if sID >= len(row) || row[sID] == "" {
			continue
		}
		stop := Stop{ID: row[sID]}
		if sName >= 0 && sName < len(row) {
			stop.Name = row[sName]
		}
		if sLat >= 0 && sLon >= 0 && sLat < len(row) && sLon < len(row) {
			stop.Lat, _ = strconv.ParseFloat(row[sLat], 64)
			stop.Lon, _ = strconv.ParseFloat(row[sLon], 64)
		}
		s.stops[stop.ID] = stop
	}
	return nil
}

func (s *Static) loadShapes(path string) error {
	rec, err := readCSV(path)
	if err != nil || len(rec) == 0 {
		return err
	}
	idx := headerIndex(rec[0])
	sh, latIdx, lonIdx, seqIdx := idx("shape_id"), idx("shape_pt_lat"), idx("shape_pt_lon"), idx("shape_pt_sequence")
	if sh < 0 || latIdx < 0 || lonIdx < 0 || seqIdx < 0 {
		return nil
	}
	type seqPoint struct {
		p   Point
		seq int
	}
	tmp := map[string][]seqPoint{}
	for _, row := range rec[1:] {
		if sh >= len(row) || latIdx >= len(row) || lonIdx >= len(row) || seqIdx >= len(row) {
			continue
		}
		lat, _ := strconv.ParseFloat(row[latIdx], 64)
		lon, _ := strconv.ParseFloat(row[lonIdx], 64)
		seq, _ := strconv.Atoi(row[seqIdx])
		tmp[row[sh]] = append(tmp[row[sh]], seqPoint{Point{Lat: lat, Lon: lon}, seq})
	}
	for shapeID, arr := range tmp {
		sort.Slice(arr, func(i, j int) bool { return arr[i].seq < arr[j].seq })
		pts := make([]Point, len(arr))
		for i, v := range arr {
			pts[i] = v.p
		}
		s.shapePoints[shapeID] = pts
	}
	return nil
}

func (s *Static) loadTrips(path string) error {
	rec, err := readCSV(path)
	if err != nil || len(rec) == 0 {
		return err
	}
	idx := headerIndex(rec[0])
	rID, dir, sh := idx("route_id"), idx("direction_id"), idx("shape_id")
	if rID < 0 || sh < 0 {
		return nil
	}
	seen := map[string]bool{}
	for _, row := range rec[1:] {
		if rID >= len(row) || sh >= len(row) {
			continue
		}
		routeID, shapeID := row[rID], row[sh]
		if routeID == "" || shapeID == "" {
			continue
		}
		direction := "0"
		if dir >= 0 && dir < len(row) && row[dir] != "" {
			direction = row[dir]
		}
		key := routeID + "|" + direction + "|" + shapeID
		if seen[key] {
			continue
		}
		seen[key] = true
		if s.routeShapes[routeID] == nil {
			s.routeShapes[routeID] = map[string][]string{}
		}
		s.routeShapes[routeID][direction] = append(s.routeShapes[routeID][direction], shapeID)
	}
	return nil
}

func (s *Static) loadShapeStops(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &s.shapeStops)
}
