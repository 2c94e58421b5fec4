package track

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wiggapony0925/track/bus"
	"github.com/wiggapony0925/track/config"
	"github.com/wiggapony0925/track/gtfs"
	"github.com/wiggapony0925/track/gtfsrt"
)

type fakeSubway struct {
	arrivals map[string][]gtfsrt.Arrival
	err      error
}

func (f *fakeSubway) ArrivalsForLine(ctx context.Context, lineID string) ([]gtfsrt.Arrival, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.arrivals[lineID], nil
}

type fakeBuses struct {
	stops       []bus.Stop
	arrivals    map[string][]bus.Arrival
	stopsErr    error
	arrivalsErr error
}

func (f *fakeBuses) NearbyStops(ctx context.Context, lat, lon, radiusM float64) ([]bus.Stop, error) {
	return f.stops, f.stopsErr
}

func (f *fakeBuses) RealtimeArrivals(ctx context.Context, stopID string) ([]bus.Arrival, error) {
	if f.arrivalsErr != nil {
		return nil, f.arrivalsErr
	}
	return f.arrivals[stopID], nil
}

func testEngine(t *testing.T, subway SubwaySource, buses BusSource) *Engine {
	t.Helper()
	static, err := gtfs.Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.AppSettings{
		NearbyMaxResults:  20,
		NearbyStopQueries: 3,
		PerFeedArrivals:   5,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(subway, buses, static, cfg, logger)
}

func TestNearbyToleratesSubwayFailure(t *testing.T) {
	buses := &fakeBuses{
		stops: []bus.Stop{{ID: "MTA_1", Name: "5 AV/9 ST", Lat: 40.6, Lon: -73.9}},
		arrivals: map[string][]bus.Arrival{
			"MTA_1": {
				{RouteID: "MTA NYCT_B63", StatusText: "approaching"},
				{RouteID: "MTA NYCT_B63", StatusText: "1 mile away"},
			},
		},
	}
	e := testEngine(t, &fakeSubway{err: errors.New("feed down")}, buses)

	results := e.Nearby(context.Background(), 40.6, -73.9, 500)
	if len(results) != 2 {
		t.Fatalf("got %d results, want the 2 bus arrivals: %+v", len(results), results)
	}
	for _, r := range results {
		if r.Mode != ModeBus || r.StopName != "5 AV/9 ST" {
			t.Errorf("result = %+v", r)
		}
	}
}

func TestNearbyBothBranchesFailing(t *testing.T) {
	e := testEngine(t, &fakeSubway{err: errors.New("down")}, &fakeBuses{stopsErr: errors.New("down too")})
	results := e.Nearby(context.Background(), 40.6, -73.9, 500)
	if len(results) != 0 {
		t.Errorf("got %d results, want empty degraded response", len(results))
	}
}

func TestNearbyCapAndOrder(t *testing.T) {
	subway := &fakeSubway{arrivals: map[string][]gtfsrt.Arrival{}}
	// Three feeds of five arrivals each, already sorted as the decoder
	// guarantees.
	for i, line := range []string{"A", "G", "N"} {
		for m := 1; m <= 5; m++ {
			subway.arrivals[line] = append(subway.arrivals[line], gtfsrt.Arrival{
				RouteID: line, StopID: "X1N", Direction: "N", MinutesAway: m + i, Status: "On Time",
			})
		}
	}
	busArrivals := make([]bus.Arrival, 15)
	expected := time.Now().UTC().Add(30 * time.Minute)
	for i := range busArrivals {
		busArrivals[i] = bus.Arrival{RouteID: "MTA NYCT_M15", StatusText: "En Route", ExpectedArrival: &expected}
	}
	buses := &fakeBuses{
		stops:    []bus.Stop{{ID: "MTA_1", Name: "Stop"}},
		arrivals: map[string][]bus.Arrival{"MTA_1": busArrivals},
	}
	e := testEngine(t, subway, buses)

	results := e.Nearby(context.Background(), 40.6, -73.9, 500)
	if len(results) != 20 {
		t.Fatalf("got %d results, want cap of 20", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].MinutesAway < results[i-1].MinutesAway {
			t.Fatalf("results not sorted at %d: %+v", i, results)
		}
	}
}

func TestNearbyDropsStaleSubwayArrivals(t *testing.T) {
	subway := &fakeSubway{arrivals: map[string][]gtfsrt.Arrival{
		"A": {
			{RouteID: "A", StopID: "A01S", Direction: "S", MinutesAway: 0, Status: "On Time"},
			{RouteID: "A", StopID: "A01N", Direction: "N", MinutesAway: 3, Status: "On Time"},
		},
	}}
	e := testEngine(t, subway, &fakeBuses{})

	results := e.Nearby(context.Background(), 40.6, -73.9, 500)
	if len(results) != 1 || results[0].MinutesAway != 3 {
		t.Fatalf("results = %+v, want only the 3-minute arrival", results)
	}
}

func TestNearbyPerFeedCap(t *testing.T) {
	subway := &fakeSubway{arrivals: map[string][]gtfsrt.Arrival{"L": {}}}
	for m := 1; m <= 9; m++ {
		subway.arrivals["L"] = append(subway.arrivals["L"], gtfsrt.Arrival{
			RouteID: "L", StopID: "L01N", Direction: "N", MinutesAway: m, Status: "On Time",
		})
	}
	e := testEngine(t, subway, &fakeBuses{})

	results := e.Nearby(context.Background(), 40.6, -73.9, 500)
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5 per feed", len(results))
	}
}

func TestNearbyGroupedOrdering(t *testing.T) {
	subway := &fakeSubway{arrivals: map[string][]gtfsrt.Arrival{
		"A": {
			{RouteID: "A", StopID: "A01N", Direction: "N", MinutesAway: 3, Status: "On Time"},
			{RouteID: "A", StopID: "A01S", Direction: "S", MinutesAway: 5, Status: "On Time"},
		},
		"L": {
			{RouteID: "L", StopID: "L01N", Direction: "N", MinutesAway: 2, Status: "On Time"},
		},
	}}
	buses := &fakeBuses{
		stops: []bus.Stop{{ID: "MTA_1", Name: "5 AV/9 ST"}},
		arrivals: map[string][]bus.Arrival{
			"MTA_1": {{RouteID: "MTA NYCT_B63", StatusText: "1 stop away"}},
		},
	}
	e := testEngine(t, subway, buses)

	groups := e.NearbyGrouped(context.Background(), 40.6, -73.9, 500)
	if len(groups) != 3 {
		t.Fatalf("got %d groups: %+v", len(groups), groups)
	}
	// L (2 min) before A (3 min); the predictionless bus sorts last.
	if groups[0].RouteID != "L" || groups[1].RouteID != "A" || groups[2].RouteID != "MTA NYCT_B63" {
		t.Fatalf("group order = [%s %s %s]", groups[0].RouteID, groups[1].RouteID, groups[2].RouteID)
	}

	a := groups[1]
	if len(a.Directions) != 2 || a.Directions[0].Direction != "N" || a.Directions[1].Direction != "S" {
		t.Errorf("A directions = %+v", a.Directions)
	}
	if a.ColorHex != "#0039A6" {
		t.Errorf("A color = %q", a.ColorHex)
	}

	b := groups[2]
	if b.DisplayName != "B63" || b.ColorHex != "" || b.Mode != ModeBus {
		t.Errorf("bus group = %+v", b)
	}
}

func TestBusMinutesAway(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	in150s := now.Add(150 * time.Second)
	past := now.Add(-5 * time.Minute)
	tests := []struct {
		name     string
		expected *time.Time
		want     int
	}{
		{"no prediction", nil, busMinutesSentinel},
		{"two and a half minutes", &in150s, 2},
		{"already arrived", &past, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := busMinutesAway(tt.expected, now); got != tt.want {
				t.Errorf("busMinutesAway = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAllLineOverlays(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\nA01N,Inwood-207 St,40.868,-73.919\nA02N,Dyckman St,40.865,-73.927\n",
		"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
			"A..N04R,40.868,-73.919,0\nA..N04R,40.865,-73.927,1\n",
		"trips.txt":        "route_id,trip_id,direction_id,shape_id\nA,t1,0,A..N04R\n",
		"shape_stops.json": `{"A..N04R": ["A01N", "A02N"]}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	static, err := gtfs.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine(&fakeSubway{}, &fakeBuses{}, static, config.AppSettings{}, nil)

	overlays := e.AllLineOverlays()
	if len(overlays) != 1 {
		t.Fatalf("got %d overlays, want 1 (only line A has geometry)", len(overlays))
	}
	o := overlays[0]
	if o.RouteID != "A" || o.ColorHex != "#0039A6" || len(o.Polylines) != 1 {
		t.Errorf("overlay = %+v", o)
	}
}
