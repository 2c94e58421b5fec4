package track

import (
	"context"
	"log/slog"
	"time"

	"github.com/wiggapony0925/track/bus"
	"github.com/wiggapony0925/track/config"
	"github.com/wiggapony0925/track/gtfs"
	"github.com/wiggapony0925/track/gtfsrt"
)

// SubwaySource supplies real-time subway arrivals per line.
type SubwaySource interface {
	ArrivalsForLine(ctx context.Context, lineID string) ([]gtfsrt.Arrival, error)
}

// BusSource supplies nearby bus stops and their live arrivals.
type BusSource interface {
	NearbyStops(ctx context.Context, lat, lon, radiusM float64) ([]bus.Stop, error)
	RealtimeArrivals(ctx context.Context, stopID string) ([]bus.Arrival, error)
}

// Engine fans out to the two modes concurrently and merges the results.
// A failing source degrades the response instead of failing it.
type Engine struct {
	subway SubwaySource
	buses  BusSource
	static *gtfs.Static
	cfg    config.AppSettings
	logger *slog.Logger
	now    func() time.Time
}

// NewEngine wires the engine over its sources and the static stop index.
func NewEngine(subway SubwaySource, buses BusSource, static *gtfs.Static, cfg config.AppSettings, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		subway: subway,
		buses:  buses,
		static: static,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// AllLineOverlays returns the encoded geometry of every subway line with
// its color, for drawing the full system map in one call.
func (e *Engine) AllLineOverlays() []LineOverlay {
	overlays := []LineOverlay{}
	for _, line := range allMapLines {
		shape, err := e.static.RouteShape(line)
		if err != nil {
			continue
		}
		overlays = append(overlays, LineOverlay{
			RouteID:   line,
			ColorHex:  lineColor(line),
			Polylines: shape.Polylines,
		})
	}
	return overlays
}

// AllStations returns every unique station with the lines serving it.
func (e *Engine) AllStations() []gtfs.Station {
	return e.static.AllStations()
}
