package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	track "github.com/wiggapony0925/track"
	"github.com/wiggapony0925/track/bus"
	"github.com/wiggapony0925/track/config"
	"github.com/wiggapony0925/track/gtfs"
	"github.com/wiggapony0925/track/gtfsrt"
)

func main() {
	call := flag.String("call", "nearby", "nearby|grouped|subway|lirr|alerts|elevators|shape|stations|overlays|bus-routes|bus-stops|bus-live|bus-vehicles|bus-shape")
	line := flag.String("line", "A", "subway line id (for -call subway|shape)")
	routeID := flag.String("route", "", "fully-qualified bus route id (e.g. \"MTA NYCT_B63\")")
	stopID := flag.String("stop", "", "fully-qualified bus stop id (e.g. \"MTA_308214\")")
	lat := flag.Float64("lat", 40.7527, "latitude for nearby calls")
	lon := flag.Float64("lon", -73.9772, "longitude for nearby calls")
	radius := flag.Float64("radius", 0, "search radius in meters (0 = configured default)")
	flag.Parse()

	// API keys may live in .env instead of the config file.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.Load(); err != nil {
		logger.Error("loading config failed", "error", err)
		os.Exit(1)
	}
	cfg := config.Config

	static, err := gtfs.Default(cfg.App.StaticDataDir)
	if err != nil {
		logger.Error("loading static tables failed", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.App.HTTPTimeoutMS) * time.Millisecond}
	decoder := gtfsrt.NewDecoder(httpClient, cfg.Keys.MTAAPIKey, static)
	busClient := bus.NewClient(cfg, httpClient, logger)
	engine := track.NewEngine(decoder, busClient, static, cfg.App, logger)

	searchRadius := *radius
	if searchRadius == 0 {
		searchRadius = float64(cfg.App.SearchRadiusMeters)
	}

	ctx := context.Background()
	var out any
	switch *call {
	case "nearby":
		out = engine.Nearby(ctx, *lat, *lon, searchRadius)
	case "grouped":
		out = engine.NearbyGrouped(ctx, *lat, *lon, searchRadius)
	case "subway":
		out, err = decoder.ArrivalsForLine(ctx, strings.ToUpper(*line))
	case "lirr":
		out, err = decoder.CommuterArrivals(ctx)
	case "alerts":
		out, err = decoder.Alerts(ctx)
	case "elevators":
		out, err = decoder.BrokenElevators(ctx)
	case "shape":
		out, err = static.RouteShape(strings.ToUpper(*line))
	case "stations":
		out = engine.AllStations()
	case "overlays":
		out = engine.AllLineOverlays()
	case "bus-routes":
		out, err = busClient.Routes(ctx)
	case "bus-stops":
		out, err = busClient.Stops(ctx, *routeID)
	case "bus-live":
		out, err = busClient.RealtimeArrivals(ctx, *stopID)
	case "bus-vehicles":
		out, err = busClient.VehiclePositions(ctx, *routeID)
	case "bus-shape":
		out, err = busClient.RouteShape(ctx, *routeID)
	default:
		logger.Error("unknown call", "call", *call)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("call failed", "call", *call, "error", err)
		os.Exit(1)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Error("encoding response failed", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}
