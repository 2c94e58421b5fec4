package gtfsrt

import (
	"context"
	"strings"

	"github.com/wiggapony0925/track/config"
)

// Alerts fetches the JSON service alert feed and keeps only alerts of
// severity WARNING or SEVERE.
func (d *Decoder) Alerts(ctx context.Context) ([]Alert, error) {
	var doc map[string]any
	if err := d.fetchJSON(ctx, config.Config.URLs.AlertsJSON, &doc); err != nil {
		return nil, err
	}
	alerts := []Alert{}
	for _, raw := range asList(doc["entity"]) {
		alert := asMap(asMap(raw)["alert"])
		severity := asString(alert["severity_level"])
		if severity != "WARNING" && severity != "SEVERE" {
			continue
		}
		routeID := ""
		if informed := asList(alert["informed_entity"]); len(informed) > 0 {
			routeID = asString(asMap(informed[0])["route_id"])
		}
		title := "Service Alert"
		if tr := asList(asMap(alert["header_text"])["translation"]); len(tr) > 0 {
			if text, ok := asMap(tr[0])["text"]; ok {
				title = asString(text)
			}
		}
		description := ""
		if tr := asList(asMap(alert["description_text"])["translation"]); len(tr) > 0 {
			description = asString(asMap(tr[0])["text"])
		}
		alerts = append(alerts, Alert{
			RouteID:     routeID,
			Title:       title,
			Description: description,
			Severity:    strings.ToLower(severity),
		})
	}
	return alerts, nil
}

// BrokenElevators fetches the equipment outage feed and returns only units
// currently out of service. The feed arrives either as a bare list or
// wrapped under "results".
func (d *Decoder) BrokenElevators(ctx context.Context) ([]ElevatorOutage, error) {
	var doc any
	if err := d.fetchJSON(ctx, config.Config.URLs.ElevatorsJSON, &doc); err != nil {
		return nil, err
	}
	items := asList(doc)
	if items == nil {
		items = asList(asMap(doc)["results"])
	}
	outages := []ElevatorOutage{}
	for _, raw := range items {
		item := asMap(raw)
		if item == nil {
			continue
		}
		isActive := "Y"
		if v, ok := item["isactive"]; ok {
			isActive = asString(v)
		}
		if strings.ToUpper(isActive) == "Y" {
			continue
		}
		outage := ElevatorOutage{
			Station:       "Unknown",
			EquipmentType: "Elevator",
			Description:   asString(item["serving"]),
			OutageSince:   asString(item["outagedate"]),
		}
		if s := asString(item["station"]); s != "" {
			outage.Station = s
		}
		if s := asString(item["equipmenttype"]); s != "" {
			outage.EquipmentType = s
		}
		outages = append(outages, outage)
	}
	return outages, nil
}

// Minimal tolerant lookups for the two JSON feeds; absent or wrong-typed
// fields degrade to zero values.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
