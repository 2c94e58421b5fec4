// Package gtfsrt decodes the real-time upstream feeds: GTFS-Realtime
// protobuf trip updates for subway and commuter rail, plus the JSON service
// alert and elevator outage feeds.
package gtfsrt
