// Package bus reconciles the two bus upstream API families: the OBA-style
// discovery protocol for routes, stops and shapes, and the SIRI-style
// telemetry protocol for live arrivals and vehicle positions. Both use
// fully-qualified, agency-prefixed route and stop ids.
package bus
