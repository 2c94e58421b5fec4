// Package gtfs holds the static reference tables: the stop index, the route
// geometry builder, and the polyline codec. Tables are parsed once from a
// data directory and held immutably for the process lifetime.
package gtfs
