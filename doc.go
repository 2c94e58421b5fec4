// Package track merges real-time subway and bus data into the unified
// nearby views served to clients. Source decoders live in the subpackages;
// this package owns the concurrent fan-out, fault tolerance, and the
// grouping and ordering rules.
package track
