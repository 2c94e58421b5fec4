package gtfs

import (
	"math"
	"strings"
)

// EncodePolyline compresses a coordinate list into the Google polyline
// format: coordinates scaled by 1e5, delta-encoded, zig-zag signed, split
// into 5-bit chunks with a continuation bit and offset by 63. Map clients
// depend on bit-exact output.
func EncodePolyline(points []Point) string {
	var b strings.Builder
	prevLat, prevLon := 0, 0
	for _, p := range points {
		lat := int(math.Round(p.Lat * 1e5))
		lon := int(math.Round(p.Lon * 1e5))
		encodePolylineValue(&b, lat-prevLat)
		encodePolylineValue(&b, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return b.String()
}

func encodePolylineValue(b *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		b.WriteByte(byte(0x20|(u&0x1f)) + 63)
		u >>= 5
	}
	b.WriteByte(byte(u) + 63)
}

// DecodePolyline reverses EncodePolyline. Truncated input yields the points
// decoded so far.
func DecodePolyline(s string) []Point {
	var points []Point
	lat, lon := 0, 0
	i := 0
	next := func() (int, bool) {
		result, shift := 0, 0
		for {
			if i >= len(s) {
				return 0, false
			}
			c := int(s[i]) - 63
			i++
			result |= (c & 0x1f) << shift
			shift += 5
			if c < 0x20 {
				break
			}
		}
		if result&1 != 0 {
			return ^(result >> 1), true
		}
		return result >> 1, true
	}
	for i < len(s) {
		dLat, ok := next()
		if !ok {
			break
		}
		dLon, ok := next()
		if !ok {
			break
		}
		lat += dLat
		lon += dLon
		points = append(points, Point{Lat: float64(lat) / 1e5, Lon: float64(lon) / 1e5})
	}
	return points
}
