package config

import "strings"

// LineToFeedGroup maps a subway line id to the feed-group serving it. All
// lines of one group share a single physical feed, so querying any member
// line fetches the same payload.
var LineToFeedGroup = map[string]string{
	"A": "ace", "C": "ace", "E": "ace",
	"G": "g",
	"N": "nqrw", "Q": "nqrw", "R": "nqrw", "W": "nqrw",
	"1": "123456", "2": "123456", "3": "123456",
	"4": "123456", "5": "123456", "6": "123456",
	"B": "bdfm", "D": "bdfm", "F": "bdfm", "M": "bdfm",
	"J": "jz", "Z": "jz",
	"L":  "l",
	"SI": "si",
}

// RepresentativeLines holds one member line per feed-group. Querying these
// covers every physical subway feed exactly once.
var RepresentativeLines = []string{"A", "G", "N", "1", "B", "J", "L"}

// FeedURL resolves a line id, case-insensitively, to its feed-group URL.
// The second return is false when the line id has no known feed-group.
func FeedURL(lineID string) (string, bool) {
	group, ok := LineToFeedGroup[strings.ToUpper(lineID)]
	if !ok {
		return "", false
	}
	switch group {
	case "ace":
		return Config.URLs.SubwayACE, true
	case "g":
		return Config.URLs.SubwayG, true
	case "nqrw":
		return Config.URLs.SubwayNQRW, true
	case "123456":
		return Config.URLs.Subway123456, true
	case "bdfm":
		return Config.URLs.SubwayBDFM, true
	case "jz":
		return Config.URLs.SubwayJZ, true
	case "l":
		return Config.URLs.SubwayL, true
	case "si":
		return Config.URLs.SubwaySI, true
	}
	return "", false
}
