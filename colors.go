package track

// Official subway line colors, keyed by the uppercased display name.
var subwayColors = map[string]string{
	"1": "#EE352E", "2": "#EE352E", "3": "#EE352E",
	"4": "#00933C", "5": "#00933C", "6": "#00933C",
	"7": "#B933AD",
	"A": "#0039A6", "C": "#0039A6", "E": "#0039A6",
	"B": "#FF6319", "D": "#FF6319", "F": "#FF6319", "M": "#FF6319",
	"G": "#6CBE45",
	"J": "#996633", "Z": "#996633",
	"L": "#A7A9AC",
	"N": "#FCCC0A", "Q": "#FCCC0A", "R": "#FCCC0A", "W": "#FCCC0A",
	"S": "#808183", "SI": "#808183",
}

const defaultLineColor = "#808183"

// allMapLines is every line drawn on the full system map.
var allMapLines = []string{
	"1", "2", "3", "4", "5", "6", "7",
	"A", "C", "E", "B", "D", "F", "M",
	"G", "J", "Z", "L", "N", "Q", "R", "W",
}

func lineColor(line string) string {
	if c, ok := subwayColors[line]; ok {
		return c
	}
	return defaultLineColor
}
