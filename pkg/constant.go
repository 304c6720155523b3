package pkg

import "fmt"

const (
	INF_WEIGHT float64 = 1e15
)

// MatchingMode selects how odd-degree vertices are paired and connected.
type MatchingMode uint8

const (
	// BASE pairs only odd vertices already joined by an edge and duplicates that edge.
	BASE MatchingMode = iota
	// GREEDY_HOPCOUNT pairs by unweighted shortest path and links the pair directly.
	GREEDY_HOPCOUNT
	// GREEDY_WEIGHTED pairs by length-weighted shortest path and duplicates every edge on it.
	GREEDY_WEIGHTED
)

func (m MatchingMode) String() string {
	switch m {
	case BASE:
		return "base"
	case GREEDY_HOPCOUNT:
		return "greedy-hopcount"
	case GREEDY_WEIGHTED:
		return "greedy-weighted"
	default:
		return fmt.Sprintf("MatchingMode(%d)", uint8(m))
	}
}

// ParseMatchingMode. empty string means greedy-weighted.
func ParseMatchingMode(s string) (MatchingMode, bool) {
	switch s {
	case "base":
		return BASE, true
	case "greedy-hopcount", "hopcount":
		return GREEDY_HOPCOUNT, true
	case "greedy-weighted", "weighted", "":
		return GREEDY_WEIGHTED, true
	default:
		return 0, false
	}
}

type OsmHighwayType uint8

// enum of osm highway values that carry streets worth inspecting: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	default:
		return UNKNOWN
	}
}
