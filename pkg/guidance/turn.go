package guidance

import (
	"fmt"
	"math"
	"strings"
)

type TurnSign int

const (
	U_TURN_LEFT        TurnSign = -8
	TURN_SHARP_LEFT    TurnSign = -3
	TURN_LEFT          TurnSign = -2
	TURN_SLIGHT_LEFT   TurnSign = -1
	CONTINUE_ON_STREET TurnSign = 0
	TURN_SLIGHT_RIGHT  TurnSign = 1
	TURN_RIGHT         TurnSign = 2
	TURN_SHARP_RIGHT   TurnSign = 3
	FINISH             TurnSign = 4
	U_TURN_RIGHT       TurnSign = 8
	START              TurnSign = 101
)

func (s TurnSign) String() string {
	switch s {
	case U_TURN_LEFT:
		return "U_TURN_LEFT"
	case TURN_SHARP_LEFT:
		return "TURN_SHARP_LEFT"
	case TURN_LEFT:
		return "TURN_LEFT"
	case TURN_SLIGHT_LEFT:
		return "TURN_SLIGHT_LEFT"
	case CONTINUE_ON_STREET:
		return "CONTINUE_ON_STREET"
	case TURN_SLIGHT_RIGHT:
		return "TURN_SLIGHT_RIGHT"
	case TURN_RIGHT:
		return "TURN_RIGHT"
	case TURN_SHARP_RIGHT:
		return "TURN_SHARP_RIGHT"
	case FINISH:
		return "FINISH"
	case U_TURN_RIGHT:
		return "U_TURN_RIGHT"
	case START:
		return "START"
	default:
		return "UNKNOWN"
	}
}

func (s TurnSign) IsUTurn() bool {
	return s == U_TURN_LEFT || s == U_TURN_RIGHT
}

func (s TurnSign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

/*
deltaBearing. signed change of heading in degrees, in (-180, 180]. negative turns left.

	prev 340°, curr 10°:  10 - 340 = -330, a right turn of 30°.
	prev 20°,  curr 350°: 350 - 20 = 330, a left turn of 30°.
*/
func deltaBearing(prevBearing, bearing float64) float64 {
	d := math.Mod(bearing-prevBearing, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// getTurnSign classifies the heading change between two consecutive route segments.
func getTurnSign(prevBearing, bearing float64) TurnSign {
	delta := deltaBearing(prevBearing, bearing)
	deltaDegree := math.Abs(delta)
	switch {
	case deltaDegree < 12:
		return CONTINUE_ON_STREET
	case deltaDegree < 40:
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	case deltaDegree < 105:
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	case deltaDegree < 170:
		if delta < 0 {
			return TURN_SHARP_LEFT
		}
		return TURN_SHARP_RIGHT
	default:
		// a dead end or a doubled-back segment
		if delta < 0 {
			return U_TURN_LEFT
		}
		return U_TURN_RIGHT
	}
}

func bearingToCompass(bearing float64) string {
	if bearing < 22.5 {
		return "North"
	} else if bearing < 67.5 {
		return "North East"
	} else if bearing < 112.5 {
		return "East"
	} else if bearing < 157.5 {
		return "South East"
	} else if bearing < 202.5 {
		return "South"
	} else if bearing < 247.5 {
		return "South West"
	} else if bearing < 292.5 {
		return "West"
	} else if bearing < 337.5 {
		return "North West"
	}
	return "North"
}

func getDirectionDescription(sign TurnSign) string {
	switch sign {
	case U_TURN_LEFT:
		return "Make U-turn left"
	case U_TURN_RIGHT:
		return "Make U-turn right"
	case TURN_SHARP_LEFT:
		return "Turn sharp left"
	case TURN_LEFT:
		return "Turn left"
	case TURN_SLIGHT_LEFT:
		return "Turn slight left"
	case TURN_SLIGHT_RIGHT:
		return "Turn slight right"
	case TURN_RIGHT:
		return "Turn right"
	case TURN_SHARP_RIGHT:
		return "Turn sharp right"
	default:
		return ""
	}
}

func turnDescription(sign TurnSign, streetName string, heading float64) string {
	switch sign {
	case START:
		return fmt.Sprintf("Head %s on %s", bearingToCompass(heading), streetName)
	case FINISH:
		return "You are back at the starting point"
	case CONTINUE_ON_STREET:
		if isEmpty(streetName) {
			return "Continue"
		}
		return fmt.Sprintf("Continue onto %s", streetName)
	}

	dir := getDirectionDescription(sign)
	if isEmpty(streetName) {
		return dir
	}
	if sign.IsUTurn() {
		return fmt.Sprintf("%s on %s", dir, streetName)
	}
	return fmt.Sprintf("%s onto %s", dir, streetName)
}

func isEmpty(str string) bool {
	return strings.TrimSpace(str) == ""
}
