package guidance

import (
	"github.com/lintang-b-s/Postmanx/pkg/engine/report"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
)

// Instruction is one maneuver of the inspection route and the stretch driven after it.
type Instruction struct {
	Sign        TurnSign       `json:"sign"`
	Description string         `json:"description"`
	StreetName  string         `json:"street_name"`
	Point       geo.Coordinate `json:"point"`
	Heading     float64        `json:"heading"`
	// Distance is driven after the maneuver, Cumulative before it.
	Distance   float64 `json:"distance"`
	Cumulative float64 `json:"cumulative"`
	StepCount  int     `json:"step_count"`
}

type DirectionBuilder struct {
	instructions       []Instruction
	prevBearing        float64
	cumulativeDistance float64
	lastPoint          geo.Coordinate
}

func NewDirectionBuilder() *DirectionBuilder {
	return &DirectionBuilder{
		instructions: make([]Instruction, 0),
	}
}

// GetDrivingDirections turns the route steps into maneuvers. a new instruction starts whenever the street name
// changes or the route doubles back on itself. the route is closed, so the last instruction is FINISH at the start.
func (db *DirectionBuilder) GetDrivingDirections(steps []report.RouteStep) []Instruction {
	if len(steps) == 0 {
		return []Instruction{}
	}
	for _, step := range steps {
		db.buildInstruction(step)
	}
	db.buildFinalInstruction()
	return db.instructions
}

func (db *DirectionBuilder) buildInstruction(step report.RouteStep) {
	if len(db.instructions) == 0 {
		db.addInstruction(START, step)
	} else {
		turnSign := getTurnSign(db.prevBearing, step.Bearing)
		cur := &db.instructions[len(db.instructions)-1]
		if turnSign.IsUTurn() || step.Name != cur.StreetName {
			db.addInstruction(turnSign, step)
		}
	}

	cur := &db.instructions[len(db.instructions)-1]
	cur.Distance += step.Length
	cur.StepCount++

	db.cumulativeDistance += step.Length
	db.prevBearing = step.Bearing
	db.lastPoint = step.To.Coordinate()
}

func (db *DirectionBuilder) addInstruction(sign TurnSign, step report.RouteStep) {
	db.instructions = append(db.instructions, Instruction{
		Sign:        sign,
		Description: turnDescription(sign, step.Name, step.Bearing),
		StreetName:  step.Name,
		Point:       step.From.Coordinate(),
		Heading:     step.Bearing,
		Cumulative:  db.cumulativeDistance,
	})
}

func (db *DirectionBuilder) buildFinalInstruction() {
	db.instructions = append(db.instructions, Instruction{
		Sign:        FINISH,
		Description: turnDescription(FINISH, "", 0),
		Point:       db.lastPoint,
		Heading:     db.prevBearing,
		Cumulative:  db.cumulativeDistance,
	})
}

// BuildDirections is a shorthand for NewDirectionBuilder().GetDrivingDirections(rep.Steps).
func BuildDirections(rep *report.Report) []Instruction {
	return NewDirectionBuilder().GetDrivingDirections(rep.Steps)
}
