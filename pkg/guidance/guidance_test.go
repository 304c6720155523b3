package guidance

import (
	"testing"

	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/engine/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTurnSign(t *testing.T) {
	tests := []struct {
		prev, curr float64
		want       TurnSign
	}{
		{prev: 90, curr: 95, want: CONTINUE_ON_STREET},
		{prev: 340, curr: 10, want: TURN_SLIGHT_RIGHT},
		{prev: 20, curr: 350, want: TURN_SLIGHT_LEFT},
		{prev: 90, curr: 0, want: TURN_LEFT},
		{prev: 0, curr: 90, want: TURN_RIGHT},
		{prev: 0, curr: 225, want: TURN_SHARP_LEFT},
		{prev: 0, curr: 135, want: TURN_SHARP_RIGHT},
		{prev: 0, curr: 180, want: U_TURN_RIGHT},
		{prev: 10, curr: 185, want: U_TURN_RIGHT},
		{prev: 10, curr: 195, want: U_TURN_LEFT},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, getTurnSign(tt.prev, tt.curr), "%v -> %v", tt.prev, tt.curr)
	}
}

func TestBearingToCompass(t *testing.T) {
	assert.Equal(t, "North", bearingToCompass(0))
	assert.Equal(t, "East", bearingToCompass(90))
	assert.Equal(t, "South West", bearingToCompass(225))
	assert.Equal(t, "North", bearingToCompass(350))
}

func step(name string, from, to da.VertexKey, bearing, length float64) report.RouteStep {
	return report.RouteStep{From: from, To: to, Name: name, Bearing: bearing, Length: length}
}

func TestGetDrivingDirections(t *testing.T) {
	a := da.NewVertexKey(0, 0)
	b := da.NewVertexKey(0.01, 0)
	c := da.NewVertexKey(0.02, 0)
	d := da.NewVertexKey(0.02, 0.01)

	// east along A St, north up the dead end B St and back, then west home
	steps := []report.RouteStep{
		step("A St", a, b, 90, 1),
		step("A St", b, c, 90, 1),
		step("B St", c, d, 0, 2),
		step("B St", d, c, 180, 2),
		step("A St", c, a, 270, 2),
	}

	got := NewDirectionBuilder().GetDrivingDirections(steps)
	require.Len(t, got, 5)

	assert.Equal(t, START, got[0].Sign)
	assert.Equal(t, "Head East on A St", got[0].Description)
	assert.Equal(t, a.Coordinate(), got[0].Point)
	assert.Equal(t, 2.0, got[0].Distance)
	assert.Equal(t, 2, got[0].StepCount)

	assert.Equal(t, TURN_LEFT, got[1].Sign)
	assert.Equal(t, "Turn left onto B St", got[1].Description)
	assert.Equal(t, 2.0, got[1].Cumulative)

	assert.Equal(t, U_TURN_RIGHT, got[2].Sign)
	assert.Equal(t, "Make U-turn right on B St", got[2].Description)
	assert.Equal(t, d.Coordinate(), got[2].Point)

	assert.Equal(t, TURN_RIGHT, got[3].Sign)
	assert.Equal(t, "Turn right onto A St", got[3].Description)

	assert.Equal(t, FINISH, got[4].Sign)
	assert.Equal(t, a.Coordinate(), got[4].Point)
	assert.Equal(t, 8.0, got[4].Cumulative)
	assert.Equal(t, 0.0, got[4].Distance)
}

func TestGetDrivingDirectionsEmpty(t *testing.T) {
	assert.Empty(t, BuildDirections(&report.Report{}))
}

func TestTurnSignText(t *testing.T) {
	txt, err := TURN_SHARP_LEFT.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "TURN_SHARP_LEFT", string(txt))
	assert.Equal(t, "UNKNOWN", TurnSign(42).String())
}
