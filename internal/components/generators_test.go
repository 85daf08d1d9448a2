package components

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoltageSource_Sine(t *testing.T) {
	// 1Hz, dt chosen so 250 steps land on a quarter period.
	vs := NewVoltageSource("VS", 1.0, 2.0)
	for i := 0; i < 250; i++ {
		vs.Step(0.001)
	}
	assert.InDelta(t, 2.0*math.Sin(2*math.Pi*0.25), readOutput(t, vs, "out"), 1e-9)

	vs.Reset()
	assert.Equal(t, 0.0, readOutput(t, vs, "out"))
}

func TestTriangleWave_Shape(t *testing.T) {
	tw := NewTriangleWave("TRI", 1.0, 1.0)

	// Quarter period: risen from -1 to 0.
	for i := 0; i < 250; i++ {
		tw.Step(0.001)
	}
	assert.InDelta(t, 0.0, readOutput(t, tw, "out"), 1e-9)

	// Half period: peak.
	for i := 0; i < 250; i++ {
		tw.Step(0.001)
	}
	assert.InDelta(t, 1.0, readOutput(t, tw, "out"), 1e-9)

	tw.Reset()
	assert.Equal(t, -1.0, readOutput(t, tw, "out"))
}

func TestSawtoothWave_Ramp(t *testing.T) {
	sw := NewSawtoothWave("SAW", 1.0, 2.0)

	for i := 0; i < 500; i++ {
		sw.Step(0.001)
	}
	// Half period: ramp midpoint.
	assert.InDelta(t, 0.0, readOutput(t, sw, "out"), 1e-9)

	for i := 0; i < 250; i++ {
		sw.Step(0.001)
	}
	assert.InDelta(t, 1.0, readOutput(t, sw, "out"), 1e-9)

	sw.Reset()
	assert.Equal(t, -2.0, readOutput(t, sw, "out"))
}

func TestSquareWave_DutyCycle(t *testing.T) {
	sq := NewSquareWave("SQ", 1.0, 1.0, 0.25)

	sq.Step(0.1) // phase 0.1 < duty
	assert.Equal(t, 1.0, readOutput(t, sq, "out"))

	for i := 0; i < 3; i++ { // phase 0.4 >= duty
		sq.Step(0.1)
	}
	assert.Equal(t, -1.0, readOutput(t, sq, "out"))

	sq.Reset()
	assert.Equal(t, 1.0, readOutput(t, sq, "out"))
}

func TestGenerators_PeriodWraps(t *testing.T) {
	sw := NewSawtoothWave("SAW", 10.0, 1.0)
	// 1.05 periods in: same phase as 0.05 periods.
	for i := 0; i < 105; i++ {
		sw.Step(0.001)
	}
	assert.InDelta(t, -1.0+2.0*0.05, readOutput(t, sw, "out"), 1e-9)
}
