package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeusync/steering/internal/core/physics"
	"github.com/zeusync/steering/internal/core/steering"
)

func TestKinematicAgentApplyLinear(t *testing.T) {
	a := NewKinematicAgent(physics.Zero, 0, 100, 2)

	a.Apply(steering.Output{LinearVelocity: physics.V(0, 50), IsValid: true}, 0.5)

	assert.True(t, a.LinearVelocity().ApproxEqual(physics.V(0, 100), 1e-9))
	assert.True(t, a.Position().ApproxEqual(physics.V(0, 50), 1e-9))
	assert.InDelta(t, math.Pi/2, a.Rotation(), 1e-9, "auto-orients to travel direction")
}

func TestKinematicAgentSmallInputIsNotAmplified(t *testing.T) {
	a := NewKinematicAgent(physics.Zero, 0, 100, 2)
	a.Apply(steering.Output{LinearVelocity: physics.V(0.5, 0), IsValid: true}, 1)
	assert.True(t, a.Position().ApproxEqual(physics.V(50, 0), 1e-9))
}

func TestKinematicAgentApplyAngular(t *testing.T) {
	a := NewKinematicAgent(physics.V(1, 1), 0, 100, 2)
	a.SetMaxLinearSpeed(0)

	a.Apply(steering.Output{AngularVelocity: 10, IsValid: true}, 0.25)

	assert.InDelta(t, 0.5, a.Rotation(), 1e-9)
	assert.InDelta(t, 2.0, a.AngularVelocity(), 1e-9)
	assert.Equal(t, physics.V(1, 1), a.Position())
}

func TestKinematicAgentInvalidOutputStops(t *testing.T) {
	a := NewKinematicAgent(physics.Zero, 0, 100, 2)
	a.Apply(steering.Output{LinearVelocity: physics.V(1, 0), IsValid: true}, 1)
	assert.False(t, a.LinearVelocity().IsZero())

	a.Apply(steering.Output{LinearVelocity: physics.V(1, 0)}, 1)
	assert.True(t, a.LinearVelocity().IsZero())
	assert.True(t, a.Position().ApproxEqual(physics.V(100, 0), 1e-9))
}

func TestKinematicAgentMaxSpeed(t *testing.T) {
	a := NewKinematicAgent(physics.Zero, 3*math.Pi, 100, 2)
	assert.InDelta(t, math.Pi, a.Rotation(), 1e-9)

	a.SetMaxLinearSpeed(-5)
	assert.Zero(t, a.MaxLinearSpeed())

	a.ResetMaxSpeed()
	assert.Equal(t, 100.0, a.MaxLinearSpeed())
	assert.Equal(t, 100.0, a.DefaultLinearSpeed())
}
