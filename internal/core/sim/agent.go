package sim

import (
	"math"

	"github.com/zeusync/steering/internal/core/physics"
	"github.com/zeusync/steering/internal/core/steering"
)

var _ steering.Agent = (*KinematicAgent)(nil)

// KinematicAgent is a massless body that follows steering output directly.
// It is not safe for concurrent use; World serializes access.
type KinematicAgent struct {
	position        physics.Vec2
	velocity        physics.Vec2
	rotation        float64
	angularVelocity float64

	maxLinearSpeed     float64
	defaultLinearSpeed float64
	maxAngularSpeed    float64
}

// NewKinematicAgent places an agent at position facing rotation radians.
func NewKinematicAgent(position physics.Vec2, rotation, maxLinearSpeed, maxAngularSpeed float64) *KinematicAgent {
	return &KinematicAgent{
		position:           position,
		rotation:           physics.NormalizeAngle(rotation),
		maxLinearSpeed:     maxLinearSpeed,
		defaultLinearSpeed: maxLinearSpeed,
		maxAngularSpeed:    maxAngularSpeed,
	}
}

func (a *KinematicAgent) Position() physics.Vec2       { return a.position }
func (a *KinematicAgent) LinearVelocity() physics.Vec2 { return a.velocity }
func (a *KinematicAgent) Rotation() float64            { return a.rotation }
func (a *KinematicAgent) AngularVelocity() float64     { return a.angularVelocity }
func (a *KinematicAgent) Forward() physics.Vec2        { return physics.FromAngle(a.rotation, 1) }
func (a *KinematicAgent) MaxLinearSpeed() float64      { return a.maxLinearSpeed }
func (a *KinematicAgent) DefaultLinearSpeed() float64  { return a.defaultLinearSpeed }
func (a *KinematicAgent) MaxAngularSpeed() float64     { return a.maxAngularSpeed }
func (a *KinematicAgent) ResetMaxSpeed()               { a.maxLinearSpeed = a.defaultLinearSpeed }

func (a *KinematicAgent) SetMaxLinearSpeed(speed float64) {
	a.maxLinearSpeed = math.Max(speed, 0)
}

// Apply integrates one tick of steering output.
//
// The linear component is treated as movement input: it is clamped to unit
// length and scaled by the current max linear speed. Without an explicit
// angular velocity a moving agent turns to face its direction of travel.
func (a *KinematicAgent) Apply(out steering.Output, dt float64) {
	if !out.IsValid {
		a.velocity = physics.Zero
		a.angularVelocity = 0
		return
	}

	a.velocity = out.LinearVelocity.ClampLength(1).Scale(a.maxLinearSpeed)
	a.position = a.position.Add(a.velocity.Scale(dt))

	switch {
	case out.AngularVelocity != 0:
		w := math.Max(-a.maxAngularSpeed, math.Min(a.maxAngularSpeed, out.AngularVelocity))
		a.angularVelocity = w
		a.rotation = physics.NormalizeAngle(a.rotation + w*dt)
	case !a.velocity.IsZero():
		a.angularVelocity = 0
		a.rotation = a.velocity.Angle()
	default:
		a.angularVelocity = 0
	}
}

// target describes the agent as something another agent can steer relative to.
func (a *KinematicAgent) target() steering.Target {
	return steering.Target{
		Position:        a.position,
		Orientation:     a.rotation,
		LinearVelocity:  a.velocity,
		AngularVelocity: a.angularVelocity,
	}
}
