package steering

import "github.com/zeusync/steering/internal/core/physics"

// fakeAgent is a minimal Agent recording speed mutations.
type fakeAgent struct {
	pos             physics.Vec2
	vel             physics.Vec2
	rot             float64
	maxSpeed        float64
	defaultMaxSpeed float64
	maxAngular      float64
	resets          int
}

func newFakeAgent(pos physics.Vec2, maxSpeed float64) *fakeAgent {
	return &fakeAgent{pos: pos, maxSpeed: maxSpeed, defaultMaxSpeed: maxSpeed, maxAngular: 2}
}

func (a *fakeAgent) Position() physics.Vec2       { return a.pos }
func (a *fakeAgent) LinearVelocity() physics.Vec2 { return a.vel }
func (a *fakeAgent) Rotation() float64            { return a.rot }
func (a *fakeAgent) Forward() physics.Vec2        { return physics.FromAngle(a.rot, 1) }
func (a *fakeAgent) MaxLinearSpeed() float64      { return a.maxSpeed }
func (a *fakeAgent) SetMaxLinearSpeed(s float64)  { a.maxSpeed = s }
func (a *fakeAgent) MaxAngularSpeed() float64     { return a.maxAngular }

func (a *fakeAgent) ResetMaxSpeed() {
	a.resets++
	a.maxSpeed = a.defaultMaxSpeed
}
