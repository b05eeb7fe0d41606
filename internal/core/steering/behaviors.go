package steering

import (
	"math"

	"github.com/zeusync/steering/internal/core/physics"
)

var (
	_ Behavior = (*Seek)(nil)
	_ Behavior = (*Flee)(nil)
	_ Behavior = (*Arrive)(nil)
	_ Behavior = (*Face)(nil)
	_ Behavior = (*Pursuit)(nil)
	_ Behavior = (*Evade)(nil)
	_ Behavior = (*Wander)(nil)
)

// base carries the target shared by all behaviors.
type base struct {
	target Target
}

func (b *base) SetTarget(target Target) { b.target = target }
func (b *base) Target() Target          { return b.target }

// seek points from pos to target, collapsing to zero inside closeDistance.
func seek(target, pos physics.Vec2, closeDistance float64) Output {
	v := target.Sub(pos)
	if v.LengthSquared() <= closeDistance*closeDistance {
		v = physics.Zero
	}
	return Output{LinearVelocity: v, IsValid: true}
}

// predictionTime is how far ahead a moving target is extrapolated: the time
// the agent would need to cover distance at full speed, capped at maxTime.
func predictionTime(distance, maxSpeed, maxTime float64) float64 {
	if maxSpeed <= 0 {
		return maxTime
	}
	return math.Min(distance/maxSpeed, maxTime)
}

// Seek steers straight at the target and stops once within CloseDistance.
type Seek struct {
	base
	params SeekParams
}

func NewSeek(params SeekParams) *Seek {
	return &Seek{params: params}
}

func (s *Seek) Kind() Kind { return KindSeek }

func (s *Seek) CalculateSteering(_ float64, agent Agent) Output {
	return seek(s.target.Position, agent.Position(), s.params.CloseDistance)
}

// Flee steers directly away from the target at unit strength.
type Flee struct {
	base
}

func NewFlee() *Flee { return &Flee{} }

func (f *Flee) Kind() Kind { return KindFlee }

func (f *Flee) CalculateSteering(_ float64, agent Agent) Output {
	away := agent.Position().Sub(f.target.Position)
	return Output{LinearVelocity: away.Normalize(), IsValid: true}
}

// Arrive seeks the target but damps the agent's max speed linearly between
// SlowRadius and TargetRadius, halting it inside TargetRadius.
type Arrive struct {
	base
	params ArriveParams
}

func NewArrive(params ArriveParams) *Arrive {
	return &Arrive{params: params}
}

func (a *Arrive) Kind() Kind { return KindArrive }

func (a *Arrive) Params() ArriveParams { return a.params }

func (a *Arrive) CalculateSteering(_ float64, agent Agent) Output {
	toTarget := a.target.Position.Sub(agent.Position())
	distance := toTarget.Length()

	switch {
	case distance > a.params.SlowRadius:
		agent.ResetMaxSpeed()
	case distance <= a.params.TargetRadius:
		agent.SetMaxLinearSpeed(0)
	default:
		margin := (distance - a.params.TargetRadius) / (a.params.SlowRadius - a.params.TargetRadius)
		agent.SetMaxLinearSpeed(a.params.MaxSpeed * margin)
	}

	return Output{LinearVelocity: toTarget, IsValid: true}
}

// Face turns the agent in place towards the target.
type Face struct {
	base
	params FaceParams
}

func NewFace(params FaceParams) *Face {
	return &Face{params: params}
}

func (f *Face) Kind() Kind { return KindFace }

func (f *Face) CalculateSteering(deltaT float64, agent Agent) Output {
	agent.SetMaxLinearSpeed(0)
	out := Output{IsValid: true}

	toTarget := f.target.Position.Sub(agent.Position())
	if toTarget.IsZero() {
		return out
	}

	delta := physics.SignedAngle(agent.Forward(), toTarget)
	if math.Abs(delta) <= f.params.AlignTolerance {
		return out
	}

	if deltaT <= 0 {
		deltaT = 1
	}
	limit := math.Max(agent.MaxAngularSpeed(), 0)
	out.AngularVelocity = math.Max(-limit, math.Min(limit, delta/deltaT))
	return out
}

// Pursuit seeks the point where a moving target is predicted to be.
type Pursuit struct {
	base
	params PursuitParams
}

func NewPursuit(params PursuitParams) *Pursuit {
	return &Pursuit{params: params}
}

func (p *Pursuit) Kind() Kind { return KindPursuit }

func (p *Pursuit) CalculateSteering(_ float64, agent Agent) Output {
	pos := agent.Position()
	distance := pos.Distance(p.target.Position)
	t := predictionTime(distance, agent.MaxLinearSpeed(), p.params.MaxPredictionTime)

	predicted := p.target.Position.Add(p.target.LinearVelocity.Scale(t))
	return seek(predicted, pos, p.params.CloseDistance)
}

// Evade flees from a threat's predicted position while it is within EvadeRadius.
type Evade struct {
	base
	params EvadeParams
}

func NewEvade(params EvadeParams) *Evade {
	return &Evade{params: params}
}

func (e *Evade) Kind() Kind { return KindEvade }

func (e *Evade) Params() EvadeParams { return e.params }

func (e *Evade) CalculateSteering(_ float64, agent Agent) Output {
	pos := agent.Position()
	distance := pos.Distance(e.target.Position)
	if distance > e.params.EvadeRadius {
		return Output{}
	}

	maxSpeed := agent.MaxLinearSpeed()
	t := predictionTime(distance, maxSpeed, e.params.MaxPredictionTime)
	predicted := e.target.Position.Add(e.target.LinearVelocity.Scale(t))

	return Output{LinearVelocity: pos.Sub(predicted).Scale(maxSpeed), IsValid: true}
}
