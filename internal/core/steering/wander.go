package steering

import (
	"math/rand/v2"

	"github.com/zeusync/steering/internal/core/physics"
)

// Wander seeks a point on a circle projected ahead of the agent. The point's
// angle on the circle performs a bounded random walk between calls.
type Wander struct {
	base
	offset         float64
	radius         float64
	maxAngleChange float64
	wanderAngle    float64
	closeDistance  float64

	rng        *rand.Rand
	lastCenter physics.Vec2
	lastTarget physics.Vec2
}

// NewWander creates a Wander behavior. The wander point is sought like Seek,
// so it is ignored once within CloseDistance. A nil rng falls back to a
// randomly seeded source.
func NewWander(params WanderParams, seekParams SeekParams, rng *rand.Rand) *Wander {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Wander{
		offset:         params.Offset,
		radius:         params.Radius,
		maxAngleChange: physics.ToRadians(params.MaxAngleChangeDeg),
		closeDistance:  seekParams.CloseDistance,
		rng:            rng,
	}
}

func (w *Wander) Kind() Kind { return KindWander }

func (w *Wander) SetWanderOffset(offset float64) { w.offset = offset }
func (w *Wander) SetWanderRadius(radius float64) { w.radius = radius }
func (w *Wander) SetMaxAngleChange(rad float64)  { w.maxAngleChange = rad }

func (w *Wander) WanderOffset() float64   { return w.offset }
func (w *Wander) WanderRadius() float64   { return w.radius }
func (w *Wander) MaxAngleChange() float64 { return w.maxAngleChange }
func (w *Wander) WanderAngle() float64    { return w.wanderAngle }

// WanderCenter is the circle center used on the most recent call.
func (w *Wander) WanderCenter() physics.Vec2 { return w.lastCenter }

// WanderTarget is the point sought on the most recent call.
func (w *Wander) WanderTarget() physics.Vec2 { return w.lastTarget }

func (w *Wander) CalculateSteering(_ float64, agent Agent) Output {
	jitter := (w.rng.Float64()*2 - 1) * w.maxAngleChange
	w.wanderAngle = physics.NormalizeAngle(w.wanderAngle + jitter)

	pos := agent.Position()
	w.lastCenter = pos.Add(agent.Forward().Scale(w.offset))
	w.lastTarget = w.lastCenter.Add(physics.FromAngle(w.wanderAngle, w.radius))

	return seek(w.lastTarget, pos, w.closeDistance)
}
