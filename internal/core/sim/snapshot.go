package sim

import (
	"github.com/zeusync/steering/internal/core/physics"
	"github.com/zeusync/steering/internal/core/steering"
)

// Frame is a serializable view of the world after a tick.
type Frame struct {
	Tick    uint64       `json:"tick"`
	Elapsed float64      `json:"elapsed"`
	Agents  []AgentState `json:"agents"`
}

// AgentState is one agent within a Frame.
type AgentState struct {
	ID              ID              `json:"id"`
	Name            string          `json:"name"`
	Behavior        steering.Kind   `json:"behavior"`
	Position        physics.Vec2    `json:"position"`
	Velocity        physics.Vec2    `json:"velocity"`
	Rotation        float64         `json:"rotation"`
	AngularVelocity float64         `json:"angular_velocity"`
	MaxLinearSpeed  float64         `json:"max_linear_speed"`
	Target          physics.Vec2    `json:"target"`
	Following       string          `json:"following,omitempty"`
	Steering        steering.Output `json:"steering"`
	Debug           Debug           `json:"debug"`
}

// Debug carries the shapes a viewer would draw for the active behavior.
type Debug struct {
	SlowRadius   float64       `json:"slow_radius,omitempty"`
	TargetRadius float64       `json:"target_radius,omitempty"`
	EvadeRadius  float64       `json:"evade_radius,omitempty"`
	WanderCenter *physics.Vec2 `json:"wander_center,omitempty"`
	WanderRadius float64       `json:"wander_radius,omitempty"`
	WanderTarget *physics.Vec2 `json:"wander_target,omitempty"`
}

// Snapshot captures the current state of every agent in insertion order.
func (w *World) Snapshot() Frame {
	w.mu.RLock()
	defer w.mu.RUnlock()

	frame := Frame{
		Tick:    w.tick,
		Elapsed: w.elapsed,
		Agents:  make([]AgentState, 0, len(w.order)),
	}
	for _, id := range w.order {
		e := w.entries[id]
		state := AgentState{
			ID:              e.id,
			Name:            e.name,
			Behavior:        e.behavior.Kind(),
			Position:        e.agent.Position(),
			Velocity:        e.agent.LinearVelocity(),
			Rotation:        e.agent.Rotation(),
			AngularVelocity: e.agent.AngularVelocity(),
			MaxLinearSpeed:  e.agent.MaxLinearSpeed(),
			Target:          w.targetFor(e).Position,
			Steering:        e.last,
			Debug:           debugFor(e),
		}
		if other, ok := w.entries[e.follow]; ok {
			state.Following = other.name
		}
		frame.Agents = append(frame.Agents, state)
	}
	return frame
}

func debugFor(e *entry) Debug {
	switch b := e.behavior.(type) {
	case *steering.Arrive:
		p := b.Params()
		return Debug{SlowRadius: p.SlowRadius, TargetRadius: p.TargetRadius}
	case *steering.Evade:
		return Debug{EvadeRadius: b.Params().EvadeRadius}
	case *steering.Wander:
		center := b.WanderCenter()
		target := b.WanderTarget()
		return Debug{WanderCenter: &center, WanderRadius: b.WanderRadius(), WanderTarget: &target}
	default:
		return Debug{}
	}
}
