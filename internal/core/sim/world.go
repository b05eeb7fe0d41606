// Package sim is a headless host for steering behaviors: a set of kinematic
// agents, each driven by one behavior towards a fixed point or another agent.
package sim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/steering/internal/core/observability/log"
	"github.com/zeusync/steering/internal/core/physics"
	"github.com/zeusync/steering/internal/core/steering"
)

// ID identifies an agent within a World.
type ID string

// Config holds world configuration.
type Config struct {
	// Seed mixes into every Wander random source.
	Seed   uint64
	Params steering.Params
}

// DefaultConfig returns a world using the stock behavior tuning.
func DefaultConfig() Config {
	return Config{Seed: 1, Params: steering.DefaultParams()}
}

// AgentSpec describes an agent to add to the world.
type AgentSpec struct {
	Name            string        `json:"name" yaml:"name"`
	Position        physics.Vec2  `json:"position" yaml:"position"`
	Rotation        float64       `json:"rotation" yaml:"rotation"`
	MaxLinearSpeed  float64       `json:"max_linear_speed" yaml:"max_linear_speed"`
	MaxAngularSpeed float64       `json:"max_angular_speed" yaml:"max_angular_speed"`
	Behavior        steering.Kind `json:"behavior" yaml:"behavior"`

	// Target is a fixed point to steer relative to.
	Target *physics.Vec2 `json:"target,omitempty" yaml:"target,omitempty"`

	// Follow names another agent to steer relative to. Mutually exclusive with Target.
	Follow string `json:"follow,omitempty" yaml:"follow,omitempty"`
}

// Validate checks the fields that do not depend on other agents.
func (s AgentSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidAgent)
	}
	if s.MaxLinearSpeed < 0 || s.MaxAngularSpeed < 0 {
		return fmt.Errorf("%w: %s: speeds must not be negative", ErrInvalidAgent, s.Name)
	}
	if s.Target != nil && s.Follow != "" {
		return fmt.Errorf("%w: %s: target and follow are mutually exclusive", ErrInvalidAgent, s.Name)
	}
	if s.Follow == s.Name {
		return fmt.Errorf("%w: %s: agent cannot follow itself", ErrInvalidAgent, s.Name)
	}
	return nil
}

type entry struct {
	id       ID
	name     string
	agent    *KinematicAgent
	behavior steering.Behavior
	rng      *rand.Rand

	point  physics.Vec2
	follow ID

	last steering.Output
}

// World owns the agents and advances them in fixed steps.
type World struct {
	mu sync.RWMutex

	config Config
	logger log.Log

	entries map[ID]*entry
	names   map[string]ID
	order   []ID

	tick    uint64
	elapsed float64
}

// NewWorld creates an empty world.
func NewWorld(config Config, logger log.Log) (*World, error) {
	if err := config.Params.Validate(); err != nil {
		return nil, fmt.Errorf("world config: %w", err)
	}
	return &World{
		config:  config,
		logger:  logger.With(log.String("component", "world")),
		entries: make(map[ID]*entry),
		names:   make(map[string]ID),
	}, nil
}

// AddAgent registers an agent. A Follow reference must name an agent that is
// already present.
func (w *World) AddAgent(spec AgentSpec) (ID, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.names[spec.Name]; exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateAgent, spec.Name)
	}

	var follow ID
	if spec.Follow != "" {
		id, ok := w.names[spec.Follow]
		if !ok {
			return "", fmt.Errorf("%w: %s follows %s", ErrAgentNotFound, spec.Name, spec.Follow)
		}
		follow = id
	}

	rng := w.randFor(spec.Name)
	behavior, err := steering.New(spec.Behavior, w.config.Params, steering.WithRand(rng))
	if err != nil {
		return "", fmt.Errorf("agent %s: %w", spec.Name, err)
	}

	e := &entry{
		id:       ID(uuid.NewString()),
		name:     spec.Name,
		agent:    NewKinematicAgent(spec.Position, spec.Rotation, spec.MaxLinearSpeed, spec.MaxAngularSpeed),
		behavior: behavior,
		rng:      rng,
		follow:   follow,
	}
	if spec.Target != nil {
		e.point = *spec.Target
	}

	w.entries[e.id] = e
	w.names[e.name] = e.id
	w.order = append(w.order, e.id)

	w.logger.Info("agent added",
		log.String("id", string(e.id)),
		log.String("name", e.name),
		log.Stringer("behavior", spec.Behavior),
	)
	return e.id, nil
}

// RemoveAgent deletes an agent. Agents following it keep steering towards
// its last known position.
func (w *World) RemoveAgent(id ID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}

	for _, other := range w.entries {
		if other.follow == id {
			other.follow = ""
			other.point = e.agent.Position()
		}
	}

	delete(w.entries, id)
	delete(w.names, e.name)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}

	w.logger.Info("agent removed", log.String("id", string(id)), log.String("name", e.name))
	return nil
}

// Lookup resolves an agent name to its ID.
func (w *World) Lookup(name string) (ID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	id, ok := w.names[name]
	return id, ok
}

// Len returns the number of agents.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entries)
}

// SetBehavior swaps an agent's behavior. The agent's max speed is reset so a
// limit imposed by Arrive or Face does not carry over.
func (w *World) SetBehavior(id ID, kind steering.Kind) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}

	behavior, err := steering.New(kind, w.config.Params, steering.WithRand(e.rng))
	if err != nil {
		return err
	}

	previous := e.behavior.Kind()
	e.behavior = behavior
	e.agent.ResetMaxSpeed()
	e.last = steering.Output{}

	w.logger.Info("behavior changed",
		log.String("name", e.name),
		log.Stringer("from", previous),
		log.Stringer("to", kind),
	)
	return nil
}

// SetTargetPoint points an agent at a fixed position, dropping any follow.
func (w *World) SetTargetPoint(id ID, point physics.Vec2) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}
	e.point = point
	e.follow = ""
	return nil
}

// FollowAgent makes id steer relative to the live state of target.
func (w *World) FollowAgent(id, target ID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}
	if _, ok = w.entries[target]; !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, target)
	}
	if id == target {
		return fmt.Errorf("%w: %s: agent cannot follow itself", ErrInvalidAgent, e.name)
	}
	e.follow = target
	return nil
}

// Step advances the world by dt seconds.
//
// Targets are resolved from the state at the start of the tick, steering is
// computed for all agents concurrently, and only then are the outputs applied,
// so the result does not depend on agent order.
func (w *World) Step(ctx context.Context, dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	entries := make([]*entry, len(w.order))
	for i, id := range w.order {
		e := w.entries[id]
		e.behavior.SetTarget(w.targetFor(e))
		entries[i] = e
	}

	outputs := make([]steering.Output, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outputs[i] = e.behavior.CalculateSteering(dt, e.agent)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("step %d: %w", w.tick+1, err)
	}

	for i, e := range entries {
		out := outputs[i]
		if e.behavior.Kind() == steering.KindEvade && out.IsValid != e.last.IsValid {
			w.logger.Debug("evade state changed", log.String("name", e.name), log.Bool("engaged", out.IsValid))
		}
		e.agent.Apply(out, dt)
		e.last = out
	}

	w.tick++
	w.elapsed += dt
	return nil
}

// Run steps the world ticks times or until ctx is done.
func (w *World) Run(ctx context.Context, ticks int, dt float64) error {
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Step(ctx, dt); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) targetFor(e *entry) steering.Target {
	if e.follow != "" {
		if other, ok := w.entries[e.follow]; ok {
			return other.agent.target()
		}
	}
	return steering.Target{Position: e.point}
}

// randFor derives a deterministic random source for the named agent.
func (w *World) randFor(name string) *rand.Rand {
	h := xxhash.Sum64String(name)
	return rand.New(rand.NewPCG(h^w.config.Seed, w.config.Seed))
}
