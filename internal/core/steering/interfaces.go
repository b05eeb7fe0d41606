// Package steering implements the classic single-target steering behaviors:
// Seek, Flee, Arrive, Face, Pursuit, Evade and Wander.
//
// Every behavior is a function of one Target and one Agent snapshot and is
// meant to be recomputed each simulation tick. The agent is owned by the host
// (engine actor, kinematic body, ...); behaviors only query it and, for Arrive
// and Face, adjust its maximum linear speed.
package steering

import (
	"fmt"
	"strings"

	"github.com/zeusync/steering/internal/core/physics"
)

// Output is the desired motion produced by a behavior for one tick.
type Output struct {
	LinearVelocity  physics.Vec2 `json:"linear_velocity"`
	AngularVelocity float64      `json:"angular_velocity"`

	// IsValid is false when the behavior deliberately produced no steering,
	// e.g. Evade with the threat out of range.
	IsValid bool `json:"is_valid"`
}

// Target describes what a behavior steers relative to.
type Target struct {
	Position        physics.Vec2 `json:"position" yaml:"position"`
	Orientation     float64      `json:"orientation" yaml:"orientation"`
	LinearVelocity  physics.Vec2 `json:"linear_velocity" yaml:"linear_velocity"`
	AngularVelocity float64      `json:"angular_velocity" yaml:"angular_velocity"`
}

// Agent is the host-side view of the steered character.
type Agent interface {
	Position() physics.Vec2
	LinearVelocity() physics.Vec2
	// Rotation is the heading in radians.
	Rotation() float64
	// Forward is the unit vector of the current heading.
	Forward() physics.Vec2

	MaxLinearSpeed() float64
	SetMaxLinearSpeed(speed float64)
	// ResetMaxSpeed restores the agent's configured default max linear speed.
	ResetMaxSpeed()

	MaxAngularSpeed() float64
}

// Behavior computes steering for an agent towards or away from its target.
type Behavior interface {
	// CalculateSteering returns the desired motion for this tick.
	CalculateSteering(deltaT float64, agent Agent) Output

	SetTarget(target Target)
	Target() Target

	Kind() Kind
}

// Kind identifies a behavior implementation.
type Kind uint8

const (
	KindSeek Kind = iota
	KindFlee
	KindArrive
	KindFace
	KindPursuit
	KindEvade
	KindWander
)

var kindNames = [...]string{
	KindSeek:    "seek",
	KindFlee:    "flee",
	KindArrive:  "arrive",
	KindFace:    "face",
	KindPursuit: "pursuit",
	KindEvade:   "evade",
	KindWander:  "wander",
}

// Kinds lists every behavior kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindSeek, KindFlee, KindArrive, KindFace, KindPursuit, KindEvade, KindWander}
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a behavior name (case-insensitive) to its Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
