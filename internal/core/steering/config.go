package steering

import "fmt"

// SeekParams configures Seek.
type SeekParams struct {
	// CloseDistance is the radius inside which Seek stops steering.
	CloseDistance float64 `json:"close_distance" yaml:"close_distance"`
}

// ArriveParams configures Arrive.
type ArriveParams struct {
	SlowRadius   float64 `json:"slow_radius" yaml:"slow_radius"`
	TargetRadius float64 `json:"target_radius" yaml:"target_radius"`

	// MaxSpeed is the speed at the edge of SlowRadius; it falls to 0 at TargetRadius.
	MaxSpeed float64 `json:"max_speed" yaml:"max_speed"`
}

// FaceParams configures Face.
type FaceParams struct {
	// AlignTolerance is the heading error in radians treated as aligned.
	AlignTolerance float64 `json:"align_tolerance" yaml:"align_tolerance"`
}

// PursuitParams configures Pursuit.
type PursuitParams struct {
	MaxPredictionTime float64 `json:"max_prediction_time" yaml:"max_prediction_time"`
	CloseDistance     float64 `json:"close_distance" yaml:"close_distance"`
}

// EvadeParams configures Evade.
type EvadeParams struct {
	EvadeRadius       float64 `json:"evade_radius" yaml:"evade_radius"`
	MaxPredictionTime float64 `json:"max_prediction_time" yaml:"max_prediction_time"`
}

// WanderParams configures Wander.
type WanderParams struct {
	// Offset is the distance of the wander circle ahead of the agent.
	Offset float64 `json:"offset" yaml:"offset"`
	Radius float64 `json:"radius" yaml:"radius"`

	// MaxAngleChangeDeg bounds the per-call change of the wander angle.
	MaxAngleChangeDeg float64 `json:"max_angle_change_deg" yaml:"max_angle_change_deg"`
}

// Params groups the tunables of every behavior.
type Params struct {
	Seek    SeekParams    `json:"seek" yaml:"seek"`
	Arrive  ArriveParams  `json:"arrive" yaml:"arrive"`
	Face    FaceParams    `json:"face" yaml:"face"`
	Pursuit PursuitParams `json:"pursuit" yaml:"pursuit"`
	Evade   EvadeParams   `json:"evade" yaml:"evade"`
	Wander  WanderParams  `json:"wander" yaml:"wander"`
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Seek: SeekParams{CloseDistance: 5},
		Arrive: ArriveParams{
			SlowRadius:   300,
			TargetRadius: 100,
			MaxSpeed:     600,
		},
		Face: FaceParams{AlignTolerance: 0.01},
		Pursuit: PursuitParams{
			MaxPredictionTime: 4,
			CloseDistance:     5,
		},
		Evade: EvadeParams{
			EvadeRadius:       400,
			MaxPredictionTime: 4,
		},
		Wander: WanderParams{
			Offset:            120,
			Radius:            80,
			MaxAngleChangeDeg: 45,
		},
	}
}

// Validate checks every parameter group.
func (p Params) Validate() error {
	if p.Seek.CloseDistance < 0 {
		return fmt.Errorf("%w: seek close distance %v is negative", ErrInvalidParams, p.Seek.CloseDistance)
	}

	if err := p.Arrive.Validate(); err != nil {
		return fmt.Errorf("arrive: %w", err)
	}

	if p.Face.AlignTolerance < 0 {
		return fmt.Errorf("%w: face align tolerance %v is negative", ErrInvalidParams, p.Face.AlignTolerance)
	}

	if p.Pursuit.MaxPredictionTime <= 0 {
		return fmt.Errorf("%w: pursuit max prediction time must be positive", ErrInvalidParams)
	}
	if p.Pursuit.CloseDistance < 0 {
		return fmt.Errorf("%w: pursuit close distance %v is negative", ErrInvalidParams, p.Pursuit.CloseDistance)
	}

	if p.Evade.EvadeRadius < 0 {
		return fmt.Errorf("%w: evade radius %v is negative", ErrInvalidParams, p.Evade.EvadeRadius)
	}
	if p.Evade.MaxPredictionTime <= 0 {
		return fmt.Errorf("%w: evade max prediction time must be positive", ErrInvalidParams)
	}

	if p.Wander.Radius < 0 || p.Wander.Offset < 0 {
		return fmt.Errorf("%w: wander offset and radius must not be negative", ErrInvalidParams)
	}
	if p.Wander.MaxAngleChangeDeg < 0 || p.Wander.MaxAngleChangeDeg > 180 {
		return fmt.Errorf("%w: wander max angle change %v outside [0, 180]", ErrInvalidParams, p.Wander.MaxAngleChangeDeg)
	}

	return nil
}

// Validate checks the radius ordering Arrive's damping relies on.
func (p ArriveParams) Validate() error {
	if p.TargetRadius < 0 {
		return fmt.Errorf("%w: target radius %v is negative", ErrInvalidParams, p.TargetRadius)
	}
	if p.TargetRadius >= p.SlowRadius {
		return fmt.Errorf("%w: target radius %v must be below slow radius %v", ErrInvalidParams, p.TargetRadius, p.SlowRadius)
	}
	if p.MaxSpeed < 0 {
		return fmt.Errorf("%w: max speed %v is negative", ErrInvalidParams, p.MaxSpeed)
	}
	return nil
}
