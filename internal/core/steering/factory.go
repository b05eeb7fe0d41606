package steering

import (
	"fmt"
	"math/rand/v2"
)

type buildOptions struct {
	rng *rand.Rand
}

// Option tunes behavior construction.
type Option func(*buildOptions)

// WithRand sets the random source used by Wander.
func WithRand(rng *rand.Rand) Option {
	return func(o *buildOptions) { o.rng = rng }
}

// New constructs the behavior of the given kind from params.
func New(kind Kind, params Params, opts ...Option) (Behavior, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch kind {
	case KindSeek:
		return NewSeek(params.Seek), nil
	case KindFlee:
		return NewFlee(), nil
	case KindArrive:
		if err := params.Arrive.Validate(); err != nil {
			return nil, fmt.Errorf("arrive: %w", err)
		}
		return NewArrive(params.Arrive), nil
	case KindFace:
		return NewFace(params.Face), nil
	case KindPursuit:
		return NewPursuit(params.Pursuit), nil
	case KindEvade:
		return NewEvade(params.Evade), nil
	case KindWander:
		return NewWander(params.Wander, params.Seek, o.rng), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}
