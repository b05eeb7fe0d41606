package sim

import "errors"

var (
	ErrAgentNotFound  = errors.New("agent not found")
	ErrDuplicateAgent = errors.New("duplicate agent name")
	ErrInvalidAgent   = errors.New("invalid agent")
	ErrInvalidDelta   = errors.New("delta time must be positive")
)
