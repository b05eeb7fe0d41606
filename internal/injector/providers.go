package injector

import "github.com/zeusync/steering/internal/core/observability/log"

// ProvideLogger creates the process logger at level.
func ProvideLogger(level log.Level) *log.Logger {
	return log.New(level)
}
