package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier. It inherits
// the hooks of the global logger, which main installs with ContextHook.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
