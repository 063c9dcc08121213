package logging

import (
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// StartupLogger collects the resolved run configuration and emits a single
// structured zerolog event before the first scenario. This makes it easy to
// see exactly how a run was configured when troubleshooting from CI logs.
type StartupLogger struct {
	name         string
	runID        string
	initDuration time.Duration
	config       map[string]string
}

// NewStartupLogger creates a StartupLogger for the given tool name
// (e.g. "genimages").
func NewStartupLogger(name string) *StartupLogger {
	return &StartupLogger{
		name:   name,
		config: make(map[string]string),
	}
}

// RunID sets the unique identifier attached to this run's log events.
func (s *StartupLogger) RunID(id string) *StartupLogger {
	s.runID = id
	return s
}

// Config registers a non-sensitive configuration key-value pair.
func (s *StartupLogger) Config(key, value string) *StartupLogger {
	s.config[key] = value
	return s
}

// InitDuration records how long configuration resolution took.
func (s *StartupLogger) InitDuration(d time.Duration) *StartupLogger {
	s.initDuration = d
	return s
}

// Log emits a single structured INFO log event with all collected information.
func (s *StartupLogger) Log() {
	evt := log.Info()

	tool := zerolog.Dict().
		Str("name", s.name).
		Str("goVersion", runtime.Version()).
		Str("arch", runtime.GOARCH)
	if s.runID != "" {
		tool = tool.Str("runId", s.runID)
	}
	evt = evt.Dict("tool", tool)

	if len(s.config) > 0 {
		evt = evt.Dict("config", dictFromMap(s.config))
	}

	if s.initDuration > 0 {
		evt = evt.Dur("initDuration", s.initDuration)
	}

	evt.Msg("Startup complete")
}

// dictFromMap converts a map[string]string into a zerolog Dict with stable
// key order.
func dictFromMap(m map[string]string) *zerolog.Event {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := zerolog.Dict()
	for _, k := range keys {
		d = d.Str(k, m[k])
	}
	return d
}
