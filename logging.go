package dateformat

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logMu     sync.Mutex
	logger    = zerolog.Nop()
	warnsSeen = make(map[string]struct{})
)

// SetLogger installs a zerolog logger for the package. The default logger
// discards everything so library consumers opt in explicitly.
func SetLogger(l zerolog.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	logger = l
}

// NewConsoleLogger builds a human readable zerolog logger writing to w,
// suitable for the CLI and for tests.
func NewConsoleLogger(w io.Writer) zerolog.Logger {
	console := zerolog.NewConsoleWriter()
	console.Out = w
	return zerolog.New(console).Level(zerolog.WarnLevel).With().Timestamp().Logger()
}

// warnOnce logs a fallback warning at most once per distinct key. Lookup
// misses resolve through deterministic fallbacks and would otherwise flood
// the log on every format call.
func warnOnce(key, msg string, fields map[string]string) {
	logMu.Lock()
	defer logMu.Unlock()

	if _, ok := warnsSeen[key]; ok {
		return
	}
	warnsSeen[key] = struct{}{}

	event := logger.Warn()
	for name, value := range fields {
		event = event.Str(name, value)
	}
	event.Msg(msg)
}

// resetWarnings clears the warn-once seen set. Used by tests that assert
// warning counts.
func resetWarnings() {
	logMu.Lock()
	defer logMu.Unlock()
	warnsSeen = make(map[string]struct{})
}
