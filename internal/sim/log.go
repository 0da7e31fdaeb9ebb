package sim

import (
	"fmt"
	"io"
	"strings"

	"github.com/pion/logging"
)

// NewLoggerFactory returns a pion logger factory writing to w at the named
// level (disabled, error, warn, info, debug, trace).
func NewLoggerFactory(level string, w io.Writer) (*logging.DefaultLoggerFactory, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	f := logging.NewDefaultLoggerFactory()
	f.DefaultLogLevel = lvl
	if w != nil {
		f.Writer = w
	}
	return f, nil
}

func parseLogLevel(s string) (logging.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disabled", "off", "none":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn", "warning":
		return logging.LogLevelWarn, nil
	case "", "info":
		return logging.LogLevelInfo, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	default:
		return logging.LogLevelDisabled, fmt.Errorf("unknown log level %q", s)
	}
}
