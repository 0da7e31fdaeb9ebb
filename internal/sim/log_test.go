package sim

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pion/logging"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logging.LogLevel{
		"":        logging.LogLevelInfo,
		"off":     logging.LogLevelDisabled,
		"ERROR":   logging.LogLevelError,
		" warn ":  logging.LogLevelWarn,
		"debug":   logging.LogLevelDebug,
		"trace":   logging.LogLevelTrace,
		"warning": logging.LogLevelWarn,
	}
	for in, want := range tests {
		got, err := parseLogLevel(in)
		if err != nil || got != want {
			t.Errorf("parseLogLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseLogLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoggerFactoryLevel(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewLoggerFactory("warn", &buf)
	if err != nil {
		t.Fatal(err)
	}
	log := f.NewLogger("sim")
	log.Infof("hidden %d", 1)
	log.Warnf("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown 2") {
		t.Errorf("unexpected log output %q", out)
	}
}
