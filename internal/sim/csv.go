package sim

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// MetricsLogger writes metric,value pairs of a single run.
type MetricsLogger struct {
	mu sync.Mutex

	f *os.File
	w *csv.Writer
}

func NewMetricsLogger(path string) (*MetricsLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	l := &MetricsLogger{f: f, w: csv.NewWriter(f)}
	_ = l.w.Write([]string{"metric", "value"})
	l.w.Flush()
	return l, nil
}

func (l *MetricsLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		_ = l.f.Close()
		return err
	}
	return l.f.Close()
}

func (l *MetricsLogger) Metric(metric string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.w.Write([]string{metric, toString(value)})
	l.w.Flush()
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return ffOpt(x)
	case bool:
		return strconv.FormatBool(x)
	case Variant:
		return string(x)
	default:
		return ""
	}
}
