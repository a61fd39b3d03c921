package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/tacodoll/config"
)

// CSV files written into the output directory.
const (
	TelemetryFile = "telemetry.csv"
	PerfFile      = "perf.csv"
	BookmarkFile  = "bookmarks.csv"
	ConfigFile    = "config.yaml"
)

// csvSink is one CSV file that gets its header before the first row.
type csvSink struct {
	f      *os.File
	header bool
}

// writeRow appends record to s, preceded by the header on the first call.
func writeRow[T any](s *csvSink, record T) error {
	records := []T{record}
	if !s.header {
		s.header = true
		return gocsv.Marshal(records, s.f)
	}
	return gocsv.MarshalWithoutHeaders(records, s.f)
}

// OutputManager writes one run's telemetry, perf and bookmark rows as CSV.
// A nil *OutputManager accepts every write and does nothing, so callers
// need no output-enabled checks.
type OutputManager struct {
	dir       string
	telemetry csvSink
	perf      csvSink
	bookmarks csvSink
}

// NewOutputManager creates dir and the CSV files in it. An empty dir
// disables output and returns a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	sinks := []struct {
		name string
		sink *csvSink
	}{
		{TelemetryFile, &om.telemetry},
		{PerfFile, &om.perf},
		{BookmarkFile, &om.bookmarks},
	}
	for _, s := range sinks {
		f, err := os.Create(filepath.Join(dir, s.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", s.name, err)
		}
		s.sink.f = f
	}
	return om, nil
}

// WriteConfig saves the run's configuration next to the CSV files.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteTelemetry appends one window to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := writeRow(&om.telemetry, stats); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf appends the perf window ending at tick windowEnd to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	if err := writeRow(&om.perf, stats.ToCSV(windowEnd)); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark appends b to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := writeRow(&om.bookmarks, b); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// Dir returns the output directory, or "" when output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every file that was opened.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, s := range []*csvSink{&om.telemetry, &om.perf, &om.bookmarks} {
		if s.f == nil {
			continue
		}
		errs = append(errs, s.f.Close())
		s.f = nil
	}
	return errors.Join(errs...)
}
