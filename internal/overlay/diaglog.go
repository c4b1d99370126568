package overlay

import (
	"fmt"
	"log/slog"
	"strings"
)

// Reporter receives advisory diagnostics. Messages carry no contract beyond
// being observable while debugging.
type Reporter interface {
	Report(category, key, value string)
}

type nopReporter struct{}

func (nopReporter) Report(string, string, string) {}

const diagRecentMax = 60

// DiagEntry is one recorded diagnostic.
type DiagEntry struct {
	Tick     int
	Category string // init, zone, mode
	Key      string // specific event within the category
	Value    string // human-readable detail
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] mode      change           Render mode: Zone [North]
func (e DiagEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-9s %-16s %s", e.Tick, e.Category, e.Key, e.Value)
}

// DiagLog collects diagnostics. The full history is kept for tests and the
// headless report; a fixed ring of recent entries feeds the on-screen panel.
type DiagLog struct {
	entries []DiagEntry
	recent  []DiagEntry
	head    int
	count   int
	tick    int
	logger  *slog.Logger
}

// NewDiagLog creates a log. When logger is non-nil every entry is also
// forwarded to it at info level.
func NewDiagLog(logger *slog.Logger) *DiagLog {
	return &DiagLog{
		recent: make([]DiagEntry, diagRecentMax),
		logger: logger,
	}
}

// SetTick stamps subsequent entries with tick.
func (dl *DiagLog) SetTick(tick int) {
	dl.tick = tick
}

// Report records a new entry.
func (dl *DiagLog) Report(category, key, value string) {
	e := DiagEntry{Tick: dl.tick, Category: category, Key: key, Value: value}
	dl.entries = append(dl.entries, e)
	dl.recent[dl.head] = e
	dl.head = (dl.head + 1) % diagRecentMax
	if dl.count < diagRecentMax {
		dl.count++
	}
	if dl.logger != nil {
		dl.logger.Info(value, "tick", e.Tick, "category", category, "key", key)
	}
}

// Entries returns all recorded entries.
func (dl *DiagLog) Entries() []DiagEntry {
	return dl.entries
}

// Recent returns the ring contents in chronological order (oldest first).
func (dl *DiagLog) Recent() []DiagEntry {
	result := make([]DiagEntry, dl.count)
	for i := 0; i < dl.count; i++ {
		idx := (dl.head - dl.count + i + diagRecentMax) % diagRecentMax
		result[i] = dl.recent[idx]
	}
	return result
}

// matches treats a blank category or key as a wildcard.
func (e DiagEntry) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Filter returns the history for one category and/or key, oldest first.
// Filter("mode", "") yields every render mode transition.
func (dl *DiagLog) Filter(category, key string) []DiagEntry {
	var out []DiagEntry
	for _, e := range dl.entries {
		if e.matches(category, key) {
			out = append(out, e)
		}
	}
	return out
}

// HasEntry reports whether a matching entry's value contains substr.
func (dl *DiagLog) HasEntry(category, key, substr string) bool {
	for _, e := range dl.entries {
		if e.matches(category, key) && strings.Contains(e.Value, substr) {
			return true
		}
	}
	return false
}

// Format renders the whole history, one line per entry.
func (dl *DiagLog) Format() string {
	lines := make([]string, len(dl.entries))
	for i, e := range dl.entries {
		lines[i] = e.String() + "\n"
	}
	return strings.Join(lines, "")
}
