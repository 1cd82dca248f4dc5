package testutil

import (
	"sync"
	"time"

	"swtd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns a copy of the recorded log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.Logs))
	copy(out, m.Logs)
	return out
}

// MockCompressor passes data through unchanged, so persisted test files stay
// readable as plain JSON.
type MockCompressor struct {
	CompressErr   error
	DecompressErr error
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressErr != nil {
		return nil, m.CompressErr
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressErr != nil {
		return nil, m.DecompressErr
	}
	return val, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and records calls.
type MockMetrics struct {
	mu                sync.Mutex
	Requests          int
	CacheHits         int
	CacheMisses       int
	PersistenceSaves  int
	Ticks             map[string]int
	SweepDeletedDays  int
	SweepDeletedWeeks int
	WatcherRunning    bool
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceSaves++
}

func (m *MockMetrics) IncTicks(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Ticks == nil {
		m.Ticks = make(map[string]int)
	}
	m.Ticks[channel]++
}

func (m *MockMetrics) AddSweepDeleted(days, weeks int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SweepDeletedDays += days
	m.SweepDeletedWeeks += weeks
}

func (m *MockMetrics) SetWatcherRunning(running bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WatcherRunning = running
}

func (m *MockMetrics) WatcherRunningState() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.WatcherRunning
}

func (m *MockMetrics) TicksFor(channel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Ticks[channel]
}
