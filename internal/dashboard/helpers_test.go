package dashboard_test

import (
	"context"
	"sync"

	"github.com/okian/courtside/internal/dashboard"
	"github.com/okian/courtside/pkg/logger"
)

// countingLogger records how many lines were logged per level.
type countingLogger struct {
	mu     sync.Mutex
	counts map[string]int
	msgs   []string
}

func newCountingLogger() *countingLogger {
	return &countingLogger{counts: make(map[string]int)}
}

func (l *countingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[level]++
	l.msgs = append(l.msgs, msg)
}

func (l *countingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[level]
}

func (l *countingLogger) Info(_ context.Context, msg string, _ ...logger.Field) {
	l.record("info", msg)
}
func (l *countingLogger) Error(_ context.Context, msg string, _ ...logger.Field) {
	l.record("error", msg)
}
func (l *countingLogger) Debug(_ context.Context, msg string, _ ...logger.Field) {
	l.record("debug", msg)
}
func (l *countingLogger) Warn(_ context.Context, msg string, _ ...logger.Field) {
	l.record("warn", msg)
}
func (l *countingLogger) Fatal(_ context.Context, msg string, _ ...logger.Field) {
	l.record("fatal", msg)
}
func (l *countingLogger) Named(string) logger.Logger { return l }

// recordingCanvas keeps every chart drawn on it.
type recordingCanvas struct {
	charts map[string]dashboard.BarChart
	err    error
}

func newRecordingCanvas() *recordingCanvas {
	return &recordingCanvas{charts: make(map[string]dashboard.BarChart)}
}

func (c *recordingCanvas) Draw(_ context.Context, chart dashboard.BarChart) error {
	if c.err != nil {
		return c.err
	}
	c.charts[chart.ElementID] = chart
	return nil
}
