package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Stats counts what a run has done. Counters are safe for concurrent use;
// watch mode records reloads from timer goroutines.
type Stats struct {
	files          atomic.Uint64
	failures       atomic.Uint64
	bindings       atomic.Uint64
	reloads        atomic.Uint64
	reloadFailures atomic.Uint64

	startTime time.Time
	now       func() time.Time
}

// NewStats creates a stats tracker started now.
func NewStats() *Stats {
	return &Stats{startTime: time.Now(), now: time.Now}
}

// RecordFile records a compiled input with its binding count.
func (s *Stats) RecordFile(bindings int) {
	s.files.Add(1)
	s.bindings.Add(uint64(bindings))
}

// RecordFailure records an input that failed to read or compile.
func (s *Stats) RecordFailure() {
	s.failures.Add(1)
}

// RecordReload records a successful watch-mode reload.
func (s *Stats) RecordReload() {
	s.reloads.Add(1)
}

// RecordReloadFailure records a watch-mode reload that failed.
func (s *Stats) RecordReloadFailure() {
	s.reloadFailures.Add(1)
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Files          uint64
	Failures       uint64
	Bindings       uint64
	Reloads        uint64
	ReloadFailures uint64
	Uptime         time.Duration
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Files:          s.files.Load(),
		Failures:       s.failures.Load(),
		Bindings:       s.bindings.Load(),
		Reloads:        s.reloads.Load(),
		ReloadFailures: s.reloadFailures.Load(),
		Uptime:         s.now().Sub(s.startTime),
	}
}

// Fields returns the snapshot as logger fields.
func (s StatsSnapshot) Fields() map[string]any {
	return map[string]any{
		"files":           s.Files,
		"failures":        s.Failures,
		"bindings":        s.Bindings,
		"reloads":         s.Reloads,
		"reload_failures": s.ReloadFailures,
		"uptime":          s.Uptime.Round(time.Millisecond),
	}
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf("files=%d failures=%d bindings=%d reloads=%d/%d uptime=%v",
		s.Files, s.Failures, s.Bindings, s.Reloads, s.Reloads+s.ReloadFailures, s.Uptime.Round(time.Millisecond))
}
