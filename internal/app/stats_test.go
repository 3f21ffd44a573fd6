package app

import (
	"sync"
	"testing"
	"time"
)

func TestStats(t *testing.T) {
	s := NewStats()
	start := s.startTime
	s.now = func() time.Time { return start.Add(1500 * time.Millisecond) }

	s.RecordFile(3)
	s.RecordFile(2)
	s.RecordFailure()
	s.RecordReload()
	s.RecordReloadFailure()

	snap := s.Snapshot()
	want := StatsSnapshot{
		Files:          2,
		Failures:       1,
		Bindings:       5,
		Reloads:        1,
		ReloadFailures: 1,
		Uptime:         1500 * time.Millisecond,
	}
	if snap != want {
		t.Errorf("Snapshot() = %+v, want %+v", snap, want)
	}

	if got := snap.String(); got != "files=2 failures=1 bindings=5 reloads=1/2 uptime=1.5s" {
		t.Errorf("String() = %q", got)
	}
	fields := snap.Fields()
	for name, want := range map[string]uint64{
		"files":           2,
		"failures":        1,
		"bindings":        5,
		"reloads":         1,
		"reload_failures": 1,
	} {
		if got := fields[name]; got != want {
			t.Errorf("Fields()[%s] = %v, want %d", name, got, want)
		}
	}
}

func TestStatsConcurrent(t *testing.T) {
	s := NewStats()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.RecordFile(1)
				s.RecordReload()
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.Files != 1000 || snap.Bindings != 1000 || snap.Reloads != 1000 {
		t.Errorf("Snapshot() = %+v", snap)
	}
}
