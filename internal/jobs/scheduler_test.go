package jobs

import (
	"testing"
	"time"

	"slavemarket/internal/config"
	"slavemarket/internal/reset"
	"slavemarket/internal/store"
)

func TestStartAndStop(t *testing.T) {
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	cycle := reset.NewCycle(st, config.DefaultGame(), time.UTC)

	s := NewScheduler(cycle, time.UTC)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if entries := s.cron.Entries(); len(entries) != 1 {
		t.Fatalf("expected one scheduled job, got %d", len(entries))
	}
	s.Stop()
}
