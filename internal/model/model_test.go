package model

import (
	"testing"
	"time"
)

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		points int64
		want   Tier
	}{
		{points: 0, want: TierBronze},
		{points: 499, want: TierBronze},
		{points: 500, want: TierSilver},
		{points: 1200, want: TierGold},
		{points: 1500, want: TierPlatinum},
		{points: 2000, want: TierDiamond},
		{points: 9999, want: TierDiamond},
	}
	for _, tc := range tests {
		if got := TierForPoints(tc.points); got != tc.want {
			t.Fatalf("points=%d got=%s want=%s", tc.points, got, tc.want)
		}
	}
}

func TestNewRecordDefaults(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rec := NewRecord("u1", "alice", 1000, 1, now)
	if rec.Value != 100 || rec.Currency != 0 {
		t.Fatalf("unexpected starting money: value=%d currency=%d", rec.Value, rec.Currency)
	}
	if rec.Bank.Limit != 1000 || rec.Bank.Level != 1 || rec.Bank.LastInterestTime != now.Unix() {
		t.Fatalf("unexpected bank defaults: %+v", rec.Bank)
	}
	if rec.Arena.Tier != TierBronze || rec.Owner != "" {
		t.Fatalf("new players start free in bronze, got %+v", rec)
	}
	if rec.Slaves == nil || rec.Cooldowns == nil {
		t.Fatalf("collections must be initialized")
	}
}

func TestCooldownRemaining(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rec := NewRecord("u1", "alice", 1000, 1, now)

	if got := rec.CooldownRemaining("work", time.Hour, now); got != 0 {
		t.Fatalf("unstamped action must be ready, got %s", got)
	}
	rec.StampCooldown("work", now)
	if got := rec.CooldownRemaining("work", time.Hour, now.Add(10*time.Minute)); got != 50*time.Minute {
		t.Fatalf("got %s want 50m", got)
	}
	if got := rec.CooldownRemaining("work", time.Hour, now.Add(time.Hour)); got != 0 {
		t.Fatalf("expired cooldown must be ready, got %s", got)
	}
}

func TestOwnsAndRemoveSlave(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rec := NewRecord("u1", "alice", 1000, 1, now)
	rec.Slaves = []string{"a", "b", "c"}

	if !rec.Owns("b") || rec.Owns("z") {
		t.Fatalf("ownership lookup broken: %v", rec.Slaves)
	}
	rec.RemoveSlave("b")
	if rec.Owns("b") || len(rec.Slaves) != 2 {
		t.Fatalf("remove left roster %v", rec.Slaves)
	}
	rec.RemoveSlave("z")
	if len(rec.Slaves) != 2 {
		t.Fatalf("removing a stranger changed the roster: %v", rec.Slaves)
	}
}
