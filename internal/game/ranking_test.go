package game

import (
	"testing"
)

func TestRankByCurrency(t *testing.T) {
	svc := newTestService(t, nil)
	fund(t, svc, "g", "poor", 10)
	fund(t, svc, "g", "rich", 1000)
	fund(t, svc, "g", "mid", 500)

	entries := svc.Rank("g", RankByCurrency, 0)
	if len(entries) != 3 {
		t.Fatalf("got %d entries", len(entries))
	}
	order := []string{"rich", "mid", "poor"}
	for i, want := range order {
		if entries[i].Rec.UserID != want || entries[i].Rank != i+1 {
			t.Fatalf("slot %d: got %s rank %d", i, entries[i].Rec.UserID, entries[i].Rank)
		}
	}
}

func TestRankLimitAndFields(t *testing.T) {
	svc := newTestService(t, nil)
	for i, id := range []string{"a", "b", "c", "d"} {
		rec, err := svc.ensure("g", id, id)
		if err != nil {
			t.Fatalf("ensure: %v", err)
		}
		rec.Value = int64(100 * (i + 1))
		rec.Arena.Points = int64(10 * i)
		if err := svc.Store().Put("g", id, rec); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	entries := svc.Rank("g", RankByValue, 2)
	if len(entries) != 2 {
		t.Fatalf("limit ignored: %d entries", len(entries))
	}
	if entries[0].Rec.UserID != "d" || entries[1].Rec.UserID != "c" {
		t.Fatalf("value order wrong: %s, %s", entries[0].Rec.UserID, entries[1].Rec.UserID)
	}

	byPoints := svc.Rank("g", RankByPoints, 1)
	if byPoints[0].Rec.UserID != "d" {
		t.Fatalf("points order wrong: %s", byPoints[0].Rec.UserID)
	}
}

func TestRankStableOnTies(t *testing.T) {
	svc := newTestService(t, nil)
	for _, id := range []string{"a", "b", "c"} {
		fund(t, svc, "g", id, 100)
	}
	first := svc.Rank("g", RankByCurrency, 0)
	second := svc.Rank("g", RankByCurrency, 0)
	for i := range first {
		if first[i].Rec.UserID != second[i].Rec.UserID {
			t.Fatalf("tie order unstable at slot %d", i)
		}
	}
}

func TestRankEmptyGroup(t *testing.T) {
	svc := newTestService(t, nil)
	if entries := svc.Rank("nobody-here", RankByCurrency, 10); len(entries) != 0 {
		t.Fatalf("expected empty board, got %d", len(entries))
	}
}
