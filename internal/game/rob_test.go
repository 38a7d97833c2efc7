package game

import (
	"testing"

	"slavemarket/internal/config"
)

func TestRobSuccess(t *testing.T) {
	svc := newTestService(t, func(g *config.Game) {
		g.Rob.SuccessRate = 1
	})
	fund(t, svc, "g", "robber", 100)
	fund(t, svc, "g", "victim", 1000)

	res, err := svc.Rob("g", "robber", "alice", "victim")
	if err != nil {
		t.Fatalf("rob: %v", err)
	}
	if !res.Success {
		t.Fatalf("guaranteed rob failed")
	}
	if res.Amount < robGainLo || res.Amount > robGainHi {
		t.Fatalf("haul %d outside [%d,%d]", res.Amount, robGainLo, robGainHi)
	}
	robber := mustGet(t, svc, "g", "robber")
	victim := mustGet(t, svc, "g", "victim")
	if robber.Currency+victim.Currency != 1100 {
		t.Fatalf("robbery created or destroyed coins: %d + %d", robber.Currency, victim.Currency)
	}
}

func TestRobHaulCappedByVictim(t *testing.T) {
	svc := newTestService(t, func(g *config.Game) {
		g.Rob.SuccessRate = 1
		g.Rob.Cooldown = 0
	})
	fund(t, svc, "g", "robber", 0)
	fund(t, svc, "g", "victim", 12)

	res, err := svc.Rob("g", "robber", "alice", "victim")
	if err != nil {
		t.Fatalf("rob: %v", err)
	}
	if res.Amount > 12 {
		t.Fatalf("haul %d exceeds victim's holdings", res.Amount)
	}
	if victim := mustGet(t, svc, "g", "victim"); victim.Currency < 0 {
		t.Fatalf("victim went negative: %d", victim.Currency)
	}
}

func TestRobFailurePenalty(t *testing.T) {
	svc := newTestService(t, func(g *config.Game) {
		g.Rob.SuccessRate = 0
	})
	fund(t, svc, "g", "robber", 200)
	fund(t, svc, "g", "victim", 1000)

	res, err := svc.Rob("g", "robber", "alice", "victim")
	if err != nil {
		t.Fatalf("rob: %v", err)
	}
	if res.Success {
		t.Fatalf("guaranteed failure succeeded")
	}
	if res.Penalty != 20 {
		t.Fatalf("penalty: got %d want 20", res.Penalty)
	}
	if victim := mustGet(t, svc, "g", "victim"); victim.Currency != 1000 {
		t.Fatalf("failed rob touched the victim: %d", victim.Currency)
	}
}

func TestRobPenaltyFloorAndClamp(t *testing.T) {
	svc := newTestService(t, func(g *config.Game) {
		g.Rob.SuccessRate = 0
	})
	fund(t, svc, "g", "robber", 3)
	fund(t, svc, "g", "victim", 1000)

	res, err := svc.Rob("g", "robber", "alice", "victim")
	if err != nil {
		t.Fatalf("rob: %v", err)
	}
	if res.Penalty != robMinPenalty {
		t.Fatalf("penalty floor: got %d want %d", res.Penalty, robMinPenalty)
	}
	if res.Currency != 0 {
		t.Fatalf("currency must clamp at zero, got %d", res.Currency)
	}
}

func TestRobRefusals(t *testing.T) {
	svc := newTestService(t, func(g *config.Game) {
		g.Rob.SuccessRate = 1
		g.Rob.Cooldown = 3600
	})
	fund(t, svc, "g", "robber", 100)

	if _, err := svc.Rob("g", "robber", "alice", "robber"); err != ErrSelfTarget {
		t.Fatalf("self rob: got %v", err)
	}
	if _, err := svc.Rob("g", "robber", "alice", "ghost"); err != ErrUnknownPlayer {
		t.Fatalf("unknown target: got %v", err)
	}

	// A broke target refuses the attempt without burning the cooldown.
	fund(t, svc, "g", "pauper", robMinTargetCurrency-1)
	if _, err := svc.Rob("g", "robber", "alice", "pauper"); err != ErrTargetTooPoor {
		t.Fatalf("poor target: got %v", err)
	}
	fund(t, svc, "g", "victim", 1000)
	if _, err := svc.Rob("g", "robber", "alice", "victim"); err != nil {
		t.Fatalf("cooldown burned by refused attempt: %v", err)
	}
}

func TestRobRandomTargetNeedsPlayers(t *testing.T) {
	svc := newTestService(t, nil)
	fund(t, svc, "g", "robber", 100)
	if _, err := svc.Rob("g", "robber", "alice", ""); err != ErrNotEnoughPlayers {
		t.Fatalf("lonely group: got %v", err)
	}
}
