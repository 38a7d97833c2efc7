package game

import (
	mathrand "math/rand"
	"testing"
	"time"

	"slavemarket/internal/config"
	"slavemarket/internal/flavor"
	"slavemarket/internal/store"
)

var testEpoch = time.Unix(1_700_000_000, 0)

// newTestService builds a service over a throwaway store with a frozen
// clock and a fixed rng seed. mut tweaks the default tuning, typically
// pinning a success rate to 0 or 1 for determinism.
func newTestService(t *testing.T, mut func(*config.Game)) *Service {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	cfg := config.DefaultGame()
	if mut != nil {
		mut(&cfg)
	}
	svc := NewService(st, cfg, flavor.Load(""))
	svc.rand = mathrand.New(mathrand.NewSource(42))
	svc.now = func() time.Time { return testEpoch }
	return svc
}

// advance moves the service clock forward from the epoch.
func advance(svc *Service, d time.Duration) {
	svc.now = func() time.Time { return testEpoch.Add(d) }
}

// fund gives a player coins directly through the store.
func fund(t *testing.T, svc *Service, group, user string, coins int64) {
	t.Helper()
	rec, err := svc.ensure(group, user, "")
	if err != nil {
		t.Fatalf("ensure %s: %v", user, err)
	}
	rec.Currency = coins
	if err := svc.store.Put(group, user, rec); err != nil {
		t.Fatalf("put %s: %v", user, err)
	}
}

func mustGet(t *testing.T, svc *Service, group, user string) Record {
	t.Helper()
	rec, ok := svc.store.Get(group, user)
	if !ok {
		t.Fatalf("record %s/%s missing", group, user)
	}
	return rec
}

func TestEnsureRefreshesNickname(t *testing.T) {
	svc := newTestService(t, nil)
	if _, err := svc.ensure("g", "u1", "old name"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	rec, err := svc.ensure("g", "u1", "new name")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if rec.Nickname != "new name" {
		t.Fatalf("nickname not refreshed: %q", rec.Nickname)
	}
}

func TestCooldownBypassList(t *testing.T) {
	svc := newTestService(t, func(g *config.Game) {
		g.IgnoreCDUsers = []string{"vip"}
	})
	for i := 0; i < 3; i++ {
		if _, err := svc.Work("g", "vip", "vip"); err != nil {
			t.Fatalf("bypassed user blocked on round %d: %v", i, err)
		}
	}
	if _, err := svc.Work("g", "pleb", "pleb"); err != nil {
		t.Fatalf("first work: %v", err)
	}
	if _, err := svc.Work("g", "pleb", "pleb"); err == nil {
		t.Fatalf("expected cooldown refusal")
	}
}

func TestMarketInfoAndDetails(t *testing.T) {
	svc := newTestService(t, nil)
	fund(t, svc, "g", "owner", 10_000)
	if _, err := svc.ensure("g", "slave", "bob"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if _, err := svc.BuySlave("g", "owner", "alice", "slave"); err != nil {
		t.Fatalf("buy: %v", err)
	}

	p, err := svc.MarketInfo("g", "owner", "alice")
	if err != nil {
		t.Fatalf("market info: %v", err)
	}
	if len(p.Slaves) != 1 || p.Slaves[0].Nickname != "bob" {
		t.Fatalf("roster wrong: %+v", p.Slaves)
	}

	d, err := svc.SlaveDetails("g", "slave")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if d.OwnerName != "alice" {
		t.Fatalf("owner name: got %q want alice", d.OwnerName)
	}

	if _, err := svc.SlaveDetails("g", "ghost"); err != ErrUnknownPlayer {
		t.Fatalf("expected ErrUnknownPlayer, got %v", err)
	}
}
