package game

import (
	mathrand "math/rand"
	"sync"
	"time"

	"slavemarket/internal/config"
	"slavemarket/internal/flavor"
	"slavemarket/internal/model"
	"slavemarket/internal/store"
)

// Service implements every economy operation. Each call loads one or two
// records, applies a pure transition of (records, config, rng, now) and
// persists the results. There are no cross-record transactions; the store
// is last-writer-wins (see store package).
type Service struct {
	store  *store.Store
	cfg    config.Game
	flavor *flavor.Pool

	mu   sync.Mutex
	rand *mathrand.Rand
	now  func() time.Time
}

func NewService(st *store.Store, cfg config.Game, pool *flavor.Pool) *Service {
	return &Service{
		store:  st,
		cfg:    cfg,
		flavor: pool,
		rand:   mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// Store exposes the underlying record store to the reset cycle and CLI.
func (s *Service) Store() *store.Store { return s.store }

func (s *Service) ensure(groupID, userID, nickname string) (Record, error) {
	def := model.NewRecord(userID, nickname, s.cfg.Bank.InitialLimit, s.cfg.Bank.InitialLevel, s.now())
	rec, err := s.store.Ensure(groupID, userID, def)
	if err != nil {
		return rec, err
	}
	// Keep the display name fresh; the host supplies it on every command.
	if nickname != "" && rec.Nickname != nickname {
		rec.Nickname = nickname
	}
	return rec, nil
}

// checkCooldown enforces the shared gating contract: refuse with the
// remaining wait unless elapsed >= cooldown or the user is allow-listed.
func (s *Service) checkCooldown(rec *Record, userID, action string, seconds int) error {
	if s.cfg.BypassesCooldown(userID) {
		return nil
	}
	remaining := rec.CooldownRemaining(action, time.Duration(seconds)*time.Second, s.now())
	if remaining > 0 {
		return &CooldownError{Action: action, Remaining: remaining}
	}
	return nil
}

func (s *Service) chance(p float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Float64() < p
}

// rollRange returns a uniform integer in [lo, hi].
func (s *Service) rollRange(lo, hi int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rand.Int63n(hi-lo+1)
}

func (s *Service) pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Intn(n)
}

// MarketInfo builds the self view: own record, owner name, owned roster.
func (s *Service) MarketInfo(groupID, userID, nickname string) (Profile, error) {
	rec, err := s.ensure(groupID, userID, nickname)
	if err != nil {
		return Profile{}, err
	}
	return s.profileFor(groupID, rec), nil
}

// SlaveDetails is the third-person view of an existing player.
func (s *Service) SlaveDetails(groupID, targetID string) (Profile, error) {
	rec, ok := s.store.Get(groupID, targetID)
	if !ok {
		return Profile{}, ErrUnknownPlayer
	}
	return s.profileFor(groupID, rec), nil
}

func (s *Service) profileFor(groupID string, rec Record) Profile {
	p := Profile{Record: rec}
	if rec.Owner != "" {
		if owner, ok := s.store.Get(groupID, rec.Owner); ok {
			p.OwnerName = owner.Nickname
		}
	}
	for _, id := range rec.Slaves {
		slave, ok := s.store.Get(groupID, id)
		if !ok {
			continue
		}
		p.Slaves = append(p.Slaves, SlaveView{UserID: id, Nickname: slave.Nickname, Value: slave.Value})
	}
	return p
}
