// Package model holds the persisted player state shared by the game
// rules and the file store. It knows nothing about I/O or tuning.
package model

import "time"

// Tier is a named bracket of the ranked-points ladder.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
)

// TierForPoints maps ranked points onto the fixed tier thresholds.
func TierForPoints(points int64) Tier {
	switch {
	case points >= 2000:
		return TierDiamond
	case points >= 1500:
		return TierPlatinum
	case points >= 1000:
		return TierGold
	case points >= 500:
		return TierSilver
	default:
		return TierBronze
	}
}

// Bank is the per-player credit account.
type Bank struct {
	Balance          int64 `json:"balance"`
	Level            int   `json:"level"`
	Limit            int64 `json:"limit"`
	LastInterestTime int64 `json:"lastInterestTime"`
}

// Arena is the ranked-ladder block.
type Arena struct {
	Tier   Tier  `json:"tier"`
	Points int64 `json:"points"`
	Wins   int   `json:"wins"`
	Losses int   `json:"losses"`
}

// Record is a player's full persisted game state, one JSON file per
// (group, user) pair. The "master" key is the owner back-reference;
// empty string means free.
type Record struct {
	UserID    string           `json:"user_id"`
	Nickname  string           `json:"nickname"`
	Currency  int64            `json:"currency"`
	Value     int64            `json:"value"`
	Slaves    []string         `json:"slaves"`
	Owner     string           `json:"master"`
	Bank      Bank             `json:"bank"`
	Cooldowns map[string]int64 `json:"cooldowns"`
	Arena     Arena            `json:"arena"`
	CreatedAt int64            `json:"createdAt"`
}

// NewRecord builds the default state for a player first seen now.
func NewRecord(userID, nickname string, initialLimit int64, initialLevel int, now time.Time) Record {
	if nickname == "" {
		nickname = "player " + userID
	}
	return Record{
		UserID:   userID,
		Nickname: nickname,
		Currency: 0,
		Value:    100,
		Slaves:   []string{},
		Bank: Bank{
			Balance:          0,
			Level:            initialLevel,
			Limit:            initialLimit,
			LastInterestTime: now.Unix(),
		},
		Cooldowns: map[string]int64{},
		Arena:     Arena{Tier: TierBronze},
		CreatedAt: now.Unix(),
	}
}

// Owns reports whether userID is in the record's roster.
func (r *Record) Owns(userID string) bool {
	for _, id := range r.Slaves {
		if id == userID {
			return true
		}
	}
	return false
}

// RemoveSlave drops userID from the roster if present.
func (r *Record) RemoveSlave(userID string) {
	out := r.Slaves[:0]
	for _, id := range r.Slaves {
		if id != userID {
			out = append(out, id)
		}
	}
	r.Slaves = out
}

// CooldownRemaining returns how long the action stays gated, zero if ready.
func (r *Record) CooldownRemaining(action string, cooldown time.Duration, now time.Time) time.Duration {
	last, ok := r.Cooldowns[action]
	if !ok {
		return 0
	}
	elapsed := now.Sub(time.Unix(last, 0))
	if elapsed >= cooldown {
		return 0
	}
	return cooldown - elapsed
}

// StampCooldown records the action as performed now.
func (r *Record) StampCooldown(action string, now time.Time) {
	if r.Cooldowns == nil {
		r.Cooldowns = map[string]int64{}
	}
	r.Cooldowns[action] = now.Unix()
}
