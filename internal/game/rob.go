package game

import "math"

// Minimum coins a target must hold before a robbery is worth attempting.
// Below this the attempt is refused outright and no cooldown is consumed.
const robMinTargetCurrency = 10

const (
	robGainLo = 10
	robGainHi = 50
	// Floor on the failure penalty so broke robbers still pay something.
	robMinPenalty = 5
)

// Rob attempts to steal coins from targetID, or from a random other known
// player when targetID is empty.
func (s *Service) Rob(groupID, userID, nickname, targetID string) (RobResult, error) {
	var out RobResult
	rec, err := s.ensure(groupID, userID, nickname)
	if err != nil {
		return out, err
	}
	if err := s.checkCooldown(&rec, userID, ActionRob, s.cfg.Rob.Cooldown); err != nil {
		return out, err
	}

	if targetID == "" {
		users := s.store.ListUsers(groupID)
		if len(users) < 2 {
			return out, ErrNotEnoughPlayers
		}
		others := make([]string, 0, len(users)-1)
		for _, id := range users {
			if id != userID {
				others = append(others, id)
			}
		}
		if len(others) == 0 {
			return out, ErrNotEnoughPlayers
		}
		targetID = others[s.pick(len(others))]
	}
	if targetID == userID {
		return out, ErrSelfTarget
	}

	target, ok := s.store.Get(groupID, targetID)
	if !ok {
		return out, ErrUnknownPlayer
	}
	if target.Currency < robMinTargetCurrency {
		return out, ErrTargetTooPoor
	}

	now := s.now()
	if s.chance(s.cfg.Rob.SuccessRate) {
		amount := s.rollRange(robGainLo, robGainHi)
		if amount > target.Currency {
			amount = target.Currency
		}
		rec.Currency += amount
		target.Currency -= amount
		rec.StampCooldown(ActionRob, now)
		if err := s.store.Put(groupID, userID, rec); err != nil {
			return out, err
		}
		if err := s.store.Put(groupID, targetID, target); err != nil {
			return out, err
		}
		return RobResult{
			Success: true, TargetID: targetID, TargetName: target.Nickname,
			Amount: amount, Currency: rec.Currency,
		}, nil
	}

	penalty := int64(math.Floor(float64(rec.Currency) * s.cfg.Rob.Penalty))
	if penalty < robMinPenalty {
		penalty = robMinPenalty
	}
	rec.Currency -= penalty
	if rec.Currency < 0 {
		rec.Currency = 0
	}
	rec.StampCooldown(ActionRob, now)
	if err := s.store.Put(groupID, userID, rec); err != nil {
		return out, err
	}
	return RobResult{
		Success: false, TargetID: targetID, TargetName: target.Nickname,
		Penalty: penalty, Currency: rec.Currency,
	}, nil
}
