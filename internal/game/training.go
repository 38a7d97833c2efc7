package game

import (
	"math"

	"slavemarket/internal/model"
)

// TrainSlaves runs a training session for one named slave, or for the whole
// roster when targetID is empty. Cost is charged per slave up front; a
// failed session still burns half of it. Slaves the owner can no longer
// afford are reported in the outcome rather than aborting the batch.
func (s *Service) TrainSlaves(groupID, ownerID, ownerName, targetID string) (TrainReport, error) {
	var out TrainReport
	owner, err := s.ensure(groupID, ownerID, ownerName)
	if err != nil {
		return out, err
	}
	if len(owner.Slaves) == 0 {
		return out, ErrNoSlaves
	}
	if targetID != "" && !owner.Owns(targetID) {
		return out, ErrNotYourSlave
	}
	if err := s.checkCooldown(&owner, ownerID, ActionTraining, s.cfg.Training.Cooldown); err != nil {
		return out, err
	}

	roster := owner.Slaves
	if targetID != "" {
		roster = []string{targetID}
	}

	report := TrainReport{}
	for _, id := range roster {
		slave, ok := s.store.Get(groupID, id)
		if !ok {
			continue
		}
		cost := int64(math.Floor(float64(slave.Value) * s.cfg.Training.CostRate))
		if owner.Currency < cost {
			report.Outcomes = append(report.Outcomes, TrainOutcome{
				UserID: id, Name: slave.Nickname, Cost: cost, Reason: "insufficient coins",
			})
			continue
		}
		report.Trained++
		if s.chance(s.cfg.Training.SuccessRate) {
			owner.Currency -= cost
			report.TotalCost += cost
			gain := int64(math.Floor(float64(slave.Value) * s.cfg.Training.ValueIncreaseRate))
			slave.Value += gain
			if err := s.store.Put(groupID, id, slave); err != nil {
				return out, err
			}
			report.SuccessCount++
			report.Outcomes = append(report.Outcomes, TrainOutcome{
				UserID: id, Name: slave.Nickname, Success: true,
				Cost: cost, ValueGain: gain, NewValue: slave.Value,
			})
			continue
		}
		// Failed sessions refund half the fee.
		spent := cost / 2
		owner.Currency -= spent
		report.TotalCost += spent
		report.FailCount++
		report.Outcomes = append(report.Outcomes, TrainOutcome{
			UserID: id, Name: slave.Nickname, Cost: spent, NewValue: slave.Value,
		})
	}

	if report.Trained > 0 {
		owner.StampCooldown(ActionTraining, s.now())
	}
	report.Remaining = owner.Currency
	if err := s.store.Put(groupID, ownerID, owner); err != nil {
		return out, err
	}
	return report, nil
}

// SlaveDuel sends one owned slave into the arena. The owner pays the entry
// fee; a win pays it back with a premium and bumps the fighter's value.
func (s *Service) SlaveDuel(groupID, ownerID, ownerName, fighterID string) (DuelResult, error) {
	var out DuelResult
	owner, err := s.ensure(groupID, ownerID, ownerName)
	if err != nil {
		return out, err
	}
	if len(owner.Slaves) == 0 {
		return out, ErrNoSlaves
	}
	if fighterID == "" {
		fighterID = owner.Slaves[s.pick(len(owner.Slaves))]
	} else if !owner.Owns(fighterID) {
		return out, ErrNotYourSlave
	}
	fee := s.cfg.Arena.EntryFee
	if owner.Currency < fee {
		return DuelResult{EntryFee: fee}, ErrInsufficientFunds
	}
	if err := s.checkCooldown(&owner, ownerID, ActionArena, s.cfg.Arena.Cooldown); err != nil {
		return out, err
	}
	fighter, ok := s.store.Get(groupID, fighterID)
	if !ok {
		return out, ErrUnknownPlayer
	}

	owner.Currency -= fee
	out = DuelResult{FighterID: fighterID, FighterName: fighter.Nickname, EntryFee: fee}
	if s.chance(0.5) {
		out.Won = true
		out.Reward = int64(math.Floor(float64(fee) * (1 + s.cfg.Arena.RewardRate)))
		owner.Currency += out.Reward
		out.ValueBonus = int64(math.Floor(float64(fighter.Value) * s.cfg.Arena.ValueBonus))
		fighter.Value += out.ValueBonus
		if err := s.store.Put(groupID, fighterID, fighter); err != nil {
			return out, err
		}
	}
	owner.StampCooldown(ActionArena, s.now())
	if err := s.store.Put(groupID, ownerID, owner); err != nil {
		return out, err
	}
	return out, nil
}

// Ranked point swings per battle.
const (
	rankedWinPointsLo  = 10
	rankedWinPointsHi  = 25
	rankedLossPointsLo = 5
	rankedLossPointsHi = 15
)

// RankedBattle fights a match on the points ladder. Wins pay a reward
// scaled by the player's current tier and move points up; losses move
// points down, floored at zero. The tier is recomputed afterward.
func (s *Service) RankedBattle(groupID, userID, nickname string) (BattleResult, error) {
	var out BattleResult
	rec, err := s.ensure(groupID, userID, nickname)
	if err != nil {
		return out, err
	}
	if err := s.checkCooldown(&rec, userID, ActionRanked, s.cfg.Ranking.Cooldown); err != nil {
		return out, err
	}

	oldTier := rec.Arena.Tier
	out = BattleResult{Tier: oldTier}
	if s.chance(0.6) {
		out.Won = true
		base := float64(s.cfg.Ranking.BaseReward)
		out.Reward = int64(base*s.cfg.TierBonusFor(string(oldTier))) + int64(base*s.cfg.Ranking.WinBonus)
		rec.Currency += out.Reward
		out.PointsDelta = s.rollRange(rankedWinPointsLo, rankedWinPointsHi)
		rec.Arena.Points += out.PointsDelta
		rec.Arena.Wins++
	} else {
		out.PointsDelta = -s.rollRange(rankedLossPointsLo, rankedLossPointsHi)
		rec.Arena.Points += out.PointsDelta
		if rec.Arena.Points < 0 {
			rec.Arena.Points = 0
		}
		rec.Arena.Losses++
	}
	rec.Arena.Tier = model.TierForPoints(rec.Arena.Points)
	out.NewTier = rec.Arena.Tier
	out.Promoted = out.NewTier != oldTier && rec.Arena.Points > 0 && out.Won
	out.Points = rec.Arena.Points

	rec.StampCooldown(ActionRanked, s.now())
	if err := s.store.Put(groupID, userID, rec); err != nil {
		return out, err
	}
	return out, nil
}
