package game

// Income ranges for a work shift. Players who own at least one other
// player draw from the higher range.
const (
	workOwnerIncomeLo  = 50
	workOwnerIncomeHi  = 150
	workWorkerIncomeLo = 20
	workWorkerIncomeHi = 80
)

// Work earns a random income on a cooldown, with a flavor line drawn from
// the role's pool.
func (s *Service) Work(groupID, userID, nickname string) (WorkResult, error) {
	var out WorkResult
	rec, err := s.ensure(groupID, userID, nickname)
	if err != nil {
		return out, err
	}
	if err := s.checkCooldown(&rec, userID, ActionWork, s.cfg.Work.Cooldown); err != nil {
		return out, err
	}

	isOwner := len(rec.Slaves) > 0
	var income int64
	if isOwner {
		income = s.rollRange(workOwnerIncomeLo, workOwnerIncomeHi)
	} else {
		income = s.rollRange(workWorkerIncomeLo, workWorkerIncomeHi)
	}
	lines := s.flavor.Lines(isOwner)
	line := lines[s.pick(len(lines))]

	rec.Currency += income
	rec.StampCooldown(ActionWork, s.now())
	if err := s.store.Put(groupID, userID, rec); err != nil {
		return out, err
	}
	return WorkResult{Income: income, Flavor: line, Currency: rec.Currency, OwnerBonus: isOwner}, nil
}
