package game

import "math"

// Ownership is a forest: each player has at most one owner and the edge is
// stored on both sides (owner roster + back-reference). attach and detach
// are the only places the two sides change, so every operation keeps them
// in sync within one logical transaction.

func attach(owner, slave *Record) {
	if !owner.Owns(slave.UserID) {
		owner.Slaves = append(owner.Slaves, slave.UserID)
	}
	slave.Owner = owner.UserID
}

func detach(owner, slave *Record) {
	owner.RemoveSlave(slave.UserID)
	slave.Owner = ""
}

// BuySlave purchases a free player at 120% of their market value.
func (s *Service) BuySlave(groupID, buyerID, buyerName, targetID string) (PurchaseResult, error) {
	var out PurchaseResult
	if targetID == "" || targetID == buyerID {
		return out, ErrSelfTarget
	}
	buyer, err := s.ensure(groupID, buyerID, buyerName)
	if err != nil {
		return out, err
	}
	if err := s.checkCooldown(&buyer, buyerID, ActionPurchase, s.cfg.Purchase.Cooldown); err != nil {
		return out, err
	}
	target, err := s.ensure(groupID, targetID, "")
	if err != nil {
		return out, err
	}
	if buyer.Owns(targetID) {
		return out, ErrAlreadyYours
	}
	if target.Owner != "" {
		return out, ErrAlreadyOwned
	}

	price := PurchasePrice(target.Value)
	if buyer.Currency < price {
		return PurchaseResult{Price: price}, ErrInsufficientFunds
	}

	buyer.Currency -= price
	attach(&buyer, &target)
	buyer.StampCooldown(ActionPurchase, s.now())

	if err := s.store.Put(groupID, buyerID, buyer); err != nil {
		return out, err
	}
	if err := s.store.Put(groupID, targetID, target); err != nil {
		return out, err
	}
	return PurchaseResult{TargetID: targetID, TargetName: target.Nickname, Price: price, Currency: buyer.Currency}, nil
}

// BuyFreedom lets an owned player pay 150% of their value to their owner
// and walk free, at the cost of dropping to 20% of their former value.
func (s *Service) BuyFreedom(groupID, userID, nickname string) (FreedomResult, error) {
	var out FreedomResult
	rec, err := s.ensure(groupID, userID, nickname)
	if err != nil {
		return out, err
	}
	if rec.Owner == "" {
		return out, ErrNoOwner
	}
	owner, ok := s.store.Get(groupID, rec.Owner)
	if !ok {
		return out, ErrUnknownPlayer
	}
	price := BuybackPrice(rec.Value)
	if rec.Currency < price {
		return FreedomResult{Price: price}, ErrInsufficientFunds
	}
	if err := s.checkCooldown(&rec, userID, ActionBuyback, s.cfg.BuyBack.Cooldown); err != nil {
		return out, err
	}

	rec.Currency -= price
	owner.Currency += price
	detach(&owner, &rec)

	oldValue := rec.Value
	rec.Value = int64(math.Floor(float64(oldValue) * 0.2))
	rec.StampCooldown(ActionBuyback, s.now())

	if err := s.store.Put(groupID, userID, rec); err != nil {
		return out, err
	}
	if err := s.store.Put(groupID, owner.UserID, owner); err != nil {
		return out, err
	}
	return FreedomResult{Price: price, OldValue: oldValue, NewValue: rec.Value, FormerOwner: owner.Nickname}, nil
}

// ReleaseSlave frees a named owned player and rewards them with a 10%
// value bump. No cooldown applies.
func (s *Service) ReleaseSlave(groupID, ownerID, ownerName, targetID string) (ReleaseResult, error) {
	var out ReleaseResult
	if targetID == "" || targetID == ownerID {
		return out, ErrSelfTarget
	}
	owner, err := s.ensure(groupID, ownerID, ownerName)
	if err != nil {
		return out, err
	}
	if !owner.Owns(targetID) {
		return out, ErrNotYourSlave
	}
	slave, ok := s.store.Get(groupID, targetID)
	if !ok {
		return out, ErrUnknownPlayer
	}

	detach(&owner, &slave)
	bonus := int64(math.Floor(float64(slave.Value) * 0.1))
	slave.Value += bonus

	if err := s.store.Put(groupID, ownerID, owner); err != nil {
		return out, err
	}
	if err := s.store.Put(groupID, targetID, slave); err != nil {
		return out, err
	}
	return ReleaseResult{TargetName: slave.Nickname, ValueBonus: bonus, NewValue: slave.Value}, nil
}

// TransferSlave reassigns one owned player to a different owner. Owner,
// slave and new owner must be three distinct parties.
func (s *Service) TransferSlave(groupID, ownerID, ownerName, slaveID, newOwnerID string) (TransferResult, error) {
	var out TransferResult
	if slaveID == "" || newOwnerID == "" {
		return out, ErrUnknownPlayer
	}
	if slaveID == ownerID || newOwnerID == ownerID || slaveID == newOwnerID {
		return out, ErrSamePartiesGiven
	}
	owner, err := s.ensure(groupID, ownerID, ownerName)
	if err != nil {
		return out, err
	}
	if !owner.Owns(slaveID) {
		return out, ErrNotYourSlave
	}
	slave, ok := s.store.Get(groupID, slaveID)
	if !ok {
		return out, ErrUnknownPlayer
	}
	newOwner, err := s.ensure(groupID, newOwnerID, "")
	if err != nil {
		return out, err
	}

	detach(&owner, &slave)
	attach(&newOwner, &slave)

	if err := s.store.Put(groupID, ownerID, owner); err != nil {
		return out, err
	}
	if err := s.store.Put(groupID, newOwnerID, newOwner); err != nil {
		return out, err
	}
	if err := s.store.Put(groupID, slaveID, slave); err != nil {
		return out, err
	}
	return TransferResult{SlaveName: slave.Nickname, NewOwnerName: newOwner.Nickname}, nil
}
