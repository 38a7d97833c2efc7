package game

import "time"

// Deposit moves coins from hand into the bank, bounded by the credit limit.
func (s *Service) Deposit(groupID, userID, nickname string, amount int64) (BankReceipt, error) {
	var out BankReceipt
	if amount <= 0 {
		return out, ErrAmountNotPositive
	}
	rec, err := s.ensure(groupID, userID, nickname)
	if err != nil {
		return out, err
	}
	if rec.Currency < amount {
		return out, ErrInsufficientFunds
	}
	if rec.Bank.Balance+amount > rec.Bank.Limit {
		return out, ErrOverDepositLimit
	}
	rec.Currency -= amount
	rec.Bank.Balance += amount
	if err := s.store.Put(groupID, userID, rec); err != nil {
		return out, err
	}
	return BankReceipt{Amount: amount, Balance: rec.Bank.Balance, Currency: rec.Currency}, nil
}

// Withdraw moves coins from the bank back into hand.
func (s *Service) Withdraw(groupID, userID, nickname string, amount int64) (BankReceipt, error) {
	var out BankReceipt
	if amount <= 0 {
		return out, ErrAmountNotPositive
	}
	rec, err := s.ensure(groupID, userID, nickname)
	if err != nil {
		return out, err
	}
	if rec.Bank.Balance < amount {
		return out, ErrInsufficientBank
	}
	rec.Currency += amount
	rec.Bank.Balance -= amount
	if err := s.store.Put(groupID, userID, rec); err != nil {
		return out, err
	}
	return BankReceipt{Amount: amount, Balance: rec.Bank.Balance, Currency: rec.Currency}, nil
}

// UpgradeCredit raises the credit level and recomputes the deposit limit.
func (s *Service) UpgradeCredit(groupID, userID, nickname string) (UpgradeResult, error) {
	var out UpgradeResult
	rec, err := s.ensure(groupID, userID, nickname)
	if err != nil {
		return out, err
	}
	price := UpgradePrice(s.cfg.Bank.InitialUpgradePrice, s.cfg.Bank.UpgradePriceMulti, rec.Bank.Level)
	if rec.Currency < price {
		return UpgradeResult{Price: price}, ErrInsufficientFunds
	}
	rec.Currency -= price
	rec.Bank.Level++
	rec.Bank.Limit = CreditLimit(s.cfg.Bank.InitialLimit, s.cfg.Bank.LimitIncreaseMulti, rec.Bank.Level)
	if err := s.store.Put(groupID, userID, rec); err != nil {
		return out, err
	}
	return UpgradeResult{Level: rec.Bank.Level, Limit: rec.Bank.Limit, Price: price}, nil
}

// CollectInterest pays out interest for whole elapsed hours, capped at the
// configured window. A zero payout leaves the interest clock untouched so
// short balances keep accruing toward a full hour.
func (s *Service) CollectInterest(groupID, userID, nickname string) (InterestResult, error) {
	var out InterestResult
	rec, err := s.ensure(groupID, userID, nickname)
	if err != nil {
		return out, err
	}
	now := s.now()
	elapsed := now.Sub(time.Unix(rec.Bank.LastInterestTime, 0))
	payout, hours := InterestFor(rec.Bank.Balance, s.cfg.Bank.InterestRate, elapsed, s.cfg.Bank.MaxInterestTime)
	if hours == 0 || payout <= 0 {
		return InterestResult{Hours: hours}, nil
	}
	rec.Currency += payout
	rec.Bank.LastInterestTime = now.Unix()
	if err := s.store.Put(groupID, userID, rec); err != nil {
		return out, err
	}
	return InterestResult{Hours: hours, Payout: payout, Currency: rec.Currency}, nil
}
