package game

import (
	"testing"
	"time"
)

func TestDepositWithdrawRoundTrip(t *testing.T) {
	svc := newTestService(t, nil)
	fund(t, svc, "g", "u1", 500)

	rcpt, err := svc.Deposit("g", "u1", "alice", 300)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if rcpt.Balance != 300 || rcpt.Currency != 200 {
		t.Fatalf("after deposit: %+v", rcpt)
	}

	rcpt, err = svc.Withdraw("g", "u1", "alice", 300)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if rcpt.Balance != 0 || rcpt.Currency != 500 {
		t.Fatalf("round trip must restore the total: %+v", rcpt)
	}
}

func TestDepositRefusals(t *testing.T) {
	svc := newTestService(t, nil)
	fund(t, svc, "g", "u1", 5000)

	if _, err := svc.Deposit("g", "u1", "alice", 0); err != ErrAmountNotPositive {
		t.Fatalf("zero amount: got %v", err)
	}
	if _, err := svc.Deposit("g", "u1", "alice", -5); err != ErrAmountNotPositive {
		t.Fatalf("negative amount: got %v", err)
	}
	if _, err := svc.Deposit("g", "u1", "alice", 6000); err != ErrInsufficientFunds {
		t.Fatalf("more than held: got %v", err)
	}
	// Default limit is 1000.
	if _, err := svc.Deposit("g", "u1", "alice", 1001); err != ErrOverDepositLimit {
		t.Fatalf("over limit: got %v", err)
	}
	if _, err := svc.Withdraw("g", "u1", "alice", 10); err != ErrInsufficientBank {
		t.Fatalf("empty bank: got %v", err)
	}

	// A refused deposit must not move any money.
	rec := mustGet(t, svc, "g", "u1")
	if rec.Currency != 5000 || rec.Bank.Balance != 0 {
		t.Fatalf("refusal moved money: %+v", rec)
	}
}

func TestUpgradeCredit(t *testing.T) {
	svc := newTestService(t, nil)
	fund(t, svc, "g", "u1", 1000)

	res, err := svc.UpgradeCredit("g", "u1", "alice")
	if err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if res.Level != 2 || res.Price != 100 {
		t.Fatalf("first upgrade: %+v", res)
	}
	if res.Limit != 1250 {
		t.Fatalf("level 2 limit: got %d want 1250", res.Limit)
	}

	// Second upgrade is dearer.
	res, err = svc.UpgradeCredit("g", "u1", "alice")
	if err != nil {
		t.Fatalf("second upgrade: %v", err)
	}
	if res.Level != 3 || res.Price != 120 {
		t.Fatalf("second upgrade: %+v", res)
	}

	rec := mustGet(t, svc, "g", "u1")
	if rec.Currency != 1000-100-120 {
		t.Fatalf("upgrade fees wrong: %d", rec.Currency)
	}
}

func TestUpgradeCreditTooPoor(t *testing.T) {
	svc := newTestService(t, nil)
	fund(t, svc, "g", "u1", 50)
	res, err := svc.UpgradeCredit("g", "u1", "alice")
	if err != ErrInsufficientFunds {
		t.Fatalf("got %v", err)
	}
	if res.Price != 100 {
		t.Fatalf("refusal must quote the price, got %+v", res)
	}
}

func TestCollectInterest(t *testing.T) {
	svc := newTestService(t, nil)
	fund(t, svc, "g", "u1", 1000)
	if _, err := svc.Deposit("g", "u1", "alice", 1000); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	// Not a full hour yet: nothing pays out and the clock stays put.
	advance(svc, 30*time.Minute)
	res, err := svc.CollectInterest("g", "u1", "alice")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Payout != 0 || res.Hours != 0 {
		t.Fatalf("early collect: %+v", res)
	}
	rec := mustGet(t, svc, "g", "u1")
	if rec.Bank.LastInterestTime != testEpoch.Unix() {
		t.Fatalf("zero payout must not advance the interest clock")
	}

	// Three full hours at 1% on 1000.
	advance(svc, 3*time.Hour)
	res, err = svc.CollectInterest("g", "u1", "alice")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Hours != 3 || res.Payout != 30 || res.Currency != 30 {
		t.Fatalf("three hours: %+v", res)
	}
	rec = mustGet(t, svc, "g", "u1")
	if rec.Bank.LastInterestTime != testEpoch.Add(3*time.Hour).Unix() {
		t.Fatalf("payout must advance the interest clock")
	}

	// Immediately collecting again finds nothing new.
	res, err = svc.CollectInterest("g", "u1", "alice")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Payout != 0 {
		t.Fatalf("double collect paid out: %+v", res)
	}
}
