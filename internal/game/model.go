package game

import (
	"errors"
	"math"
	"time"

	"slavemarket/internal/model"
)

// Persisted state lives in the model package; the aliases keep the
// rest of the game code and the chat layer on short names.
type (
	Tier   = model.Tier
	Bank   = model.Bank
	Arena  = model.Arena
	Record = model.Record
)

const (
	TierBronze   = model.TierBronze
	TierSilver   = model.TierSilver
	TierGold     = model.TierGold
	TierPlatinum = model.TierPlatinum
	TierDiamond  = model.TierDiamond
)

// Cooldown action keys, also the keys inside Record.Cooldowns.
const (
	ActionWork     = "work"
	ActionPurchase = "purchase"
	ActionRob      = "rob"
	ActionBuyback  = "buyback"
	ActionTraining = "training"
	ActionArena    = "arena"
	ActionRanked   = "ranking"
)

var (
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient coins")
	ErrInsufficientBank  = errors.New("insufficient bank balance")
	ErrOverDepositLimit  = errors.New("deposit exceeds credit limit")
	ErrSelfTarget        = errors.New("cannot target yourself")
	ErrAlreadyYours      = errors.New("target is already owned by you")
	ErrAlreadyOwned      = errors.New("target already has an owner")
	ErrNotYourSlave      = errors.New("target is not owned by you")
	ErrNoOwner           = errors.New("you are already free")
	ErrNoSlaves          = errors.New("you do not own anyone")
	ErrTargetTooPoor     = errors.New("target holds too few coins to be worth robbing")
	ErrNotEnoughPlayers  = errors.New("not enough players in this group")
	ErrUnknownPlayer     = errors.New("player record not found")
	ErrSamePartiesGiven  = errors.New("owner, slave and new owner must be distinct")
)

// CooldownError is the refusal for a gated action invoked too early.
// It is a plain denial, not something to log as a failure.
type CooldownError struct {
	Action    string
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return e.Action + " is on cooldown for another " + e.Remaining.Truncate(time.Second).String()
}

// PurchasePrice is what a buyer pays for a free player.
func PurchasePrice(value int64) int64 {
	return int64(math.Floor(float64(value) * 1.2))
}

// BuybackPrice is what an owned player pays to regain freedom.
func BuybackPrice(value int64) int64 {
	return int64(math.Floor(float64(value) * 1.5))
}

// UpgradePrice is the cost of raising the credit level from the given one.
func UpgradePrice(initialPrice int64, priceMulti float64, level int) int64 {
	return int64(float64(initialPrice) * math.Pow(priceMulti, float64(level-1)))
}

// CreditLimit is the bank limit at the given credit level.
func CreditLimit(initialLimit int64, limitMulti float64, level int) int64 {
	return int64(float64(initialLimit) * math.Pow(limitMulti, float64(level-1)))
}

// InterestFor computes the payout for whole hours elapsed, capped at maxHours.
func InterestFor(balance int64, rate float64, elapsed time.Duration, maxHours int) (payout int64, hours int) {
	hours = int(elapsed / time.Hour)
	if hours > maxHours {
		hours = maxHours
	}
	if hours <= 0 {
		return 0, 0
	}
	return int64(float64(balance) * rate * float64(hours)), hours
}
