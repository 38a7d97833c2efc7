package game

// Result payloads returned to the chat layer. The bot formats these into
// reply text; the service never builds user-facing strings itself.

type BankReceipt struct {
	Amount   int64
	Balance  int64
	Currency int64
}

type UpgradeResult struct {
	Level int
	Limit int64
	Price int64
}

type InterestResult struct {
	Hours    int
	Payout   int64
	Currency int64
}

type WorkResult struct {
	Income     int64
	Flavor     string
	Currency   int64
	OwnerBonus bool
}

type PurchaseResult struct {
	TargetID   string
	TargetName string
	Price      int64
	Currency   int64
}

type RobResult struct {
	Success    bool
	TargetID   string
	TargetName string
	Amount     int64
	Penalty    int64
	Currency   int64
}

type FreedomResult struct {
	Price       int64
	OldValue    int64
	NewValue    int64
	FormerOwner string
}

type ReleaseResult struct {
	TargetName string
	ValueBonus int64
	NewValue   int64
}

type TransferResult struct {
	SlaveName    string
	NewOwnerName string
}

type TrainOutcome struct {
	UserID    string
	Name      string
	Success   bool
	Cost      int64
	ValueGain int64
	NewValue  int64
	Reason    string
}

type TrainReport struct {
	Outcomes     []TrainOutcome
	Trained      int
	SuccessCount int
	FailCount    int
	TotalCost    int64
	Remaining    int64
}

type DuelResult struct {
	FighterID   string
	FighterName string
	EntryFee    int64
	Won         bool
	Reward      int64
	ValueBonus  int64
}

type BattleResult struct {
	Won         bool
	Tier        Tier
	NewTier     Tier
	Promoted    bool
	Reward      int64
	PointsDelta int64
	Points      int64
}

type SlaveView struct {
	UserID   string
	Nickname string
	Value    int64
}

// Profile is the market-info / my-slaves / slave-details view model.
type Profile struct {
	Record    Record
	OwnerName string
	Slaves    []SlaveView
}

// RankField selects which numeric field a ranking sorts by.
type RankField string

const (
	RankByCurrency RankField = "currency"
	RankByValue    RankField = "value"
	RankBySlaves   RankField = "slaves"
	RankByPoints   RankField = "points"
)

type RankEntry struct {
	Rank int
	Rec  Record
}
