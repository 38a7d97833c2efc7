package bot

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"slavemarket/internal/game"
	"slavemarket/internal/reset"
	"slavemarket/internal/store"
)

const (
	rankingLimit = 10

	// boardLimit caps each board inside a multi-board reply.
	boardLimit = 5
)

func coins(n int64) string {
	return fmt.Sprintf("%d coins", n)
}

// describeError turns a service error into reply text. Player mistakes
// and cooldowns are plain denials; anything else is an internal failure
// worth logging.
func describeError(err error) string {
	var cd *game.CooldownError
	if errors.As(err, &cd) {
		return fmt.Sprintf("⏳ %s", cd.Error())
	}
	switch {
	case errors.Is(err, game.ErrAmountNotPositive),
		errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInsufficientBank),
		errors.Is(err, game.ErrOverDepositLimit),
		errors.Is(err, game.ErrSelfTarget),
		errors.Is(err, game.ErrAlreadyYours),
		errors.Is(err, game.ErrAlreadyOwned),
		errors.Is(err, game.ErrNotYourSlave),
		errors.Is(err, game.ErrNoOwner),
		errors.Is(err, game.ErrNoSlaves),
		errors.Is(err, game.ErrTargetTooPoor),
		errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrUnknownPlayer),
		errors.Is(err, game.ErrSamePartiesGiven):
		return err.Error()
	}
	log.WithError(err).Error("command failed")
	return "something went wrong, try again later"
}

func formatProfile(p game.Profile, self bool) string {
	var b strings.Builder
	rec := p.Record
	if self {
		fmt.Fprintf(&b, "📋 **%s**\n", rec.Nickname)
	} else {
		fmt.Fprintf(&b, "🔍 **%s**\n", rec.Nickname)
	}
	fmt.Fprintf(&b, "💰 coins: %d (bank: %d/%d, credit level %d)\n",
		rec.Currency, rec.Bank.Balance, rec.Bank.Limit, rec.Bank.Level)
	fmt.Fprintf(&b, "💎 value: %d\n", rec.Value)
	fmt.Fprintf(&b, "🏆 arena: %s, %d points (%dW/%dL)\n",
		rec.Arena.Tier, rec.Arena.Points, rec.Arena.Wins, rec.Arena.Losses)
	if p.OwnerName != "" {
		fmt.Fprintf(&b, "⛓️ owned by %s\n", p.OwnerName)
	} else {
		b.WriteString("🕊️ free\n")
	}
	fmt.Fprintf(&b, "👥 slaves: %d", len(rec.Slaves))
	return b.String()
}

func formatRoster(p game.Profile) string {
	if len(p.Slaves) == 0 {
		return "you do not own anyone yet"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "👥 you own %d:\n", len(p.Slaves))
	for _, sl := range p.Slaves {
		fmt.Fprintf(&b, "• %s (value %d)\n", sl.Nickname, sl.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatWork(res game.WorkResult) string {
	return fmt.Sprintf("💼 %s %s! you now hold %s", res.Flavor, coins(res.Income), coins(res.Currency))
}

func formatPurchase(res game.PurchaseResult) string {
	return fmt.Sprintf("🛒 you bought **%s** for %s, %s left", res.TargetName, coins(res.Price), coins(res.Currency))
}

func formatFreedom(res game.FreedomResult) string {
	return fmt.Sprintf("🕊️ you paid %s to %s and are free again, value drops %d → %d",
		coins(res.Price), res.FormerOwner, res.OldValue, res.NewValue)
}

func formatRelease(res game.ReleaseResult) string {
	return fmt.Sprintf("🎉 you released **%s**, their value rises by %d to %d",
		res.TargetName, res.ValueBonus, res.NewValue)
}

func formatTransfer(res game.TransferResult) string {
	return fmt.Sprintf("🤝 **%s** now belongs to **%s**", res.SlaveName, res.NewOwnerName)
}

func formatRob(res game.RobResult) string {
	if res.Success {
		return fmt.Sprintf("🦹 you robbed **%s** for %s, you now hold %s",
			res.TargetName, coins(res.Amount), coins(res.Currency))
	}
	return fmt.Sprintf("🚔 **%s** caught you! fined %s, you now hold %s",
		res.TargetName, coins(res.Penalty), coins(res.Currency))
}

func formatReceipt(cmd string, res game.BankReceipt) string {
	verb := "deposited"
	if cmd == "withdraw" {
		verb = "withdrew"
	}
	return fmt.Sprintf("🏦 %s %s, bank: %d, hand: %d", verb, coins(res.Amount), res.Balance, res.Currency)
}

func formatUpgrade(res game.UpgradeResult) string {
	return fmt.Sprintf("📈 credit level %d for %s, deposit limit is now %d", res.Level, coins(res.Price), res.Limit)
}

func formatInterest(res game.InterestResult) string {
	if res.Payout <= 0 {
		return "no interest accrued yet, come back later"
	}
	return fmt.Sprintf("💹 %dh of interest pays %s, you now hold %s", res.Hours, coins(res.Payout), coins(res.Currency))
}

func formatTraining(res game.TrainReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏋️ trained %d (%d ok, %d failed) for %s\n",
		res.Trained, res.SuccessCount, res.FailCount, coins(res.TotalCost))
	for _, o := range res.Outcomes {
		switch {
		case o.Reason != "":
			fmt.Fprintf(&b, "• %s: skipped, %s\n", o.Name, o.Reason)
		case o.Success:
			fmt.Fprintf(&b, "• %s: +%d value → %d\n", o.Name, o.ValueGain, o.NewValue)
		default:
			fmt.Fprintf(&b, "• %s: no progress, %s burned\n", o.Name, coins(o.Cost))
		}
	}
	fmt.Fprintf(&b, "you hold %s", coins(res.Remaining))
	return b.String()
}

func formatDuel(res game.DuelResult) string {
	if res.Won {
		return fmt.Sprintf("⚔️ **%s** won the duel! reward %s, value +%d",
			res.FighterName, coins(res.Reward), res.ValueBonus)
	}
	return fmt.Sprintf("⚔️ **%s** lost the duel, entry fee of %s is gone", res.FighterName, coins(res.EntryFee))
}

func formatBattle(res game.BattleResult) string {
	if res.Won {
		msg := fmt.Sprintf("🏆 ranked win! +%s, %+d points (%d total, %s tier)",
			coins(res.Reward), res.PointsDelta, res.Points, res.NewTier)
		if res.Promoted {
			msg += fmt.Sprintf("\n🎖️ promoted: %s → %s", res.Tier, res.NewTier)
		}
		return msg
	}
	return fmt.Sprintf("💀 ranked loss, %d points (%d total, %s tier)", res.PointsDelta, res.Points, res.NewTier)
}

func formatRanking(title string, entries []game.RankEntry, field game.RankField) string {
	if len(entries) == 0 {
		return "nobody is on the board yet"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🏅 **%s**\n", title)
	for _, e := range entries {
		fmt.Fprintf(&b, "%d. %s - %s\n", e.Rank, e.Rec.Nickname, rankCell(e.Rec, field))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatCombinedRankings is the whole-market view: the coin, value and
// slave-count boards side by side in one reply.
func formatCombinedRankings(byCoins, byValue, bySlaves []game.RankEntry) string {
	if len(byCoins) == 0 {
		return "nobody is on the board yet"
	}
	var b strings.Builder
	b.WriteString("🏅 **group rankings**\n")
	boards := []struct {
		header  string
		entries []game.RankEntry
		field   game.RankField
	}{
		{"💰 coins", byCoins, game.RankByCurrency},
		{"💎 value", byValue, game.RankByValue},
		{"👥 slaves", bySlaves, game.RankBySlaves},
	}
	for _, board := range boards {
		b.WriteString(board.header + "\n")
		for _, e := range board.entries {
			fmt.Fprintf(&b, "%d. %s - %s\n", e.Rank, e.Rec.Nickname, rankCell(e.Rec, board.field))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func rankCell(rec game.Record, field game.RankField) string {
	switch field {
	case game.RankByValue:
		return fmt.Sprintf("value %d", rec.Value)
	case game.RankBySlaves:
		return fmt.Sprintf("%d slaves", len(rec.Slaves))
	case game.RankByPoints:
		return fmt.Sprintf("%s, %d points", rec.Arena.Tier, rec.Arena.Points)
	default:
		return coins(rec.Currency)
	}
}

// formatSnapshot renders a saved reset backup the same way as the live
// combined rankings: three sorted boards, top entries only.
func formatSnapshot(gs store.GroupSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📜 **standings of %s**\n", gs.Date)
	boards := []struct {
		header string
		key    func(p store.PlayerSummary) int64
		cell   func(p store.PlayerSummary) string
	}{
		{"💰 coins",
			func(p store.PlayerSummary) int64 { return p.Currency },
			func(p store.PlayerSummary) string { return coins(p.Currency) }},
		{"💎 value",
			func(p store.PlayerSummary) int64 { return p.Value },
			func(p store.PlayerSummary) string { return fmt.Sprintf("value %d", p.Value) }},
		{"👥 slaves",
			func(p store.PlayerSummary) int64 { return int64(p.SlaveCount) },
			func(p store.PlayerSummary) string { return fmt.Sprintf("%d slaves", p.SlaveCount) }},
	}
	for _, board := range boards {
		players := make([]store.PlayerSummary, len(gs.Players))
		copy(players, gs.Players)
		sort.SliceStable(players, func(i, j int) bool {
			return board.key(players[i]) > board.key(players[j])
		})
		if len(players) > boardLimit {
			players = players[:boardLimit]
		}
		b.WriteString(board.header + "\n")
		for i, p := range players {
			fmt.Fprintf(&b, "%d. %s - %s\n", i+1, p.Nickname, board.cell(p))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatReset(res reset.Result) string {
	return fmt.Sprintf("🔄 reset %s done: %d players across %d groups, standings backed up",
		res.ResetID[:8], res.Players, res.Groups)
}

func helpText(prefix string) string {
	var b strings.Builder
	b.WriteString("**slave market commands**\n")
	for _, line := range []string{
		"market-info - your coins, value, bank and arena standing",
		"work - earn coins on a cooldown",
		"buy-slave @user - buy a free player at 120% of their value",
		"my-slaves - list who you own",
		"buy-freedom - pay 150% of your value to your owner and walk free",
		"release-slave @user - free an owned player with a value bonus",
		"transfer-slave @slave @newOwner - hand an owned player over",
		"slave-details @user - inspect another player",
		"rob [@user] - rob someone, at your own risk",
		"deposit/withdraw <amount> - move coins in and out of the bank",
		"upgrade-credit - raise your deposit limit",
		"collect-interest - collect hourly bank interest",
		"train-slave [@user] - train one slave or the whole roster",
		"slave-duel [@user] - send a slave into the arena",
		"ranked-battle - fight on the points ladder",
		"rankings / currency-ranking / value-ranking / slave-ranking / tier-ranking",
		"last-week-rankings - standings saved by the last weekly reset",
		"reset-status - when the next weekly reset runs",
		"manual-reset - run the reset now (admins only)",
	} {
		b.WriteString(prefix + line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
