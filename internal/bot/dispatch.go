package bot

import (
	"errors"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"slavemarket/internal/game"
)

func (r *Router) dispatch(cmd string, args []string, groupID string, m *discordgo.MessageCreate) string {
	userID := m.Author.ID
	name := displayName(m)

	switch cmd {
	case "help":
		return helpText(r.prefix)

	case "market-info":
		p, err := r.svc.MarketInfo(groupID, userID, name)
		if err != nil {
			return describeError(err)
		}
		return formatProfile(p, true)

	case "slave-details":
		target := argTarget(args, 0)
		if target == "" {
			return "mention the player you want to inspect"
		}
		p, err := r.svc.SlaveDetails(groupID, target)
		if err != nil {
			return describeError(err)
		}
		return formatProfile(p, false)

	case "my-slaves":
		p, err := r.svc.MarketInfo(groupID, userID, name)
		if err != nil {
			return describeError(err)
		}
		return formatRoster(p)

	case "work":
		res, err := r.svc.Work(groupID, userID, name)
		if err != nil {
			return describeError(err)
		}
		return formatWork(res)

	case "buy-slave":
		target := argTarget(args, 0)
		if target == "" {
			return "mention the player you want to buy"
		}
		res, err := r.svc.BuySlave(groupID, userID, name, target)
		if err != nil {
			return describePurchaseError(err, res)
		}
		return formatPurchase(res)

	case "buy-freedom":
		res, err := r.svc.BuyFreedom(groupID, userID, name)
		if err != nil {
			if errors.Is(err, game.ErrInsufficientFunds) && res.Price > 0 {
				return "freedom costs " + coins(res.Price) + " and you cannot afford it"
			}
			return describeError(err)
		}
		return formatFreedom(res)

	case "release-slave":
		target := argTarget(args, 0)
		if target == "" {
			return "mention the slave you want to release"
		}
		res, err := r.svc.ReleaseSlave(groupID, userID, name, target)
		if err != nil {
			return describeError(err)
		}
		return formatRelease(res)

	case "transfer-slave":
		slave, newOwner := argTarget(args, 0), argTarget(args, 1)
		if slave == "" || newOwner == "" {
			return "usage: " + r.prefix + "transfer-slave @slave @newOwner"
		}
		res, err := r.svc.TransferSlave(groupID, userID, name, slave, newOwner)
		if err != nil {
			return describeError(err)
		}
		return formatTransfer(res)

	case "rob":
		res, err := r.svc.Rob(groupID, userID, name, argTarget(args, 0))
		if err != nil {
			return describeError(err)
		}
		return formatRob(res)

	case "deposit", "withdraw":
		amount, ok := parseAmount(args)
		if !ok {
			return "usage: " + r.prefix + cmd + " <amount>"
		}
		var receipt game.BankReceipt
		var err error
		if cmd == "deposit" {
			receipt, err = r.svc.Deposit(groupID, userID, name, amount)
		} else {
			receipt, err = r.svc.Withdraw(groupID, userID, name, amount)
		}
		if err != nil {
			return describeError(err)
		}
		return formatReceipt(cmd, receipt)

	case "upgrade-credit":
		res, err := r.svc.UpgradeCredit(groupID, userID, name)
		if err != nil {
			if errors.Is(err, game.ErrInsufficientFunds) && res.Price > 0 {
				return "the next credit level costs " + coins(res.Price) + " and you cannot afford it"
			}
			return describeError(err)
		}
		return formatUpgrade(res)

	case "collect-interest":
		res, err := r.svc.CollectInterest(groupID, userID, name)
		if err != nil {
			return describeError(err)
		}
		return formatInterest(res)

	case "train-slave":
		res, err := r.svc.TrainSlaves(groupID, userID, name, argTarget(args, 0))
		if err != nil {
			return describeError(err)
		}
		return formatTraining(res)

	case "slave-duel":
		res, err := r.svc.SlaveDuel(groupID, userID, name, argTarget(args, 0))
		if err != nil {
			if errors.Is(err, game.ErrInsufficientFunds) && res.EntryFee > 0 {
				return "the arena entry fee is " + coins(res.EntryFee) + " and you cannot afford it"
			}
			return describeError(err)
		}
		return formatDuel(res)

	case "ranked-battle":
		res, err := r.svc.RankedBattle(groupID, userID, name)
		if err != nil {
			return describeError(err)
		}
		return formatBattle(res)

	case "rankings":
		return formatCombinedRankings(
			r.svc.Rank(groupID, game.RankByCurrency, boardLimit),
			r.svc.Rank(groupID, game.RankByValue, boardLimit),
			r.svc.Rank(groupID, game.RankBySlaves, boardLimit),
		)

	case "currency-ranking":
		return formatRanking("coin ranking", r.svc.Rank(groupID, game.RankByCurrency, rankingLimit), game.RankByCurrency)

	case "value-ranking":
		return formatRanking("value ranking", r.svc.Rank(groupID, game.RankByValue, rankingLimit), game.RankByValue)

	case "slave-ranking":
		return formatRanking("slave-count ranking", r.svc.Rank(groupID, game.RankBySlaves, rankingLimit), game.RankBySlaves)

	case "tier-ranking":
		return formatRanking("arena ranking", r.svc.Rank(groupID, game.RankByPoints, rankingLimit), game.RankByPoints)

	case "last-week-rankings":
		snap, ok := r.svc.Store().LatestSnapshot()
		if !ok {
			return "no ranking backup exists yet"
		}
		gs, ok := snap[groupID]
		if !ok {
			return "no ranking backup exists for this group yet"
		}
		return formatSnapshot(gs)

	case "reset-status":
		return r.cycle.Status().Describe()

	case "manual-reset":
		if !r.cfg.IsAdmin(userID) {
			return "only admins can trigger a reset"
		}
		res, err := r.cycle.Run()
		if err != nil {
			log.WithError(err).Error("manual reset failed")
			return "reset failed, check the logs"
		}
		return formatReset(res)
	}

	return ""
}

func parseAmount(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func describePurchaseError(err error, res game.PurchaseResult) string {
	if errors.Is(err, game.ErrInsufficientFunds) && res.Price > 0 {
		return "that player costs " + coins(res.Price) + " and you cannot afford it"
	}
	return describeError(err)
}
