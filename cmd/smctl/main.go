package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"slavemarket/internal/config"
	"slavemarket/internal/flavor"
	"slavemarket/internal/game"
	"slavemarket/internal/reset"
	"slavemarket/internal/store"
)

func main() {
	_ = godotenv.Load()

	dataDir := envOr("SM_DATA_DIR", "data")
	gameConfig := envOr("SM_GAME_CONFIG", "config.yaml")

	root := &cobra.Command{
		Use:          "smctl",
		Short:        "Slave market admin tool",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", dataDir, "data directory")
	root.PersistentFlags().StringVar(&gameConfig, "config", gameConfig, "game config file")

	root.AddCommand(
		newStatusCmd(&dataDir, &gameConfig),
		newResetCmd(&dataDir, &gameConfig),
		newRankingsCmd(&dataDir, &gameConfig),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func openCycle(dataDir, gameConfig string) (*store.Store, config.Game, *reset.Cycle, error) {
	st, err := store.New(dataDir)
	if err != nil {
		return nil, config.Game{}, nil, err
	}
	cfg, err := config.LoadGame(gameConfig)
	if err != nil {
		return nil, cfg, nil, err
	}
	return st, cfg, reset.NewCycle(st, cfg, time.Local), nil
}

func newStatusCmd(dataDir, gameConfig *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the last and next weekly reset",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, cycle, err := openCycle(*dataDir, *gameConfig)
			if err != nil {
				return err
			}
			status := cycle.Status()
			printAccent(status.Describe())
			groups := st.ListGroups()
			players := 0
			for _, g := range groups {
				players += len(st.ListUsers(g))
			}
			fmt.Printf("groups: %d, players: %d\n", len(groups), players)
			return nil
		},
	}
}

func newResetCmd(dataDir, gameConfig *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Run the weekly reset now",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				printWarn("This rewrites every player record. Re-run with --yes to confirm.")
				return nil
			}
			_, _, cycle, err := openCycle(*dataDir, *gameConfig)
			if err != nil {
				return err
			}
			res, err := cycle.Run()
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("reset %s done: %d players across %d groups", res.ResetID, res.Players, res.Groups))
			fmt.Printf("snapshot: %s\n", res.SnapshotPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation")
	return cmd
}

func newRankingsCmd(dataDir, gameConfig *string) *cobra.Command {
	var group, by string
	var limit int
	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Print a group's standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cfg, _, err := openCycle(*dataDir, *gameConfig)
			if err != nil {
				return err
			}
			if group == "" {
				groups := st.ListGroups()
				if len(groups) == 0 {
					printWarn("no groups found")
					return nil
				}
				group = groups[0]
			}
			svc := game.NewService(st, cfg, flavor.Load(""))
			entries := svc.Rank(group, game.RankField(by), limit)
			if len(entries) == 0 {
				printWarn("nobody is on the board")
				return nil
			}
			printAccent(fmt.Sprintf("group %s, by %s", group, by))
			for _, e := range entries {
				fmt.Printf("%2d. %-24s coins %-8d value %-8d slaves %-3d %s (%d pts)\n",
					e.Rank, e.Rec.Nickname, e.Rec.Currency, e.Rec.Value,
					len(e.Rec.Slaves), e.Rec.Arena.Tier, e.Rec.Arena.Points)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "group ID (default: first group found)")
	cmd.Flags().StringVar(&by, "by", "currency", "currency, value, slaves or points")
	cmd.Flags().IntVar(&limit, "limit", 10, "rows to print")
	return cmd
}
