// Package config loads process configuration from environment variables
// and the game-tuning file. Environment variables are mapped onto the
// Config struct with envconfig; game tuning lives in a YAML file so chat
// admins can retune rates without touching the deployment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds everything the bot process needs from its environment.
type Config struct {
	DiscordToken string `envconfig:"DISCORD_TOKEN" required:"true"`
	GuildID      string `envconfig:"DISCORD_GUILD_ID"`

	DataDir       string `envconfig:"SM_DATA_DIR" default:"data"`
	GameConfig    string `envconfig:"SM_GAME_CONFIG" default:"config.yaml"`
	FlavorFile    string `envconfig:"SM_FLAVOR_FILE" default:"resources/work_flavor.json"`
	CommandPrefix string `envconfig:"SM_COMMAND_PREFIX" default:"!"`
	Timezone      string `envconfig:"SM_TIMEZONE" default:"Local"`
	LogLevel      string `envconfig:"SM_LOG_LEVEL" default:"info"`

	AdminIDsRaw string   `envconfig:"SM_ADMIN_IDS"`
	AdminIDs    []string `ignored:"true"`
}

// Load reads environment variables and fills Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.AdminIDs = splitCSV(cfg.AdminIDsRaw)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.CommandPrefix) == "" {
		return fmt.Errorf("SM_COMMAND_PREFIX must not be empty")
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("SM_DATA_DIR must not be empty")
	}
	return nil
}

// IsAdmin reports whether the user may run admin-only commands.
func (c *Config) IsAdmin(userID string) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func splitCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Game carries every tunable knob of the economy. Field names mirror the
// keys of the game config file; any key missing from the file keeps its
// default value.
type Game struct {
	BuyBack struct {
		Cooldown int     `yaml:"cooldown"`
		MaxTimes int     `yaml:"maxTimes"`
		TaxRate  float64 `yaml:"taxRate"`
	} `yaml:"buyBack"`
	Rob struct {
		Cooldown    int     `yaml:"cooldown"`
		SuccessRate float64 `yaml:"successRate"`
		Penalty     float64 `yaml:"penalty"`
	} `yaml:"rob"`
	Work struct {
		Cooldown int `yaml:"cooldown"`
	} `yaml:"work"`
	Purchase struct {
		Cooldown int `yaml:"cooldown"`
	} `yaml:"purchase"`
	Bank struct {
		InitialLimit        int64   `yaml:"initialLimit"`
		InitialLevel        int     `yaml:"initialLevel"`
		UpgradePriceMulti   float64 `yaml:"upgradePriceMulti"`
		LimitIncreaseMulti  float64 `yaml:"limitIncreaseMulti"`
		InitialUpgradePrice int64   `yaml:"initialUpgradePrice"`
		InterestRate        float64 `yaml:"interestRate"`
		MaxInterestTime     int     `yaml:"maxInterestTime"`
	} `yaml:"bank"`
	Training struct {
		Cooldown          int     `yaml:"cooldown"`
		SuccessRate       float64 `yaml:"successRate"`
		CostRate          float64 `yaml:"costRate"`
		ValueIncreaseRate float64 `yaml:"valueIncreaseRate"`
	} `yaml:"training"`
	Arena struct {
		Cooldown   int     `yaml:"cooldown"`
		EntryFee   int64   `yaml:"entryFee"`
		RewardRate float64 `yaml:"rewardRate"`
		ValueBonus float64 `yaml:"valueBonus"`
	} `yaml:"arena"`
	Ranking struct {
		Cooldown   int                `yaml:"cooldown"`
		BaseReward int64              `yaml:"baseReward"`
		WinBonus   float64            `yaml:"winBonus"`
		TierBonus  map[string]float64 `yaml:"tierBonus"`
	} `yaml:"ranking"`
	WeeklyReset struct {
		Enabled   bool `yaml:"enabled"`
		ResetTime struct {
			Day    int `yaml:"day"`
			Hour   int `yaml:"hour"`
			Minute int `yaml:"minute"`
		} `yaml:"resetTime"`
		PreserveData struct {
			Nickname   bool  `yaml:"nickname"`
			BasicValue int64 `yaml:"basicValue"`
		} `yaml:"preserveData"`
	} `yaml:"weeklyReset"`
	IgnoreCDUsers []string `yaml:"ignoreCDUsers"`
}

// DefaultGame returns the built-in tuning, used whole when the file is
// missing and as the base the file is merged over.
func DefaultGame() Game {
	var g Game
	g.BuyBack.Cooldown = 86400
	g.BuyBack.MaxTimes = 3
	g.BuyBack.TaxRate = 0.05
	g.Rob.Cooldown = 600
	g.Rob.SuccessRate = 0.3
	g.Rob.Penalty = 0.1
	g.Work.Cooldown = 3600
	g.Purchase.Cooldown = 3600
	g.Bank.InitialLimit = 1000
	g.Bank.InitialLevel = 1
	g.Bank.UpgradePriceMulti = 1.2
	g.Bank.LimitIncreaseMulti = 1.25
	g.Bank.InitialUpgradePrice = 100
	g.Bank.InterestRate = 0.01
	g.Bank.MaxInterestTime = 24
	g.Training.Cooldown = 7200
	g.Training.SuccessRate = 0.7
	g.Training.CostRate = 0.1
	g.Training.ValueIncreaseRate = 0.2
	g.Arena.Cooldown = 7200
	g.Arena.EntryFee = 50
	g.Arena.RewardRate = 0.2
	g.Arena.ValueBonus = 0.1
	g.Ranking.Cooldown = 3600
	g.Ranking.BaseReward = 10
	g.Ranking.WinBonus = 0.2
	g.Ranking.TierBonus = map[string]float64{
		"bronze":   1,
		"silver":   1.2,
		"gold":     1.5,
		"platinum": 2,
		"diamond":  3,
	}
	g.WeeklyReset.Enabled = true
	g.WeeklyReset.ResetTime.Day = 1
	g.WeeklyReset.ResetTime.Hour = 0
	g.WeeklyReset.ResetTime.Minute = 0
	g.WeeklyReset.PreserveData.Nickname = true
	g.WeeklyReset.PreserveData.BasicValue = 100
	return g
}

// LoadGame reads the tuning file over the defaults. A missing file is not
// an error; a malformed one is.
func LoadGame(path string) (Game, error) {
	g := DefaultGame()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return g, nil
		}
		return g, fmt.Errorf("read game config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return g, fmt.Errorf("parse game config %s: %w", path, err)
	}
	return g, nil
}

// TierBonusFor falls back to 1 for tiers the file does not list.
func (g *Game) TierBonusFor(tier string) float64 {
	if b, ok := g.Ranking.TierBonus[tier]; ok {
		return b
	}
	return 1
}

// BypassesCooldown reports whether the user is on the cooldown allow-list.
func (g *Game) BypassesCooldown(userID string) bool {
	for _, id := range g.IgnoreCDUsers {
		if id == userID {
			return true
		}
	}
	return false
}
