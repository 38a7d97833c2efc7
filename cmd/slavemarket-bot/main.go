package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"slavemarket/internal/bot"
	"slavemarket/internal/config"
	"slavemarket/internal/flavor"
	"slavemarket/internal/game"
	"slavemarket/internal/jobs"
	"slavemarket/internal/reset"
	"slavemarket/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, keeping info")
	}

	gameCfg, err := config.LoadGame(cfg.GameConfig)
	if err != nil {
		log.WithError(err).Fatal("load game config")
	}

	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.WithError(err).Fatal("init store")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.WithError(err).WithField("timezone", cfg.Timezone).Warn("unknown timezone, using local time")
		loc = time.Local
	}

	svc := game.NewService(st, gameCfg, flavor.Load(cfg.FlavorFile))
	cycle := reset.NewCycle(st, gameCfg, loc)

	scheduler := jobs.NewScheduler(cycle, loc)
	if err := scheduler.Start(); err != nil {
		log.WithError(err).Fatal("start scheduler")
	}
	defer scheduler.Stop()

	token := strings.TrimSpace(cfg.DiscordToken)
	if !strings.HasPrefix(strings.ToLower(token), "bot ") {
		token = "Bot " + token
	}
	session, err := discordgo.New(token)
	if err != nil {
		log.WithError(err).Fatal("create discord session")
	}
	bot.NewRouter(svc, cycle, cfg).Attach(session)

	if err := session.Open(); err != nil {
		log.WithError(err).Fatal("open discord session")
	}
	defer session.Close()
	log.WithField("user", session.State.User.Username).Info("slave market bot connected")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info("shutting down")
}
