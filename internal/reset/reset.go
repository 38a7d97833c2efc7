// Package reset implements the weekly economy reset: back up every
// group's standings, rewrite each player record to its fresh-start
// template and stamp the completed run.
package reset

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"slavemarket/internal/config"
	"slavemarket/internal/model"
	"slavemarket/internal/store"
)

// Cycle drives the scheduled reset. Check runs once a minute; the
// firedMinute guard keeps a matching minute from firing twice even
// though the schedule tick has sub-minute resolution.
type Cycle struct {
	store *store.Store
	cfg   config.Game
	loc   *time.Location

	firedMinute time.Time
	now         func() time.Time
}

func NewCycle(st *store.Store, cfg config.Game, loc *time.Location) *Cycle {
	if loc == nil {
		loc = time.Local
	}
	return &Cycle{store: st, cfg: cfg, loc: loc, now: time.Now}
}

// Result reports what one reset run touched.
type Result struct {
	ResetID      string
	At           time.Time
	Groups       int
	Players      int
	SnapshotPath string
}

// due reports whether t lands on the configured weekday, hour and minute.
// The configured day uses the same numbering as time.Weekday.
func (c *Cycle) due(t time.Time) bool {
	rt := c.cfg.WeeklyReset.ResetTime
	return int(t.Weekday()) == rt.Day && t.Hour() == rt.Hour && t.Minute() == rt.Minute
}

// Check fires a reset when the current minute matches the schedule and
// has not fired yet. Called from the scheduler tick.
func (c *Cycle) Check() {
	if !c.cfg.WeeklyReset.Enabled {
		return
	}
	now := c.now().In(c.loc)
	minute := now.Truncate(time.Minute)
	if !c.due(now) || minute.Equal(c.firedMinute) {
		return
	}
	c.firedMinute = minute
	if _, err := c.Run(); err != nil {
		log.WithError(err).Error("weekly reset failed")
	}
}

// Run executes a full reset immediately, regardless of the schedule.
// Backups are written before any record is rewritten, so a half-failed
// run can always be recovered from the backup directory.
func (c *Cycle) Run() (Result, error) {
	now := c.now().In(c.loc)
	res := Result{
		ResetID: uuid.NewString(),
		At:      now,
	}
	log.WithField("reset_id", res.ResetID).Info("weekly reset starting")

	snap := store.Snapshot{}
	for _, groupID := range c.store.ListGroups() {
		gs := store.GroupSnapshot{
			Timestamp: now.Unix(),
			Date:      now.Format("2006-01-02"),
		}
		for _, userID := range c.store.ListUsers(groupID) {
			rec, ok := c.store.Get(groupID, userID)
			if !ok {
				continue
			}
			gs.Players = append(gs.Players, store.Summarize(rec))
			if err := c.store.BackupRecord(groupID, userID, rec, now); err != nil {
				return res, err
			}
			if err := c.store.Put(groupID, userID, c.freshRecord(rec, now)); err != nil {
				return res, err
			}
			res.Players++
		}
		snap[groupID] = gs
		res.Groups++
	}

	path, err := c.store.WriteSnapshot(snap, now)
	if err != nil {
		return res, err
	}
	res.SnapshotPath = path

	stamp := store.ResetStamp{
		LastResetTime: now.Unix(),
		ResetDate:     now.Format("2006-01-02"),
		ResetID:       res.ResetID,
	}
	if err := c.store.StampReset(stamp); err != nil {
		return res, err
	}
	log.WithFields(log.Fields{
		"reset_id": res.ResetID,
		"groups":   res.Groups,
		"players":  res.Players,
	}).Info("weekly reset done")
	return res, nil
}

// freshRecord is the post-reset template. Nickname and the creation time
// survive when configured; everything else returns to day one, with the
// market value pinned to the configured floor.
func (c *Cycle) freshRecord(old model.Record, now time.Time) model.Record {
	nickname := ""
	if c.cfg.WeeklyReset.PreserveData.Nickname {
		nickname = old.Nickname
	}
	rec := model.NewRecord(old.UserID, nickname, c.cfg.Bank.InitialLimit, c.cfg.Bank.InitialLevel, now)
	rec.Value = c.cfg.WeeklyReset.PreserveData.BasicValue
	rec.CreatedAt = old.CreatedAt
	return rec
}

// Status describes where the cycle stands relative to its schedule.
type Status struct {
	Enabled   bool
	LastReset store.ResetStamp
	Next      time.Time
}

// Status reports the last completed reset and the next scheduled one.
func (c *Cycle) Status() Status {
	st := Status{
		Enabled:   c.cfg.WeeklyReset.Enabled,
		LastReset: c.store.LastReset(),
	}
	if st.Enabled {
		st.Next = c.nextAfter(c.now().In(c.loc))
	}
	return st
}

// nextAfter finds the first scheduled instant strictly after t.
func (c *Cycle) nextAfter(t time.Time) time.Time {
	rt := c.cfg.WeeklyReset.ResetTime
	next := time.Date(t.Year(), t.Month(), t.Day(), rt.Hour, rt.Minute, 0, 0, c.loc)
	days := (rt.Day - int(t.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, days)
	if !next.After(t) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

// Describe formats the status for chat replies.
func (s Status) Describe() string {
	if !s.Enabled {
		return "weekly reset is disabled"
	}
	last := "never"
	if s.LastReset.LastResetTime > 0 {
		last = time.Unix(s.LastReset.LastResetTime, 0).Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("last reset: %s, next reset: %s", last, s.Next.Format("2006-01-02 15:04"))
}
