// Package store persists player records as one JSON file per
// (group, user) pair, plus the reset stamp and ranking backups.
// It is the only I/O boundary of the game; there is no locking and
// callers get last-writer-wins semantics on a single record.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"slavemarket/internal/model"
)

const backupDirName = "backup"

type Store struct {
	dataDir string
}

// New prepares the on-disk layout under dataDir.
func New(dataDir string) (*Store, error) {
	for _, dir := range []string{
		filepath.Join(dataDir, "player"),
		filepath.Join(dataDir, "backups"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("init data dir: %w", err)
		}
	}
	return &Store{dataDir: dataDir}, nil
}

func (s *Store) groupDir(groupID string) string {
	return filepath.Join(s.dataDir, "player", groupID)
}

func (s *Store) recordPath(groupID, userID string) string {
	return filepath.Join(s.groupDir(groupID), userID+".json")
}

// Get loads a record. A missing, corrupt or unreadable file reports
// ok=false; corruption is logged and otherwise treated as absence.
func (s *Store) Get(groupID, userID string) (model.Record, bool) {
	var rec model.Record
	raw, err := os.ReadFile(s.recordPath(groupID, userID))
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).WithFields(log.Fields{"group": groupID, "user": userID}).
				Warn("player record unreadable, treating as absent")
		}
		return rec, false
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.WithError(err).WithFields(log.Fields{"group": groupID, "user": userID}).
			Warn("player record corrupt, treating as absent")
		return rec, false
	}
	return rec, true
}

// Put writes a record. Failures are logged and surfaced; there is no retry.
func (s *Store) Put(groupID, userID string, rec model.Record) error {
	if err := os.MkdirAll(s.groupDir(groupID), 0o755); err != nil {
		log.WithError(err).WithField("group", groupID).Error("create group dir failed")
		return fmt.Errorf("save player %s/%s: %w", groupID, userID, err)
	}
	raw, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("encode player %s/%s: %w", groupID, userID, err)
	}
	if err := os.WriteFile(s.recordPath(groupID, userID), raw, 0o644); err != nil {
		log.WithError(err).WithFields(log.Fields{"group": groupID, "user": userID}).
			Error("save player record failed")
		return fmt.Errorf("save player %s/%s: %w", groupID, userID, err)
	}
	return nil
}

// Ensure returns the existing record or persists and returns def.
func (s *Store) Ensure(groupID, userID string, def model.Record) (model.Record, error) {
	if rec, ok := s.Get(groupID, userID); ok {
		return rec, nil
	}
	if err := s.Put(groupID, userID, def); err != nil {
		return def, err
	}
	log.WithFields(log.Fields{"group": groupID, "user": userID}).Info("created new player record")
	return def, nil
}

// ListUsers enumerates the user IDs known in a group, in directory order.
func (s *Store) ListUsers(groupID string) []string {
	entries, err := os.ReadDir(s.groupDir(groupID))
	if err != nil {
		return nil
	}
	var users []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		users = append(users, strings.TrimSuffix(name, ".json"))
	}
	return users
}

// ListGroups enumerates every group directory.
func (s *Store) ListGroups() []string {
	entries, err := os.ReadDir(filepath.Join(s.dataDir, "player"))
	if err != nil {
		return nil
	}
	var groups []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != backupDirName {
			groups = append(groups, e.Name())
		}
	}
	return groups
}

// ResetStamp is the durable marker of the last completed reset.
type ResetStamp struct {
	LastResetTime int64  `json:"lastResetTime"`
	ResetDate     string `json:"resetDate"`
	ResetID       string `json:"resetId"`
}

func (s *Store) stampPath() string {
	return filepath.Join(s.dataDir, "last_reset.json")
}

// LastReset loads the stamp; a zero stamp means no reset ever ran.
func (s *Store) LastReset() ResetStamp {
	var st ResetStamp
	raw, err := os.ReadFile(s.stampPath())
	if err != nil {
		return st
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		log.WithError(err).Warn("last-reset stamp corrupt")
	}
	return st
}

// StampReset persists the stamp for the reset that just completed.
func (s *Store) StampReset(st ResetStamp) error {
	raw, err := json.MarshalIndent(st, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.stampPath(), raw, 0o644); err != nil {
		log.WithError(err).Error("save last-reset stamp failed")
		return err
	}
	return nil
}

// PlayerSummary is the ranking-relevant slice of a record kept in backups.
type PlayerSummary struct {
	UserID     string     `json:"user_id"`
	Nickname   string     `json:"nickname"`
	Currency   int64      `json:"currency"`
	Value      int64      `json:"value"`
	SlaveCount int        `json:"slaves_count"`
	Arena      model.Arena `json:"arena"`
}

// GroupSnapshot is one group's standings at reset time.
type GroupSnapshot struct {
	Timestamp int64           `json:"timestamp"`
	Date      string          `json:"date"`
	Players   []PlayerSummary `json:"players"`
}

// Snapshot maps group ID to its standings. Snapshot files are immutable
// once written and never restored automatically.
type Snapshot map[string]GroupSnapshot

// WriteSnapshot persists an aggregate ranking backup named by timestamp.
func (s *Store) WriteSnapshot(snap Snapshot, at time.Time) (string, error) {
	name := fmt.Sprintf("rankings_%s.json", at.Format("20060102_150405"))
	path := filepath.Join(s.dataDir, "backups", name)
	raw, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		log.WithError(err).Error("write ranking snapshot failed")
		return "", err
	}
	log.WithField("file", name).Info("ranking snapshot written")
	return path, nil
}

// LatestSnapshot loads the most recent ranking backup, ok=false when none exist.
func (s *Store) LatestSnapshot() (Snapshot, bool) {
	dir := filepath.Join(s.dataDir, "backups")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "rankings_") && strings.HasSuffix(name, ".json") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, false
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	raw, err := os.ReadFile(filepath.Join(dir, names[0]))
	if err != nil {
		log.WithError(err).Warn("latest ranking snapshot unreadable")
		return nil, false
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		log.WithError(err).Warn("latest ranking snapshot corrupt")
		return nil, false
	}
	return snap, true
}

// BackupRecord writes the full pre-reset copy of one player's record into
// the group's backup directory, named by user and timestamp.
func (s *Store) BackupRecord(groupID, userID string, rec model.Record, at time.Time) error {
	dir := filepath.Join(s.groupDir(groupID), backupDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("backup player %s/%s: %w", groupID, userID, err)
	}
	name := fmt.Sprintf("%s_%s.json", userID, at.Format("20060102_150405"))
	raw, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("backup player %s/%s: %w", groupID, userID, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		log.WithError(err).WithFields(log.Fields{"group": groupID, "user": userID}).
			Error("pre-reset backup failed")
		return fmt.Errorf("backup player %s/%s: %w", groupID, userID, err)
	}
	return nil
}

// Summarize extracts the ranking-relevant fields of a record.
func Summarize(rec model.Record) PlayerSummary {
	return PlayerSummary{
		UserID:     rec.UserID,
		Nickname:   rec.Nickname,
		Currency:   rec.Currency,
		Value:      rec.Value,
		SlaveCount: len(rec.Slaves),
		Arena:      rec.Arena,
	}
}
