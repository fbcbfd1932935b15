package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jstittsworth/contrarian-dfs/internal/classifier"
	"github.com/jstittsworth/contrarian-dfs/internal/ingest"
	"github.com/jstittsworth/contrarian-dfs/internal/metrics"
	"github.com/jstittsworth/contrarian-dfs/internal/models"
	"github.com/jstittsworth/contrarian-dfs/pkg/database"
	"github.com/jstittsworth/contrarian-dfs/pkg/logger"
	"github.com/jstittsworth/contrarian-dfs/pkg/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Keys are version scoped, so this only bounds how long stale versions
// linger in redis.
const snapshotRetention = 24 * time.Hour

// TableNotifier is told when a reload observes a new data version.
type TableNotifier interface {
	NotifyTableRefreshed(version string, rows int)
}

// TableSnapshot is an immutable classified view of the player table.
// Callers must not modify Players.
type TableSnapshot struct {
	Version      string                `json:"version"`
	Players      []models.PlayerRecord `json:"players"`
	LatestUpdate time.Time             `json:"latest_update"`
}

type ImportResult struct {
	Imported int    `json:"imported"`
	Dropped  int    `json:"dropped"`
	Removed  int64  `json:"removed"`
	Version  string `json:"version"`
}

type PlayerTableService struct {
	db         *database.DB
	cache      *CacheService
	classifier *classifier.Classifier
	notifier   TableNotifier
	metrics    *metrics.Recorder
	log        *logrus.Entry

	mu       sync.RWMutex
	snapshot *TableSnapshot
}

func NewPlayerTableService(db *database.DB, cache *CacheService, c *classifier.Classifier, notifier TableNotifier, rec *metrics.Recorder) *PlayerTableService {
	return &PlayerTableService{
		db:         db,
		cache:      cache,
		classifier: c,
		notifier:   notifier,
		metrics:    rec,
		log:        logger.WithComponent("player_table"),
	}
}

func (s *PlayerTableService) Classifier() *classifier.Classifier {
	return s.classifier
}

type dataVersion struct {
	rows   int64
	latest time.Time
}

func (v dataVersion) String() string {
	if v.latest.IsZero() {
		return fmt.Sprintf("%d-0", v.rows)
	}
	return fmt.Sprintf("%d-%d", v.rows, v.latest.UnixNano())
}

func (s *PlayerTableService) version(ctx context.Context) (dataVersion, error) {
	var v dataVersion
	db := s.db.WithContext(ctx).Model(&models.PlayerRecord{})
	if err := db.Count(&v.rows).Error; err != nil {
		return v, fmt.Errorf("failed to count players: %w", err)
	}
	if v.rows == 0 {
		return v, nil
	}

	var newest models.PlayerRecord
	if err := s.db.WithContext(ctx).Select("updated_at").Order("updated_at DESC").Take(&newest).Error; err != nil {
		return v, fmt.Errorf("failed to read latest update: %w", err)
	}
	v.latest = newest.UpdatedAt.UTC()
	return v, nil
}

// Snapshot returns the classified table for the current data version. The
// in-process copy is reused while the version is unchanged; otherwise the
// redis copy for that version is tried before reclassifying from storage.
func (s *PlayerTableService) Snapshot(ctx context.Context) (*TableSnapshot, error) {
	v, err := s.version(ctx)
	if err != nil {
		return nil, err
	}
	version := v.String()

	s.mu.RLock()
	current := s.snapshot
	s.mu.RUnlock()
	if current != nil && current.Version == version {
		return current, nil
	}

	snap, err := s.load(ctx, v)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
	return snap, nil
}

func (s *PlayerTableService) load(ctx context.Context, v dataVersion) (*TableSnapshot, error) {
	key := ClassifiedTableKey(v.String(), s.classifier.Weights().Fingerprint())

	var cached TableSnapshot
	err := s.cache.Get(ctx, key, &cached)
	if err == nil && cached.Version == v.String() {
		s.log.WithField("version", cached.Version).Debug("Classified table served from cache")
		return &cached, nil
	}
	if err != nil && !errors.Is(err, utils.ErrCacheMiss) {
		s.log.WithError(err).Warn("Cache read failed, reclassifying from storage")
	}

	var records []models.PlayerRecord
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}

	players := s.classifier.ClassifyAll(records)
	for _, p := range players {
		s.metrics.RecordClassification(string(p.PlayType))
	}

	snap := &TableSnapshot{
		Version:      v.String(),
		Players:      players,
		LatestUpdate: v.latest,
	}

	if err := s.cache.Set(ctx, key, snap, snapshotRetention); err != nil {
		s.log.WithError(err).Warn("Failed to cache classified table")
	}

	s.log.WithFields(logrus.Fields{
		"version": snap.Version,
		"rows":    len(players),
	}).Info("Classified player table loaded")

	return snap, nil
}

// Reload drops the in-process snapshot and re-reads the table. Subscribers
// are notified only when the data version moved.
func (s *PlayerTableService) Reload(ctx context.Context) (*TableSnapshot, error) {
	s.mu.Lock()
	previous := s.snapshot
	s.snapshot = nil
	s.mu.Unlock()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		s.metrics.RecordReload(err, 0)
		return nil, err
	}
	s.metrics.RecordReload(nil, len(snap.Players))

	if previous != nil && previous.Version != snap.Version {
		stale := ClassifiedTableKey(previous.Version, s.classifier.Weights().Fingerprint())
		if err := s.cache.Delete(ctx, stale); err != nil {
			s.log.WithError(err).Warn("Failed to drop stale classified table")
		}
	}
	if s.notifier != nil && (previous == nil || previous.Version != snap.Version) {
		s.notifier.NotifyTableRefreshed(snap.Version, len(snap.Players))
	}
	return snap, nil
}

// Import normalizes raws and upserts them by name. With replace set, rows
// absent from the import are deleted. The table is reloaded afterwards.
func (s *PlayerTableService) Import(ctx context.Context, raws []ingest.RawPlayer, replace bool) (*ImportResult, error) {
	records, dropped := ingest.NormalizeAll(raws)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no usable player rows (%d dropped)", utils.ErrInvalidInput, dropped)
	}

	records = dedupeByName(records)
	result := &ImportResult{Imported: len(records), Dropped: dropped}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"position", "team", "rank", "ownership_pct", "projected_points", "salary",
				"contrarian_score", "score_supplied", "matchup_rating", "injury_status", "extra", "updated_at",
			}),
		})
		if err := upsert.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to upsert players: %w", err)
		}

		if replace {
			names := make([]string, len(records))
			for i, r := range records {
				names[i] = r.Name
			}
			res := tx.Where("name NOT IN ?", names).Delete(&models.PlayerRecord{})
			if res.Error != nil {
				return fmt.Errorf("failed to remove stale players: %w", res.Error)
			}
			result.Removed = res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	snap, err := s.Reload(ctx)
	if err != nil {
		return nil, err
	}
	result.Version = snap.Version

	s.log.WithFields(logrus.Fields{
		"imported": result.Imported,
		"dropped":  result.Dropped,
		"removed":  result.Removed,
		"version":  result.Version,
	}).Info("Player table imported")

	return result, nil
}

// dedupeByName keeps the last row for each name, in first-seen order, so a
// single upsert statement never touches the same key twice.
func dedupeByName(records []models.PlayerRecord) []models.PlayerRecord {
	index := make(map[string]int, len(records))
	out := make([]models.PlayerRecord, 0, len(records))
	for _, r := range records {
		if i, ok := index[r.Name]; ok {
			out[i] = r
			continue
		}
		index[r.Name] = len(out)
		out = append(out, r)
	}
	return out
}
