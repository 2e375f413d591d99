// Package history records the tokens and dashboards created from this machine.
// Token secrets are never stored.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"mcon/internal/models"
)

// Kind is the type of a recorded resource
type Kind string

const (
	KindToken     Kind = "tokens"
	KindDashboard Kind = "dashboards"
)

// Entry is one created resource
type Entry struct {
	Kind        Kind      `json:"kind"`
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	Name        string    `json:"name"`
	Detail      string    `json:"detail,omitempty"`
	Permissions int       `json:"permissions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is a bbolt-backed history.
// Bucket per Kind -> key: resource ID, value: JSON-encoded Entry
type Store struct {
	db     *bbolt.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens or creates the history database at path
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("error opening history: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, kind := range []Kind{KindToken, KindDashboard} {
			if _, err := tx.CreateBucketIfNotExists([]byte(kind)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error initializing history: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// RecordToken records a created authorization without its secret
func (s *Store) RecordToken(auth *models.Authorization) error {
	return s.put(Entry{
		Kind:        KindToken,
		ID:          auth.ID,
		OrgID:       auth.OrgID,
		Name:        auth.Description,
		Permissions: len(auth.Permissions),
	})
}

// RecordDashboard records a dashboard created from the named template
func (s *Store) RecordDashboard(d *models.Dashboard, templateName string) error {
	return s.put(Entry{
		Kind:   KindDashboard,
		ID:     d.ID,
		OrgID:  d.OrgID,
		Name:   d.Name,
		Detail: templateName,
	})
}

func (s *Store) put(e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("history entry for %s has no id", e.Kind)
	}
	e.CreatedAt = s.now().UTC()

	val, err := json.Marshal(e)
	if err != nil {
		return err
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(e.Kind)).Put([]byte(e.ID), val)
	})
	if err != nil {
		return fmt.Errorf("error recording %s %s: %w", e.Kind, e.ID, err)
	}

	s.logger.Debug("history recorded", "kind", e.Kind, "id", e.ID)
	return nil
}

// List returns the entries of the given kinds, newest first
func (s *Store) List(kinds ...Kind) ([]Entry, error) {
	if len(kinds) == 0 {
		kinds = []Kind{KindToken, KindDashboard}
	}

	var entries []Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		for _, kind := range kinds {
			bucket := tx.Bucket([]byte(kind))
			if bucket == nil {
				return fmt.Errorf("unknown history kind %q", kind)
			}
			err := bucket.ForEach(func(_, v []byte) error {
				var e Entry
				if err := json.Unmarshal(v, &e); err != nil {
					return err
				}
				entries = append(entries, e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
