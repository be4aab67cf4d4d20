package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"kannadabaruthe/internal/database"
	"kannadabaruthe/internal/models"
)

// Logical progress stores. srs and cardTracking are reserved for future
// per-card scheduling and are not populated by current logic.
const (
	StoreUserData     = "userData"
	StoreSRS          = "srs"
	StoreProgressLog  = "progressLog"
	StoreCardTracking = "cardTracking"
)

// ProgressRepository persists the learner's progress records, keyed by
// logical store name and record key
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Get retrieves one record from a store, or nil when absent
func (r *ProgressRepository) Get(storeName, key string) (models.Record, error) {
	query := `SELECT payload FROM progress_records WHERE store_name = ? AND record_key = ?`

	var payload string
	err := r.db.QueryRow(query, storeName, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", storeName, key, err)
	}

	var record models.Record
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", storeName, key, err)
	}
	return record, nil
}

// Put inserts or replaces one record in a store
func (r *ProgressRepository) Put(storeName string, record models.Record) error {
	key := record.Key()
	if key == "" {
		return fmt.Errorf("record for store %s has no key", storeName)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", storeName, key, err)
	}

	_, err = r.db.Exec(r.db.GetDialect().UpsertProgressRecord(), storeName, key, string(payload))
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", storeName, key, err)
	}
	return nil
}

// GetAll retrieves every record in a store
func (r *ProgressRepository) GetAll(storeName string) ([]models.Record, error) {
	query := `SELECT payload FROM progress_records WHERE store_name = ? ORDER BY record_key`

	rows, err := r.db.Query(query, storeName)
	if err != nil {
		return nil, fmt.Errorf("failed to list store %s: %w", storeName, err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var record models.Record
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			return nil, fmt.Errorf("failed to decode record in store %s: %w", storeName, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Clear removes every record in a store
func (r *ProgressRepository) Clear(storeName string) error {
	query := `DELETE FROM progress_records WHERE store_name = ?`
	if _, err := r.db.Exec(query, storeName); err != nil {
		return fmt.Errorf("failed to clear store %s: %w", storeName, err)
	}
	return nil
}

// GetProfile retrieves the learner profile, or nil when none exists yet
func (r *ProgressRepository) GetProfile() (*models.Profile, error) {
	query := `SELECT payload FROM progress_records WHERE store_name = ? AND record_key = ?`

	var payload string
	err := r.db.QueryRow(query, StoreUserData, models.ProfileKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	profile := &models.Profile{}
	if err := json.Unmarshal([]byte(payload), profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if profile.WordsLearned == nil {
		profile.WordsLearned = []int{}
	}
	return profile, nil
}

// PutProfile inserts or replaces the learner profile
func (r *ProgressRepository) PutProfile(profile *models.Profile) error {
	profile.Key = models.ProfileKey
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	_, err = r.db.Exec(r.db.GetDialect().UpsertProgressRecord(), StoreUserData, models.ProfileKey, string(payload))
	if err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// GetLogEntry retrieves the progress log entry for a date key, or nil
func (r *ProgressRepository) GetLogEntry(date string) (*models.ProgressLogEntry, error) {
	record, err := r.Get(StoreProgressLog, date)
	if err != nil || record == nil {
		return nil, err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	entry := &models.ProgressLogEntry{}
	if err := json.Unmarshal(payload, entry); err != nil {
		return nil, fmt.Errorf("failed to decode progress log entry %s: %w", date, err)
	}
	return entry, nil
}

// PutLogEntry inserts or replaces the progress log entry for its date
func (r *ProgressRepository) PutLogEntry(entry *models.ProgressLogEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode progress log entry: %w", err)
	}

	_, err = r.db.Exec(r.db.GetDialect().UpsertProgressRecord(), StoreProgressLog, entry.Date, string(payload))
	if err != nil {
		return fmt.Errorf("failed to write progress log entry %s: %w", entry.Date, err)
	}
	return nil
}
