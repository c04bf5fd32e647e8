package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// SchemaVersion is the version written alongside every persisted record.
// Records with a different version are treated as absent so the caller falls
// back to defaults instead of misreading an old layout.
const SchemaVersion = 1

// Fixed record keys
const (
	KeyUserStats    = "userStats"
	KeyAchievements = "achievements"
)

// RecordRepository stores named JSON documents in the records table
type RecordRepository struct{}

// NewRecordRepository creates a new repository instance
func NewRecordRepository() *RecordRepository {
	return &RecordRepository{}
}

// Save serializes value as JSON and upserts it under key
func (r *RecordRepository) Save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record %q: %v", key, err)
	}

	query := DB.Rebind(`
		INSERT INTO records (key, schema_version, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			schema_version = excluded.schema_version,
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := DB.Exec(query, key, SchemaVersion, string(data)); err != nil {
		return fmt.Errorf("failed to save record %q: %v", key, err)
	}
	return nil
}

// Load reads the record stored under key into out. It returns false when the record
// is absent or was written with a different schema version; a present record
// that fails to parse is reported as an error so the caller can decide to
// fall back to defaults.
func (r *RecordRepository) Load(key string, out interface{}) (bool, error) {
	var row struct {
		SchemaVersion int    `db:"schema_version"`
		Value         string `db:"value"`
	}
	query := DB.Rebind("SELECT schema_version, value FROM records WHERE key = ?")
	err := DB.Get(&row, query, key)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load record %q: %v", key, err)
	}
	if row.SchemaVersion != SchemaVersion {
		return false, nil
	}
	if err := json.Unmarshal([]byte(row.Value), out); err != nil {
		return false, fmt.Errorf("failed to parse record %q: %v", key, err)
	}
	return true, nil
}

// Delete removes a record
func (r *RecordRepository) Delete(key string) error {
	query := DB.Rebind("DELETE FROM records WHERE key = ?")
	_, err := DB.Exec(query, key)
	return err
}
