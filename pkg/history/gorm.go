package history

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obsworks/obsqueue/pkg/core"
	"github.com/obsworks/obsqueue/pkg/security"
)

// Outcome values for a DispatchRecord.
const (
	OutcomeDispatched = "dispatched"
	OutcomeFailed     = "failed"
)

// DispatchRecord is one row of the dispatch audit log.
type DispatchRecord struct {
	ID          string `gorm:"primaryKey;size:36"`
	BackendID   string `gorm:"index;size:36"`
	EntryLabel  string `gorm:"index;size:255;not null"`
	Position    int
	Outcome     string    `gorm:"index;size:20"`
	FailureKind string    `gorm:"size:64"`
	Details     string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// Store implements the audit log using GORM.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new GORM-backed history store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the necessary tables.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&DispatchRecord{})
}

// RecordDispatch logs a successful hand-off of the entry at position.
func (s *Store) RecordDispatch(ctx context.Context, backendID string, e core.Entry, position int) error {
	rec := &DispatchRecord{
		ID:         uuid.New().String(),
		BackendID:  backendID,
		EntryLabel: e.Label(),
		Position:   position,
		Outcome:    OutcomeDispatched,
	}
	return s.db.WithContext(ctx).Create(rec).Error
}

// RecordFailure logs a structured preparation failure for the entry at
// position. Details are flattened into sanitized key=value lines.
func (s *Store) RecordFailure(ctx context.Context, backendID string, e core.Entry, position int, reason *core.FailureReason) error {
	rec := &DispatchRecord{
		ID:         uuid.New().String(),
		BackendID:  backendID,
		EntryLabel: e.Label(),
		Position:   position,
		Outcome:    OutcomeFailed,
	}
	if reason != nil {
		rec.FailureKind = string(reason.Kind)
		rec.Details = flattenDetails(reason.Details)
	}
	return s.db.WithContext(ctx).Create(rec).Error
}

// Recent returns the newest records, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]DispatchRecord, error) {
	var recs []DispatchRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(security.ClampLimit(limit)).
		Find(&recs).Error
	return recs, err
}

// Failures returns the newest failure records, most recent first.
func (s *Store) Failures(ctx context.Context, limit int) ([]DispatchRecord, error) {
	var recs []DispatchRecord
	err := s.db.WithContext(ctx).
		Where("outcome = ?", OutcomeFailed).
		Order("created_at DESC").
		Limit(security.ClampLimit(limit)).
		Find(&recs).Error
	return recs, err
}

func flattenDetails(details map[string]string) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s=%s", k, security.SanitizeDetail(details[k])))
	}
	return strings.Join(lines, "\n")
}
