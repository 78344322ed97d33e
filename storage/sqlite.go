package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRecord is the single table backing the sqlite store.
type KVRecord struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (KVRecord) TableName() string { return "client_state" }

// SQLite persists session state in the local database, the default for a
// single-instance deployment.
type SQLite struct {
	db *gorm.DB
}

func NewSQLite(db *gorm.DB) (*SQLite, error) {
	if err := db.AutoMigrate(&KVRecord{}); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	var rec KVRecord
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return rec.Value, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	rec := KVRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}

func (s *SQLite) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&KVRecord{}, "key IN ?", keys).Error
}

// likeEscaper makes a key prefix safe for a LIKE pattern; session keys
// contain literal underscores, which LIKE treats as wildcards.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *SQLite) DeletePrefix(ctx context.Context, prefix string) error {
	pattern := likeEscaper.Replace(prefix) + "%"
	return s.db.WithContext(ctx).Delete(&KVRecord{}, `key LIKE ? ESCAPE '\'`, pattern).Error
}
