package prefs

import (
	"context"
	"errors"

	"github.com/pathakanu/linkLater/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps one preferences row per key.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an already migrated database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get returns the stored value for key.
func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var pref model.Preference
	err := s.db.WithContext(ctx).Where(&model.Preference{Key: key}).Take(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return pref.Value, true, nil
}

// Set upserts the value for key.
func (s *GormStore) Set(ctx context.Context, key, value string) error {
	pref := &model.Preference{Key: key, Value: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(pref).Error
}
