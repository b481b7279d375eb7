package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/joefazee/atlas/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new storage repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db, now: time.Now}
}

func (r *repository) Get(ctx context.Context, key string, dest interface{}) error {
	var entry models.StorageEntry
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrRecordNotFound
		}
		return fmt.Errorf("read %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(entry.Value), dest); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

func (r *repository) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	entry := models.StorageEntry{Key: key, Value: string(raw), UpdatedAt: r.now().UTC()}
	if err := entry.Validate(); err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, key string) error {
	err := r.db.WithContext(ctx).Where("key = ?", key).Delete(&models.StorageEntry{}).Error
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (r *repository) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&models.StorageEntry{}).
		Where(`key LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Order("key").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("list keys %q: %w", prefix, err)
	}
	return keys, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
