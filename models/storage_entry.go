package models

import (
	"strings"
	"time"
)

// StorageEntry is one key of the local storage area. Value holds a JSON document.
type StorageEntry struct {
	Key       string    `gorm:"type:varchar(255);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (*StorageEntry) TableName() string {
	return "storage_entries"
}

func (e *StorageEntry) Validate() error {
	if strings.TrimSpace(e.Key) == "" {
		return ErrInvalidStorageKey
	}
	return nil
}
