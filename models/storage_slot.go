package models

import "time"

// StorageSlot is one durable key-value slot belonging to a browser session.
type StorageSlot struct {
	SessionID string    `gorm:"primaryKey;size:64" json:"session_id"`
	Key       string    `gorm:"column:slot_key;primaryKey;size:64" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
