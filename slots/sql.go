package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eastside-storefront/cart"
	"eastside-storefront/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLOpener keeps carts in the storage_slots table.
type SQLOpener struct {
	DB *gorm.DB
}

func (o SQLOpener) Open(sessionID string) cart.Slot {
	return &sqlSlot{db: o.DB, sessionID: sessionID}
}

type sqlSlot struct {
	db        *gorm.DB
	sessionID string
}

func (s *sqlSlot) Read(ctx context.Context) ([]byte, error) {
	var row models.StorageSlot
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND slot_key = ?", s.sessionID, cart.StorageKey).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cart.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("load slot: %w", err)
	}
	return []byte(row.Value), nil
}

func (s *sqlSlot) Write(ctx context.Context, value []byte) error {
	row := models.StorageSlot{
		SessionID: s.sessionID,
		Key:       cart.StorageKey,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save slot: %w", err)
	}
	return nil
}
