package database

import (
	"time"

	"gorm.io/gorm"
)

// TextMessageRepository handles text-message database operations.
type TextMessageRepository struct {
	db *gorm.DB
}

// NewTextMessageRepository creates a new text-message repository.
func NewTextMessageRepository(db *gorm.DB) *TextMessageRepository {
	return &TextMessageRepository{db: db}
}

// Create stores an assembled text message.
func (r *TextMessageRepository) Create(m *TextMessage) error {
	return r.db.Create(m).Error
}

// GetRecent retrieves the most recent N text messages.
func (r *TextMessageRepository) GetRecent(limit int) ([]TextMessage, error) {
	var messages []TextMessage
	err := r.db.Order("received_at DESC").Limit(limit).Find(&messages).Error
	return messages, err
}

// GetBySrc retrieves text messages sent by a specific source callsign.
func (r *TextMessageRepository) GetBySrc(src string, limit int) ([]TextMessage, error) {
	var messages []TextMessage
	err := r.db.Where("src = ?", src).
		Order("received_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// Count returns the total number of stored text messages.
func (r *TextMessageRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&TextMessage{}).Count(&count).Error
	return count, err
}

// DeleteOlderThan deletes text messages received before the given time.
func (r *TextMessageRepository) DeleteOlderThan(before time.Time) (int64, error) {
	result := r.db.Where("received_at < ?", before).Delete(&TextMessage{})
	return result.RowsAffected, result.Error
}
