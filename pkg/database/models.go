package database

import (
	"time"

	"gorm.io/gorm"
)

// HeardStation records one decoded transmission: a station heard on a
// stream, keyed by its M17 stream ID.
type HeardStation struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Callsign    string    `gorm:"index;size:9;not null" json:"callsign"`
	Destination string    `gorm:"size:9" json:"destination"`
	StreamID    uint16    `gorm:"index" json:"stream_id"`
	CAN         int       `gorm:"not null" json:"can"`
	Duration    float64   `gorm:"not null" json:"duration"` // seconds
	StartTime   time.Time `gorm:"index;not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	FrameCount  int       `gorm:"default:0" json:"frame_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for HeardStation.
func (HeardStation) TableName() string {
	return "heard_stations"
}

// BeforeCreate fills in timestamps left zero by the caller.
func (h *HeardStation) BeforeCreate(tx *gorm.DB) error {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	if h.StartTime.IsZero() {
		h.StartTime = time.Now()
	}
	if h.EndTime.IsZero() {
		h.EndTime = time.Now()
	}
	return nil
}

// TextMessage records a text message assembled from LSF META blocks
// (spec's multi-block text extension).
type TextMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Src       string    `gorm:"index;size:9;not null" json:"src"`
	Dst       string    `gorm:"size:9" json:"dst"`
	Body      string    `gorm:"size:2048" json:"body"`
	ReceivedAt time.Time `gorm:"index" json:"received_at"`
}

// TableName specifies the table name for TextMessage.
func (TextMessage) TableName() string {
	return "text_messages"
}

// BeforeCreate fills in ReceivedAt if the caller left it zero.
func (m *TextMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ReceivedAt.IsZero() {
		m.ReceivedAt = time.Now()
	}
	return nil
}
