package database

import (
	"time"

	"gorm.io/gorm"
)

// HeardStationRepository handles heard-station database operations.
type HeardStationRepository struct {
	db *gorm.DB
}

// NewHeardStationRepository creates a new heard-station repository.
func NewHeardStationRepository(db *gorm.DB) *HeardStationRepository {
	return &HeardStationRepository{db: db}
}

// Create adds a new heard-station record.
func (r *HeardStationRepository) Create(h *HeardStation) error {
	return r.db.Create(h).Error
}

// GetRecent retrieves the most recent N heard stations.
func (r *HeardStationRepository) GetRecent(limit int) ([]HeardStation, error) {
	var stations []HeardStation
	err := r.db.Order("start_time DESC").Limit(limit).Find(&stations).Error
	return stations, err
}

// GetRecentPaginated retrieves heard stations with pagination.
func (r *HeardStationRepository) GetRecentPaginated(page, perPage int) ([]HeardStation, int64, error) {
	var stations []HeardStation
	var total int64

	if err := r.db.Model(&HeardStation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	err := r.db.Order("start_time DESC").
		Offset(offset).
		Limit(perPage).
		Find(&stations).Error

	return stations, total, err
}

// GetByCallsign retrieves heard-station records for a specific callsign.
func (r *HeardStationRepository) GetByCallsign(callsign string, limit int) ([]HeardStation, error) {
	var stations []HeardStation
	err := r.db.Where("callsign = ?", callsign).
		Order("start_time DESC").
		Limit(limit).
		Find(&stations).Error
	return stations, err
}

// GetByCAN retrieves heard stations that used a specific channel access number.
func (r *HeardStationRepository) GetByCAN(can int, limit int) ([]HeardStation, error) {
	var stations []HeardStation
	err := r.db.Where("can = ?", can).
		Order("start_time DESC").
		Limit(limit).
		Find(&stations).Error
	return stations, err
}

// GetByTimeRange retrieves heard stations within a time range.
func (r *HeardStationRepository) GetByTimeRange(start, end time.Time, limit int) ([]HeardStation, error) {
	var stations []HeardStation
	err := r.db.Where("start_time BETWEEN ? AND ?", start, end).
		Order("start_time DESC").
		Limit(limit).
		Find(&stations).Error
	return stations, err
}

// DeleteOlderThan deletes heard-station records older than the given time.
func (r *HeardStationRepository) DeleteOlderThan(before time.Time) (int64, error) {
	result := r.db.Where("start_time < ?", before).Delete(&HeardStation{})
	return result.RowsAffected, result.Error
}

// GetActiveStreamIDs retrieves stream IDs seen within the last N seconds.
func (r *HeardStationRepository) GetActiveStreamIDs(withinSeconds int) ([]uint16, error) {
	var streamIDs []uint16
	cutoff := time.Now().Add(-time.Duration(withinSeconds) * time.Second)

	err := r.db.Model(&HeardStation{}).
		Where("end_time > ?", cutoff).
		Distinct("stream_id").
		Pluck("stream_id", &streamIDs).Error

	return streamIDs, err
}
