// Package domain contains persistence models for meter readings.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MeterReading is the recorded electricity and water meter state for one
// room in one calendar month. The (room, year, month) key is unique; a
// resubmission for the same period overwrites the stored row. Consumption
// is always derived from two readings, never stored.
type MeterReading struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	RoomID      snowflake.ID `json:"room_id" gorm:"not null;uniqueIndex:ux_readings_room_period,priority:1;index:ix_readings_room_read_at,priority:1"`
	PeriodYear  int          `json:"period_year" gorm:"not null;uniqueIndex:ux_readings_room_period,priority:2"`
	PeriodMonth int          `json:"period_month" gorm:"not null;uniqueIndex:ux_readings_room_period,priority:3"`
	Electricity int64        `json:"electricity" gorm:"not null"`
	Water       int64        `json:"water" gorm:"not null"`
	ReadAt      time.Time    `json:"read_at" gorm:"not null;index:ix_readings_room_read_at,priority:2"`
	RecordedBy  string       `json:"recorded_by" gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (MeterReading) TableName() string { return "meter_readings" }
