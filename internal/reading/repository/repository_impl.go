package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	readingdomain "github.com/dormos/dormos/internal/reading/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() readingdomain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, m *readingdomain.MeterReading) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO meter_readings (id, room_id, period_year, period_month, electricity, water, read_at, recorded_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (room_id, period_year, period_month) DO UPDATE SET
			electricity = excluded.electricity,
			water = excluded.water,
			read_at = excluded.read_at,
			recorded_by = excluded.recorded_by,
			updated_at = excluded.updated_at`,
		m.ID,
		m.RoomID,
		m.PeriodYear,
		m.PeriodMonth,
		m.Electricity,
		m.Water,
		m.ReadAt,
		m.RecordedBy,
		m.CreatedAt,
		m.UpdatedAt,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM meter_readings WHERE id = ?`,
		id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*readingdomain.MeterReading, error) {
	var reading readingdomain.MeterReading
	err := db.WithContext(ctx).Raw(
		`SELECT id, room_id, period_year, period_month, electricity, water, read_at, recorded_by, created_at, updated_at
		 FROM meter_readings WHERE id = ?`,
		id,
	).Scan(&reading).Error
	if err != nil {
		return nil, err
	}
	if reading.ID == 0 {
		return nil, nil
	}
	return &reading, nil
}

func (r *repo) FindByPeriod(ctx context.Context, db *gorm.DB, roomID snowflake.ID, year, month int) (*readingdomain.MeterReading, error) {
	var reading readingdomain.MeterReading
	err := db.WithContext(ctx).Raw(
		`SELECT id, room_id, period_year, period_month, electricity, water, read_at, recorded_by, created_at, updated_at
		 FROM meter_readings
		 WHERE room_id = ? AND period_year = ? AND period_month = ?`,
		roomID,
		year,
		month,
	).Scan(&reading).Error
	if err != nil {
		return nil, err
	}
	if reading.ID == 0 {
		return nil, nil
	}
	return &reading, nil
}

func (r *repo) FindLatestBefore(ctx context.Context, db *gorm.DB, roomID snowflake.ID, before time.Time) (*readingdomain.MeterReading, error) {
	var reading readingdomain.MeterReading
	err := db.WithContext(ctx).Raw(
		`SELECT id, room_id, period_year, period_month, electricity, water, read_at, recorded_by, created_at, updated_at
		 FROM meter_readings
		 WHERE room_id = ? AND read_at < ?
		 ORDER BY read_at DESC
		 LIMIT 1`,
		roomID,
		before,
	).Scan(&reading).Error
	if err != nil {
		return nil, err
	}
	if reading.ID == 0 {
		return nil, nil
	}
	return &reading, nil
}

func (r *repo) ListByPeriod(ctx context.Context, db *gorm.DB, year, month int) ([]readingdomain.MeterReading, error) {
	var readings []readingdomain.MeterReading
	err := db.WithContext(ctx).Raw(
		`SELECT id, room_id, period_year, period_month, electricity, water, read_at, recorded_by, created_at, updated_at
		 FROM meter_readings
		 WHERE period_year = ? AND period_month = ?
		 ORDER BY room_id ASC`,
		year,
		month,
	).Scan(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *repo) History(ctx context.Context, db *gorm.DB, roomID snowflake.ID, limit int) ([]readingdomain.MeterReading, error) {
	var readings []readingdomain.MeterReading
	err := db.WithContext(ctx).Raw(
		`SELECT id, room_id, period_year, period_month, electricity, water, read_at, recorded_by, created_at, updated_at
		 FROM meter_readings
		 WHERE room_id = ?
		 ORDER BY read_at DESC
		 LIMIT ?`,
		roomID,
		limit,
	).Scan(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *repo) CountOccupiedRooms(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT room_id) FROM tenants WHERE status = ? AND room_id IS NOT NULL`,
		"active",
	).Scan(&count).Error
	return count, err
}

func (r *repo) CountRooms(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM rooms`).Scan(&count).Error
	return count, err
}
