package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// Upsert inserts the reading or, when a row for the same
	// (room, year, month) exists, overwrites its values in place.
	Upsert(ctx context.Context, db *gorm.DB, reading *MeterReading) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*MeterReading, error)
	FindByPeriod(ctx context.Context, db *gorm.DB, roomID snowflake.ID, year, month int) (*MeterReading, error)
	// FindLatestBefore returns the newest reading for the room read
	// strictly before the given instant, regardless of calendar gaps.
	FindLatestBefore(ctx context.Context, db *gorm.DB, roomID snowflake.ID, before time.Time) (*MeterReading, error)
	ListByPeriod(ctx context.Context, db *gorm.DB, year, month int) ([]MeterReading, error)
	History(ctx context.Context, db *gorm.DB, roomID snowflake.ID, limit int) ([]MeterReading, error)
	// CountOccupiedRooms counts distinct rooms housing at least one
	// active tenant.
	CountOccupiedRooms(ctx context.Context, db *gorm.DB) (int64, error)
	CountRooms(ctx context.Context, db *gorm.DB) (int64, error)
}
