package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	roomdomain "github.com/dormos/dormos/internal/room/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() roomdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, room *roomdomain.Room) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO rooms (id, number, floor, room_type, monthly_price, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		room.ID,
		room.Number,
		room.Floor,
		room.RoomType,
		room.MonthlyPrice,
		room.Status,
		room.CreatedAt,
		room.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, room *roomdomain.Room) error {
	return db.WithContext(ctx).Exec(
		`UPDATE rooms
		 SET floor = ?, room_type = ?, monthly_price = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		room.Floor,
		room.RoomType,
		room.MonthlyPrice,
		room.Status,
		room.UpdatedAt,
		room.ID,
	).Error
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status roomdomain.RoomStatus) error {
	return db.WithContext(ctx).Exec(
		`UPDATE rooms SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status,
		id,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM rooms WHERE id = ?`,
		id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*roomdomain.Room, error) {
	var room roomdomain.Room
	err := db.WithContext(ctx).Raw(
		`SELECT id, number, floor, room_type, monthly_price, status, created_at, updated_at
		 FROM rooms WHERE id = ?`,
		id,
	).Scan(&room).Error
	if err != nil {
		return nil, err
	}
	if room.ID == 0 {
		return nil, nil
	}
	return &room, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]roomdomain.Room, error) {
	var rooms []roomdomain.Room
	err := db.WithContext(ctx).Raw(
		`SELECT id, number, floor, room_type, monthly_price, status, created_at, updated_at
		 FROM rooms ORDER BY number ASC`,
	).Scan(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
