package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, room *Room) error
	Update(ctx context.Context, db *gorm.DB, room *Room) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status RoomStatus) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Room, error)
	List(ctx context.Context, db *gorm.DB) ([]Room, error)
}
