// Package domain contains persistence models for rooms.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// RoomStatus represents occupancy state.
type RoomStatus string

const (
	RoomStatusVacant   RoomStatus = "vacant"
	RoomStatusOccupied RoomStatus = "occupied"
)

// Room represents one rentable room.
type Room struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	Number       string       `json:"number" gorm:"type:text;not null;uniqueIndex:ux_rooms_number"`
	Floor        int          `json:"floor" gorm:"not null;default:1"`
	RoomType     string       `json:"room_type" gorm:"type:text;not null;default:'standard'"`
	MonthlyPrice int64        `json:"monthly_price" gorm:"not null;default:0"`
	Status       RoomStatus   `json:"status" gorm:"type:text;not null;default:'vacant'"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Room) TableName() string { return "rooms" }
