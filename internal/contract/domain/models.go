// Package domain contains persistence models for lease contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Contract represents one lease agreement between a tenant and a room.
// An unset end date means the contract is indefinite and never expires.
type Contract struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	TenantID  snowflake.ID `json:"tenant_id" gorm:"not null;index"`
	RoomID    snowflake.ID `json:"room_id" gorm:"not null;index"`
	RentPrice int64        `json:"rent_price" gorm:"not null"`
	Deposit   int64        `json:"deposit" gorm:"not null;default:0"`
	StartDate time.Time    `json:"start_date" gorm:"not null"`
	EndDate   *time.Time   `json:"end_date"`
	Active    bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Contract) TableName() string { return "contracts" }
