// Package domain contains persistence models for tenants.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TenantStatus represents residency state.
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
)

// Tenant represents one resident.
type Tenant struct {
	ID        snowflake.ID  `json:"id" gorm:"primaryKey"`
	RoomID    *snowflake.ID `json:"room_id" gorm:"index"`
	Name      string        `json:"name" gorm:"type:text;not null"`
	Phone     string        `json:"phone" gorm:"type:text;not null;default:''"`
	IDCardRef string        `json:"id_card_ref" gorm:"type:text;not null;default:''"`
	Status    TenantStatus  `json:"status" gorm:"type:text;not null;default:'active'"`
	CreatedAt time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Tenant) TableName() string { return "tenants" }
