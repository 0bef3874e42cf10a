// Package domain contains persistence models for invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus is the payment state of an invoice. Transitions are driven
// only by the payment ledger.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice is a computed billing snapshot for one contract and period. Every
// amount is copied in at creation time and never re-derived; only the status
// column changes afterwards.
type Invoice struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	ContractID  snowflake.ID `json:"contract_id" gorm:"not null;index:ix_invoices_contract"`
	RoomID      snowflake.ID `json:"room_id" gorm:"not null"`
	PeriodYear  int          `json:"period_year" gorm:"not null;index:ix_invoices_period"`
	PeriodMonth int          `json:"period_month" gorm:"not null;index:ix_invoices_period"`

	RentAmount int64 `json:"rent_amount" gorm:"not null"`

	WaterPrev      int64 `json:"water_prev" gorm:"not null;default:0"`
	WaterCurr      int64 `json:"water_curr" gorm:"not null;default:0"`
	WaterUnits     int64 `json:"water_units" gorm:"not null;default:0"`
	WaterUnitPrice int64 `json:"water_unit_price" gorm:"not null;default:0"`
	WaterFlatRate  bool  `json:"water_flat_rate" gorm:"not null;default:false"`
	WaterSubtotal  int64 `json:"water_subtotal" gorm:"not null;default:0"`

	ElectricPrev      int64 `json:"electric_prev" gorm:"not null;default:0"`
	ElectricCurr      int64 `json:"electric_curr" gorm:"not null;default:0"`
	ElectricUnits     int64 `json:"electric_units" gorm:"not null;default:0"`
	ElectricUnitPrice int64 `json:"electric_unit_price" gorm:"not null;default:0"`
	ElectricFlatRate  bool  `json:"electric_flat_rate" gorm:"not null;default:false"`
	ElectricSubtotal  int64 `json:"electric_subtotal" gorm:"not null;default:0"`

	FeeCommon   int64 `json:"fee_common" gorm:"not null;default:0"`
	FeeParking  int64 `json:"fee_parking" gorm:"not null;default:0"`
	FeeInternet int64 `json:"fee_internet" gorm:"not null;default:0"`
	FeeCleaning int64 `json:"fee_cleaning" gorm:"not null;default:0"`
	FeeOther    int64 `json:"fee_other" gorm:"not null;default:0"`

	TotalAmount int64             `json:"total_amount" gorm:"not null"`
	Status      InvoiceStatus     `json:"status" gorm:"type:text;not null;default:'pending'"`
	Metadata    datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
	CreatedAt   time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }
