// Package domain contains the billing settings model.
package domain

import "time"

// SettingsRowID is the primary key of the single settings row; the seed
// migration inserts it and updates always target it.
const SettingsRowID = 1

// BillingSettings holds house-wide utility pricing and default fixed fees.
// Exactly one row exists.
type BillingSettings struct {
	ID                 int64     `json:"id" gorm:"primaryKey"`
	WaterUnitPrice     int64     `json:"water_unit_price" gorm:"not null;default:0"`
	ElectricUnitPrice  int64     `json:"electric_unit_price" gorm:"not null;default:0"`
	WaterFlatRate      bool      `json:"water_flat_rate" gorm:"not null;default:false"`
	WaterFlatAmount    int64     `json:"water_flat_amount" gorm:"not null;default:0"`
	ElectricFlatRate   bool      `json:"electric_flat_rate" gorm:"not null;default:false"`
	ElectricFlatAmount int64     `json:"electric_flat_amount" gorm:"not null;default:0"`
	FeeCommon          int64     `json:"fee_common" gorm:"not null;default:0"`
	FeeParking         int64     `json:"fee_parking" gorm:"not null;default:0"`
	FeeInternet        int64     `json:"fee_internet" gorm:"not null;default:0"`
	FeeCleaning        int64     `json:"fee_cleaning" gorm:"not null;default:0"`
	FeeOther           int64     `json:"fee_other" gorm:"not null;default:0"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (BillingSettings) TableName() string { return "billing_settings" }
