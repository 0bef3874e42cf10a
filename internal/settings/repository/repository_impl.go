package repository

import (
	"context"

	settingsdomain "github.com/dormos/dormos/internal/settings/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() settingsdomain.Repository {
	return &repo{}
}

func (r *repo) Find(ctx context.Context, db *gorm.DB) (*settingsdomain.BillingSettings, error) {
	var settings settingsdomain.BillingSettings
	err := db.WithContext(ctx).Raw(
		`SELECT id, water_unit_price, electric_unit_price,
		        water_flat_rate, water_flat_amount,
		        electric_flat_rate, electric_flat_amount,
		        fee_common, fee_parking, fee_internet, fee_cleaning, fee_other,
		        updated_at
		 FROM billing_settings WHERE id = ?`,
		settingsdomain.SettingsRowID,
	).Scan(&settings).Error
	if err != nil {
		return nil, err
	}
	if settings.ID == 0 {
		return nil, nil
	}
	return &settings, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, settings *settingsdomain.BillingSettings) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO billing_settings (
		     id, water_unit_price, electric_unit_price,
		     water_flat_rate, water_flat_amount,
		     electric_flat_rate, electric_flat_amount,
		     fee_common, fee_parking, fee_internet, fee_cleaning, fee_other,
		     updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		     water_unit_price = excluded.water_unit_price,
		     electric_unit_price = excluded.electric_unit_price,
		     water_flat_rate = excluded.water_flat_rate,
		     water_flat_amount = excluded.water_flat_amount,
		     electric_flat_rate = excluded.electric_flat_rate,
		     electric_flat_amount = excluded.electric_flat_amount,
		     fee_common = excluded.fee_common,
		     fee_parking = excluded.fee_parking,
		     fee_internet = excluded.fee_internet,
		     fee_cleaning = excluded.fee_cleaning,
		     fee_other = excluded.fee_other,
		     updated_at = excluded.updated_at`,
		settings.ID,
		settings.WaterUnitPrice,
		settings.ElectricUnitPrice,
		settings.WaterFlatRate,
		settings.WaterFlatAmount,
		settings.ElectricFlatRate,
		settings.ElectricFlatAmount,
		settings.FeeCommon,
		settings.FeeParking,
		settings.FeeInternet,
		settings.FeeCleaning,
		settings.FeeOther,
		settings.UpdatedAt,
	).Error
}
