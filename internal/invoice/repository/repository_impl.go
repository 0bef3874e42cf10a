package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/dormos/dormos/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() invoicedomain.Repository {
	return &repo{}
}

const invoiceColumns = `id, contract_id, room_id, period_year, period_month, rent_amount,
       water_prev, water_curr, water_units, water_unit_price, water_flat_rate, water_subtotal,
       electric_prev, electric_curr, electric_units, electric_unit_price, electric_flat_rate, electric_subtotal,
       fee_common, fee_parking, fee_internet, fee_cleaning, fee_other,
       total_amount, status, metadata, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *invoicedomain.Invoice) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO invoices (
		     id, contract_id, room_id, period_year, period_month, rent_amount,
		     water_prev, water_curr, water_units, water_unit_price, water_flat_rate, water_subtotal,
		     electric_prev, electric_curr, electric_units, electric_unit_price, electric_flat_rate, electric_subtotal,
		     fee_common, fee_parking, fee_internet, fee_cleaning, fee_other,
		     total_amount, status, metadata, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.ContractID,
		invoice.RoomID,
		invoice.PeriodYear,
		invoice.PeriodMonth,
		invoice.RentAmount,
		invoice.WaterPrev,
		invoice.WaterCurr,
		invoice.WaterUnits,
		invoice.WaterUnitPrice,
		invoice.WaterFlatRate,
		invoice.WaterSubtotal,
		invoice.ElectricPrev,
		invoice.ElectricCurr,
		invoice.ElectricUnits,
		invoice.ElectricUnitPrice,
		invoice.ElectricFlatRate,
		invoice.ElectricSubtotal,
		invoice.FeeCommon,
		invoice.FeeParking,
		invoice.FeeInternet,
		invoice.FeeCleaning,
		invoice.FeeOther,
		invoice.TotalAmount,
		invoice.Status,
		invoice.Metadata,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM invoices WHERE id = ?`,
		id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter invoicedomain.ListFilter) ([]invoicedomain.Invoice, error) {
	var (
		where []string
		args  []any
	)
	if filter.ContractID != 0 {
		where = append(where, "contract_id = ?")
		args = append(args, filter.ContractID)
	}
	if filter.Year != 0 {
		where = append(where, "period_year = ?")
		args = append(args, filter.Year)
	}
	if filter.Month != 0 {
		where = append(where, "period_month = ?")
		args = append(args, filter.Month)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY period_year DESC, period_month DESC, id DESC`

	var invoices []invoicedomain.Invoice
	err := db.WithContext(ctx).Raw(query, args...).Scan(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status invoicedomain.InvoiceStatus) error {
	return db.WithContext(ctx).Exec(
		`UPDATE invoices SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status,
		id,
	).Error
}
