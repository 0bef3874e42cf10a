package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	contractdomain "github.com/dormos/dormos/internal/contract/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() contractdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, c *contractdomain.Contract) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO contracts (id, tenant_id, room_id, rent_price, deposit, start_date, end_date, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.TenantID,
		c.RoomID,
		c.RentPrice,
		c.Deposit,
		c.StartDate,
		c.EndDate,
		c.Active,
		c.CreatedAt,
		c.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, c *contractdomain.Contract) error {
	return db.WithContext(ctx).Exec(
		`UPDATE contracts
		 SET rent_price = ?, deposit = ?, start_date = ?, end_date = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		c.RentPrice,
		c.Deposit,
		c.StartDate,
		c.EndDate,
		c.Active,
		c.UpdatedAt,
		c.ID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*contractdomain.Contract, error) {
	var contract contractdomain.Contract
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, room_id, rent_price, deposit, start_date, end_date, active, created_at, updated_at
		 FROM contracts WHERE id = ?`,
		id,
	).Scan(&contract).Error
	if err != nil {
		return nil, err
	}
	if contract.ID == 0 {
		return nil, nil
	}
	return &contract, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]contractdomain.Contract, error) {
	var contracts []contractdomain.Contract
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, room_id, rent_price, deposit, start_date, end_date, active, created_at, updated_at
		 FROM contracts ORDER BY created_at ASC`,
	).Scan(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *repo) ListActiveEndingBy(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]contractdomain.Contract, error) {
	var contracts []contractdomain.Contract
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, room_id, rent_price, deposit, start_date, end_date, active, created_at, updated_at
		 FROM contracts
		 WHERE active = ? AND end_date IS NOT NULL AND end_date <= ?
		 ORDER BY created_at ASC`,
		true,
		cutoff,
	).Scan(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}
