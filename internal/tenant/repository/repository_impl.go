package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	tenantdomain "github.com/dormos/dormos/internal/tenant/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() tenantdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, tenant *tenantdomain.Tenant) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO tenants (id, room_id, name, phone, id_card_ref, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tenant.ID,
		tenant.RoomID,
		tenant.Name,
		tenant.Phone,
		tenant.IDCardRef,
		tenant.Status,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, tenant *tenantdomain.Tenant) error {
	return db.WithContext(ctx).Exec(
		`UPDATE tenants
		 SET room_id = ?, name = ?, phone = ?, id_card_ref = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		tenant.RoomID,
		tenant.Name,
		tenant.Phone,
		tenant.IDCardRef,
		tenant.Status,
		tenant.UpdatedAt,
		tenant.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM tenants WHERE id = ?`,
		id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*tenantdomain.Tenant, error) {
	var tenant tenantdomain.Tenant
	err := db.WithContext(ctx).Raw(
		`SELECT id, room_id, name, phone, id_card_ref, status, created_at, updated_at
		 FROM tenants WHERE id = ?`,
		id,
	).Scan(&tenant).Error
	if err != nil {
		return nil, err
	}
	if tenant.ID == 0 {
		return nil, nil
	}
	return &tenant, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]tenantdomain.Tenant, error) {
	var tenants []tenantdomain.Tenant
	err := db.WithContext(ctx).Raw(
		`SELECT id, room_id, name, phone, id_card_ref, status, created_at, updated_at
		 FROM tenants ORDER BY created_at ASC`,
	).Scan(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}
