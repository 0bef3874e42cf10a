package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Find(ctx context.Context, db *gorm.DB) (*BillingSettings, error)
	Save(ctx context.Context, db *gorm.DB, settings *BillingSettings) error
}
