package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	// Delete removes an invoice only; payments that referenced it are left
	// in place.
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Invoice, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status InvoiceStatus) error
}

// ListFilter narrows List; zero values mean no filtering.
type ListFilter struct {
	ContractID snowflake.ID
	Year       int
	Month      int
	Status     InvoiceStatus
}
