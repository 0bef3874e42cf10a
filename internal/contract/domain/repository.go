package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, contract *Contract) error
	Update(ctx context.Context, db *gorm.DB, contract *Contract) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Contract, error)
	List(ctx context.Context, db *gorm.DB) ([]Contract, error)
	// ListActiveEndingBy returns active contracts whose end date is set and
	// not after the cutoff, in insertion order.
	ListActiveEndingBy(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]Contract, error)
}
