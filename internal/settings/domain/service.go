package domain

import (
	"context"
	"errors"
	"time"

	"github.com/dormos/dormos/internal/billing"
)

type Service interface {
	Get(ctx context.Context) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	// Pricing resolves the stored settings into the billing engine's
	// pricing input.
	Pricing(ctx context.Context) (billing.Pricing, error)
}

type UpdateRequest struct {
	WaterUnitPrice     int64 `json:"water_unit_price"`
	ElectricUnitPrice  int64 `json:"electric_unit_price"`
	WaterFlatRate      bool  `json:"water_flat_rate"`
	WaterFlatAmount    int64 `json:"water_flat_amount"`
	ElectricFlatRate   bool  `json:"electric_flat_rate"`
	ElectricFlatAmount int64 `json:"electric_flat_amount"`
	FeeCommon          int64 `json:"fee_common"`
	FeeParking         int64 `json:"fee_parking"`
	FeeInternet        int64 `json:"fee_internet"`
	FeeCleaning        int64 `json:"fee_cleaning"`
	FeeOther           int64 `json:"fee_other"`
}

type Response struct {
	WaterUnitPrice     int64     `json:"water_unit_price"`
	ElectricUnitPrice  int64     `json:"electric_unit_price"`
	WaterFlatRate      bool      `json:"water_flat_rate"`
	WaterFlatAmount    int64     `json:"water_flat_amount"`
	ElectricFlatRate   bool      `json:"electric_flat_rate"`
	ElectricFlatAmount int64     `json:"electric_flat_amount"`
	FeeCommon          int64     `json:"fee_common"`
	FeeParking         int64     `json:"fee_parking"`
	FeeInternet        int64     `json:"fee_internet"`
	FeeCleaning        int64     `json:"fee_cleaning"`
	FeeOther           int64     `json:"fee_other"`
	UpdatedAt          time.Time `json:"updated_at"`
}

var (
	ErrNegativeAmount = errors.New("negative_amount")
	ErrNotFound       = errors.New("not_found")
)
