package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Delete(ctx context.Context, id string) error
}

// CreateRequest identifies a contract and period. Meter values default to
// the stored readings for the period; the pointer fields override them.
// Fees default to the billing settings unless Fees is set.
type CreateRequest struct {
	ContractID string `json:"contract_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	WaterPrev    *int64 `json:"water_prev,omitempty"`
	WaterCurr    *int64 `json:"water_curr,omitempty"`
	ElectricPrev *int64 `json:"electric_prev,omitempty"`
	ElectricCurr *int64 `json:"electric_curr,omitempty"`

	Fees *FeesRequest `json:"fees,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

type FeesRequest struct {
	Common   int64 `json:"common"`
	Parking  int64 `json:"parking"`
	Internet int64 `json:"internet"`
	Cleaning int64 `json:"cleaning"`
	Other    int64 `json:"other"`
}

type ListRequest struct {
	ContractID string `json:"contract_id,omitempty"`
	Year       int    `json:"year,omitempty"`
	Month      int    `json:"month,omitempty"`
	Status     string `json:"status,omitempty"`
}

type UtilityLineResponse struct {
	Prev      int64 `json:"prev"`
	Curr      int64 `json:"curr"`
	Units     int64 `json:"units"`
	UnitPrice int64 `json:"unit_price"`
	FlatRate  bool  `json:"flat_rate"`
	Subtotal  int64 `json:"subtotal"`
}

type FeesResponse struct {
	Common   int64 `json:"common"`
	Parking  int64 `json:"parking"`
	Internet int64 `json:"internet"`
	Cleaning int64 `json:"cleaning"`
	Other    int64 `json:"other"`
}

type Response struct {
	ID          string              `json:"id"`
	ContractID  string              `json:"contract_id"`
	RoomID      string              `json:"room_id"`
	Year        int                 `json:"year"`
	Month       int                 `json:"month"`
	RentAmount  int64               `json:"rent_amount"`
	Water       UtilityLineResponse `json:"water"`
	Electric    UtilityLineResponse `json:"electric"`
	Fees        FeesResponse        `json:"fees"`
	TotalAmount int64               `json:"total_amount"`
	Status      InvoiceStatus       `json:"status"`
	Metadata    map[string]any      `json:"metadata,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

var (
	ErrInvalidContract = errors.New("invalid_contract")
	ErrInvalidPeriod   = errors.New("invalid_period")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}

// ParseStatus validates a status filter value.
func ParseStatus(value string) (InvoiceStatus, error) {
	switch InvoiceStatus(value) {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return InvoiceStatus(value), nil
	default:
		return "", ErrInvalidStatus
	}
}
