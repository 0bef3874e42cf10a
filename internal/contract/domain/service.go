package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// DefaultExpiryThresholdDays is the expiring-contracts window when the
// caller does not supply one.
const DefaultExpiryThresholdDays = 30

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Expiring(ctx context.Context, thresholdDays int) ([]ExpiringResponse, error)
	Renew(ctx context.Context, req RenewRequest) (*Response, error)
	Terminate(ctx context.Context, req TerminateRequest) (*Response, error)
}

type CreateRequest struct {
	TenantID       string    `json:"tenant_id"`
	RoomID         string    `json:"room_id"`
	RentPrice      int64     `json:"rent_price"`
	Deposit        int64     `json:"deposit"`
	StartDate      time.Time `json:"start_date"`
	DurationMonths *int      `json:"duration_months,omitempty"`
}

type RenewRequest struct {
	ID             string    `json:"id"`
	NewStartDate   time.Time `json:"new_start_date"`
	DurationMonths int       `json:"duration_months"`
}

type TerminateRequest struct {
	ID              string    `json:"id"`
	TerminationDate time.Time `json:"termination_date"`
}

type Response struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenant_id"`
	RoomID    string     `json:"room_id"`
	RentPrice int64      `json:"rent_price"`
	Deposit   int64      `json:"deposit"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ExpiringResponse is a contract inside the expiry window.
type ExpiringResponse struct {
	Response
	RemainingDays int `json:"remaining_days"`
}

var (
	ErrInvalidTenant    = errors.New("invalid_tenant")
	ErrInvalidRoom      = errors.New("invalid_room")
	ErrInvalidRent      = errors.New("invalid_rent_price")
	ErrInvalidStartDate = errors.New("invalid_start_date")
	ErrInvalidDuration  = errors.New("invalid_duration_months")
	ErrInvalidThreshold = errors.New("invalid_threshold_days")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")
	ErrRoomOccupied     = errors.New("room_occupied")
	ErrNotActive        = errors.New("contract_not_active")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
