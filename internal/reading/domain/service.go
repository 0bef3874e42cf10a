package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// DefaultHistoryLimit bounds reading history when the caller does not
// supply a limit.
const DefaultHistoryLimit = 12

type Service interface {
	Upsert(ctx context.Context, req UpsertRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	ListForPeriod(ctx context.Context, req ListRequest) ([]PeriodEntry, error)
	Consumption(ctx context.Context, roomID string, year, month int) (*ConsumptionResponse, error)
	Summary(ctx context.Context, year, month int) (*SummaryResponse, error)
	History(ctx context.Context, roomID string, limit int) ([]Response, error)
}

type UpsertRequest struct {
	RoomID      string    `json:"room_id"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Electricity int64     `json:"electricity"`
	Water       int64     `json:"water"`
	RecordedBy  string    `json:"recorded_by"`
	ReadAt      time.Time `json:"read_at"`
}

type ListRequest struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	RoomID string `json:"room_id,omitempty"`
}

type Response struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"room_id"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Electricity int64     `json:"electricity"`
	Water       int64     `json:"water"`
	ReadAt      time.Time `json:"read_at"`
	RecordedBy  string    `json:"recorded_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PeriodEntry pairs a room with its reading for the period, if any.
type PeriodEntry struct {
	RoomID     string    `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	Reading    *Response `json:"reading"`
}

// ConsumptionResponse reports derived, zero-clamped unit counts.
type ConsumptionResponse struct {
	RoomID           string `json:"room_id"`
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	ElectricityUnits int64  `json:"electricity_units"`
	WaterUnits       int64  `json:"water_units"`
}

type SummaryResponse struct {
	Year             int   `json:"year"`
	Month            int   `json:"month"`
	TotalRooms       int64 `json:"total_rooms"`
	OccupiedRooms    int64 `json:"occupied_rooms"`
	RecordedRooms    int64 `json:"recorded_rooms"`
	PendingRooms     int64 `json:"pending_rooms"`
	TotalElectricity int64 `json:"total_electricity"`
	TotalWater       int64 `json:"total_water"`
}

var (
	ErrInvalidRoom   = errors.New("invalid_room")
	ErrInvalidPeriod = errors.New("invalid_period")
	ErrNegativeValue = errors.New("negative_meter_value")
	ErrInvalidLimit  = errors.New("invalid_limit")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}

// ValidPeriod reports whether year/month identify a real calendar month.
func ValidPeriod(year, month int) bool {
	return year >= 1 && month >= 1 && month <= 12
}
