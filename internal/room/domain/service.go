package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Number       string `json:"number"`
	Floor        int    `json:"floor"`
	RoomType     string `json:"room_type"`
	MonthlyPrice int64  `json:"monthly_price"`
}

type UpdateRequest struct {
	ID           string  `json:"id"`
	Floor        *int    `json:"floor,omitempty"`
	RoomType     *string `json:"room_type,omitempty"`
	MonthlyPrice *int64  `json:"monthly_price,omitempty"`
}

type Response struct {
	ID           string     `json:"id"`
	Number       string     `json:"number"`
	Floor        int        `json:"floor"`
	RoomType     string     `json:"room_type"`
	MonthlyPrice int64      `json:"monthly_price"`
	Status       RoomStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

var (
	ErrInvalidNumber = errors.New("invalid_number")
	ErrInvalidPrice  = errors.New("invalid_monthly_price")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
	ErrDuplicate     = errors.New("duplicate_number")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
