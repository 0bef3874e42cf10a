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
	RoomID    string `json:"room_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	IDCardRef string `json:"id_card_ref"`
}

type UpdateRequest struct {
	ID        string  `json:"id"`
	RoomID    *string `json:"room_id,omitempty"`
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IDCardRef *string `json:"id_card_ref,omitempty"`
	Status    *string `json:"status,omitempty"`
}

type Response struct {
	ID        string       `json:"id"`
	RoomID    *string      `json:"room_id,omitempty"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone"`
	IDCardRef string       `json:"id_card_ref"`
	Status    TenantStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrInvalidRoom   = errors.New("invalid_room")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
