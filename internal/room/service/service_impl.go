package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	roomdomain "github.com/dormos/dormos/internal/room/domain"
	"github.com/dormos/dormos/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  roomdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  roomdomain.Repository
	genID *snowflake.Node
}

func New(p Params) roomdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("room.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req roomdomain.CreateRequest) (*roomdomain.Response, error) {
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, roomdomain.ErrInvalidNumber
	}
	if req.MonthlyPrice < 0 {
		return nil, roomdomain.ErrInvalidPrice
	}

	floor := req.Floor
	if floor == 0 {
		floor = 1
	}
	roomType := strings.TrimSpace(req.RoomType)
	if roomType == "" {
		roomType = "standard"
	}

	now := time.Now().UTC()
	room := &roomdomain.Room{
		ID:           s.genID.Generate(),
		Number:       number,
		Floor:        floor,
		RoomType:     roomType,
		MonthlyPrice: req.MonthlyPrice,
		Status:       roomdomain.RoomStatusVacant,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, room); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, roomdomain.ErrDuplicate
		}
		return nil, err
	}

	return s.toResponse(room), nil
}

func (s *Service) List(ctx context.Context) ([]roomdomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]roomdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *s.toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*roomdomain.Response, error) {
	roomID, err := roomdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, roomdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, roomID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, roomdomain.ErrNotFound
	}

	return s.toResponse(item), nil
}

func (s *Service) Update(ctx context.Context, req roomdomain.UpdateRequest) (*roomdomain.Response, error) {
	roomID, err := roomdomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, roomdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, roomID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, roomdomain.ErrNotFound
	}

	if req.Floor != nil {
		item.Floor = *req.Floor
	}
	if req.RoomType != nil {
		roomType := strings.TrimSpace(*req.RoomType)
		if roomType != "" {
			item.RoomType = roomType
		}
	}
	if req.MonthlyPrice != nil {
		if *req.MonthlyPrice < 0 {
			return nil, roomdomain.ErrInvalidPrice
		}
		item.MonthlyPrice = *req.MonthlyPrice
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	return s.toResponse(item), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	roomID, err := roomdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return roomdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, roomID)
	if err != nil {
		return err
	}
	if item == nil {
		return roomdomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, roomID)
}

func (s *Service) toResponse(room *roomdomain.Room) *roomdomain.Response {
	return &roomdomain.Response{
		ID:           room.ID.String(),
		Number:       room.Number,
		Floor:        room.Floor,
		RoomType:     room.RoomType,
		MonthlyPrice: room.MonthlyPrice,
		Status:       room.Status,
		CreatedAt:    room.CreatedAt,
		UpdatedAt:    room.UpdatedAt,
	}
}
