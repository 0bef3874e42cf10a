package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	roomdomain "github.com/dormos/dormos/internal/room/domain"
	tenantdomain "github.com/dormos/dormos/internal/tenant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     tenantdomain.Repository
	RoomRepo roomdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     tenantdomain.Repository
	roomRepo roomdomain.Repository
	genID    *snowflake.Node
}

func New(p Params) tenantdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("tenant.service"),
		repo:     p.Repo,
		roomRepo: p.RoomRepo,
		genID:    p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req tenantdomain.CreateRequest) (*tenantdomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, tenantdomain.ErrInvalidName
	}

	var roomID *snowflake.ID
	if trimmed := strings.TrimSpace(req.RoomID); trimmed != "" {
		parsed, err := s.resolveRoom(ctx, trimmed)
		if err != nil {
			return nil, err
		}
		roomID = &parsed
	}

	now := time.Now().UTC()
	tenant := &tenantdomain.Tenant{
		ID:        s.genID.Generate(),
		RoomID:    roomID,
		Name:      name,
		Phone:     strings.TrimSpace(req.Phone),
		IDCardRef: strings.TrimSpace(req.IDCardRef),
		Status:    tenantdomain.TenantStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, tenant); err != nil {
		return nil, err
	}

	return s.toResponse(tenant), nil
}

func (s *Service) List(ctx context.Context) ([]tenantdomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]tenantdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *s.toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*tenantdomain.Response, error) {
	tenantID, err := tenantdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, tenantdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, tenantID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, tenantdomain.ErrNotFound
	}

	return s.toResponse(item), nil
}

func (s *Service) Update(ctx context.Context, req tenantdomain.UpdateRequest) (*tenantdomain.Response, error) {
	tenantID, err := tenantdomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, tenantdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, tenantID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, tenantdomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, tenantdomain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Phone != nil {
		item.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.IDCardRef != nil {
		item.IDCardRef = strings.TrimSpace(*req.IDCardRef)
	}
	if req.RoomID != nil {
		trimmed := strings.TrimSpace(*req.RoomID)
		if trimmed == "" {
			item.RoomID = nil
		} else {
			parsed, err := s.resolveRoom(ctx, trimmed)
			if err != nil {
				return nil, err
			}
			item.RoomID = &parsed
		}
	}
	if req.Status != nil {
		switch tenantdomain.TenantStatus(strings.ToLower(strings.TrimSpace(*req.Status))) {
		case tenantdomain.TenantStatusActive:
			item.Status = tenantdomain.TenantStatusActive
		case tenantdomain.TenantStatusInactive:
			item.Status = tenantdomain.TenantStatusInactive
		default:
			return nil, tenantdomain.ErrInvalidStatus
		}
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	return s.toResponse(item), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tenantID, err := tenantdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return tenantdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, tenantID)
	if err != nil {
		return err
	}
	if item == nil {
		return tenantdomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, tenantID)
}

func (s *Service) resolveRoom(ctx context.Context, id string) (snowflake.ID, error) {
	roomID, err := roomdomain.ParseID(id)
	if err != nil {
		return 0, tenantdomain.ErrInvalidRoom
	}
	room, err := s.roomRepo.FindByID(ctx, s.db, roomID)
	if err != nil {
		return 0, err
	}
	if room == nil {
		return 0, tenantdomain.ErrInvalidRoom
	}
	return roomID, nil
}

func (s *Service) toResponse(tenant *tenantdomain.Tenant) *tenantdomain.Response {
	resp := &tenantdomain.Response{
		ID:        tenant.ID.String(),
		Name:      tenant.Name,
		Phone:     tenant.Phone,
		IDCardRef: tenant.IDCardRef,
		Status:    tenant.Status,
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}
	if tenant.RoomID != nil {
		roomID := tenant.RoomID.String()
		resp.RoomID = &roomID
	}
	return resp
}
