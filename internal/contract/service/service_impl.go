package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dormos/dormos/internal/clock"
	contractdomain "github.com/dormos/dormos/internal/contract/domain"
	roomdomain "github.com/dormos/dormos/internal/room/domain"
	tenantdomain "github.com/dormos/dormos/internal/tenant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       contractdomain.Repository
	RoomRepo   roomdomain.Repository
	TenantRepo tenantdomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       contractdomain.Repository
	roomRepo   roomdomain.Repository
	tenantRepo tenantdomain.Repository
	genID      *snowflake.Node
	clock      clock.Clock
}

func New(p Params) contractdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("contract.service"),
		repo:       p.Repo,
		roomRepo:   p.RoomRepo,
		tenantRepo: p.TenantRepo,
		genID:      p.GenID,
		clock:      p.Clock,
	}
}

// Create signs a lease. The contract insert and the room occupancy flip
// happen in one transaction so a failed step leaves nothing half-applied.
func (s *Service) Create(ctx context.Context, req contractdomain.CreateRequest) (*contractdomain.Response, error) {
	tenantID, err := tenantdomain.ParseID(strings.TrimSpace(req.TenantID))
	if err != nil {
		return nil, contractdomain.ErrInvalidTenant
	}
	roomID, err := roomdomain.ParseID(strings.TrimSpace(req.RoomID))
	if err != nil {
		return nil, contractdomain.ErrInvalidRoom
	}
	if req.RentPrice <= 0 {
		return nil, contractdomain.ErrInvalidRent
	}
	if req.StartDate.IsZero() {
		return nil, contractdomain.ErrInvalidStartDate
	}

	var endDate *time.Time
	if req.DurationMonths != nil {
		if *req.DurationMonths <= 0 {
			return nil, contractdomain.ErrInvalidDuration
		}
		end := req.StartDate.AddDate(0, *req.DurationMonths, 0)
		endDate = &end
	}

	now := s.clock.Now()
	contract := &contractdomain.Contract{
		ID:        s.genID.Generate(),
		TenantID:  tenantID,
		RoomID:    roomID,
		RentPrice: req.RentPrice,
		Deposit:   req.Deposit,
		StartDate: req.StartDate.UTC(),
		EndDate:   endDate,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := s.tenantRepo.FindByID(ctx, tx, tenantID)
		if err != nil {
			return err
		}
		if tenant == nil {
			return contractdomain.ErrInvalidTenant
		}

		room, err := s.roomRepo.FindByID(ctx, tx, roomID)
		if err != nil {
			return err
		}
		if room == nil {
			return contractdomain.ErrInvalidRoom
		}
		if room.Status == roomdomain.RoomStatusOccupied {
			return contractdomain.ErrRoomOccupied
		}

		if err := s.repo.Insert(ctx, tx, contract); err != nil {
			return err
		}
		return s.roomRepo.UpdateStatus(ctx, tx, roomID, roomdomain.RoomStatusOccupied)
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(contract), nil
}

func (s *Service) List(ctx context.Context) ([]contractdomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]contractdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *s.toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*contractdomain.Response, error) {
	contractID, err := contractdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, contractdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, contractID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, contractdomain.ErrNotFound
	}

	return s.toResponse(item), nil
}

// Expiring lists active, dated contracts ending within thresholdDays of
// today, soonest first. Dates are compared at day granularity.
func (s *Service) Expiring(ctx context.Context, thresholdDays int) ([]contractdomain.ExpiringResponse, error) {
	if thresholdDays == 0 {
		thresholdDays = contractdomain.DefaultExpiryThresholdDays
	}
	if thresholdDays < 0 {
		return nil, contractdomain.ErrInvalidThreshold
	}

	today := truncateToDay(s.clock.Now())
	// One extra day so contracts ending late on the last day are not cut
	// off by their time component; the exact filter happens below.
	cutoff := today.AddDate(0, 0, thresholdDays+1)

	items, err := s.repo.ListActiveEndingBy(ctx, s.db, cutoff)
	if err != nil {
		return nil, err
	}

	expiring := make([]contractdomain.ExpiringResponse, 0, len(items))
	for i := range items {
		endDay := truncateToDay(*items[i].EndDate)
		if endDay.Before(today) {
			continue
		}
		remaining := int(endDay.Sub(today).Hours() / 24)
		if remaining > thresholdDays {
			continue
		}
		expiring = append(expiring, contractdomain.ExpiringResponse{
			Response:      *s.toResponse(&items[i]),
			RemainingDays: remaining,
		})
	}

	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].RemainingDays < expiring[j].RemainingDays
	})

	return expiring, nil
}

// Renew sets a fresh start date and a new end date of start plus the given
// months. Contiguity with the previous end date is the caller's concern.
func (s *Service) Renew(ctx context.Context, req contractdomain.RenewRequest) (*contractdomain.Response, error) {
	contractID, err := contractdomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, contractdomain.ErrInvalidID
	}
	if req.NewStartDate.IsZero() {
		return nil, contractdomain.ErrInvalidStartDate
	}
	if req.DurationMonths <= 0 {
		return nil, contractdomain.ErrInvalidDuration
	}

	item, err := s.repo.FindByID(ctx, s.db, contractID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, contractdomain.ErrNotFound
	}

	end := req.NewStartDate.AddDate(0, req.DurationMonths, 0)
	item.StartDate = req.NewStartDate.UTC()
	item.EndDate = &end
	item.Active = true
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	return s.toResponse(item), nil
}

// Terminate deactivates the contract and releases its room in one
// transaction.
func (s *Service) Terminate(ctx context.Context, req contractdomain.TerminateRequest) (*contractdomain.Response, error) {
	contractID, err := contractdomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, contractdomain.ErrInvalidID
	}
	if req.TerminationDate.IsZero() {
		return nil, contractdomain.ErrInvalidStartDate
	}

	var item *contractdomain.Contract
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repo.FindByID(ctx, tx, contractID)
		if err != nil {
			return err
		}
		if found == nil {
			return contractdomain.ErrNotFound
		}
		if !found.Active {
			return contractdomain.ErrNotActive
		}

		end := req.TerminationDate.UTC()
		found.Active = false
		found.EndDate = &end
		found.UpdatedAt = s.clock.Now()
		if err := s.repo.Update(ctx, tx, found); err != nil {
			return err
		}

		item = found
		return s.roomRepo.UpdateStatus(ctx, tx, found.RoomID, roomdomain.RoomStatusVacant)
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(item), nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) toResponse(c *contractdomain.Contract) *contractdomain.Response {
	return &contractdomain.Response{
		ID:        c.ID.String(),
		TenantID:  c.TenantID.String(),
		RoomID:    c.RoomID.String(),
		RentPrice: c.RentPrice,
		Deposit:   c.Deposit,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
