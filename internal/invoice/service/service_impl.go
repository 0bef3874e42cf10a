package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/dormos/dormos/internal/billing"
	"github.com/dormos/dormos/internal/clock"
	contractdomain "github.com/dormos/dormos/internal/contract/domain"
	invoicedomain "github.com/dormos/dormos/internal/invoice/domain"
	readingdomain "github.com/dormos/dormos/internal/reading/domain"
	settingsdomain "github.com/dormos/dormos/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         invoicedomain.Repository
	ContractRepo contractdomain.Repository
	ReadingRepo  readingdomain.Repository
	Settings     settingsdomain.Service
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         invoicedomain.Repository
	contractRepo contractdomain.Repository
	readingRepo  readingdomain.Repository
	settings     settingsdomain.Service
	genID        *snowflake.Node
	clock        clock.Clock
}

func New(p Params) invoicedomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("invoice.service"),
		repo:         p.Repo,
		contractRepo: p.ContractRepo,
		readingRepo:  p.ReadingRepo,
		settings:     p.Settings,
		genID:        p.GenID,
		clock:        p.Clock,
	}
}

// Create computes and persists an invoice snapshot for one contract and
// period. Nothing prevents a second invoice for the same pair; callers that
// want one per period check the list first.
func (s *Service) Create(ctx context.Context, req invoicedomain.CreateRequest) (*invoicedomain.Response, error) {
	contractID, err := contractdomain.ParseID(strings.TrimSpace(req.ContractID))
	if err != nil {
		return nil, invoicedomain.ErrInvalidContract
	}
	if !readingdomain.ValidPeriod(req.Year, req.Month) {
		return nil, invoicedomain.ErrInvalidPeriod
	}

	contract, err := s.contractRepo.FindByID(ctx, s.db, contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, invoicedomain.ErrNotFound
	}

	pricing, err := s.settings.Pricing(ctx)
	if err != nil {
		return nil, err
	}

	water, electric, err := s.resolveMeters(ctx, contract.RoomID, req, pricing)
	if err != nil {
		return nil, err
	}

	fees := pricing.DefaultFees
	if req.Fees != nil {
		fees = billing.FixedFees{
			Common:   req.Fees.Common,
			Parking:  req.Fees.Parking,
			Internet: req.Fees.Internet,
			Cleaning: req.Fees.Cleaning,
			Other:    req.Fees.Other,
		}
	}

	items := billing.Compute(billing.ContractTerms{RentPrice: contract.RentPrice}, water, electric, fees)

	now := s.clock.Now()
	metadata := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	invoice := &invoicedomain.Invoice{
		ID:          s.genID.Generate(),
		ContractID:  contract.ID,
		RoomID:      contract.RoomID,
		PeriodYear:  req.Year,
		PeriodMonth: req.Month,
		RentAmount:  items.Rent,

		WaterPrev:      items.Water.Prev,
		WaterCurr:      items.Water.Curr,
		WaterUnits:     items.Water.Units,
		WaterUnitPrice: items.Water.UnitPrice,
		WaterFlatRate:  items.Water.FlatRate,
		WaterSubtotal:  items.Water.Subtotal,

		ElectricPrev:      items.Electric.Prev,
		ElectricCurr:      items.Electric.Curr,
		ElectricUnits:     items.Electric.Units,
		ElectricUnitPrice: items.Electric.UnitPrice,
		ElectricFlatRate:  items.Electric.FlatRate,
		ElectricSubtotal:  items.Electric.Subtotal,

		FeeCommon:   items.Fees.Common,
		FeeParking:  items.Fees.Parking,
		FeeInternet: items.Fees.Internet,
		FeeCleaning: items.Fees.Cleaning,
		FeeOther:    items.Fees.Other,

		TotalAmount: items.Total,
		Status:      invoicedomain.InvoiceStatusPending,
		Metadata:    metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, invoice); err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("contract_id", contract.ID.String()),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int64("total_amount", invoice.TotalAmount),
	)

	return toResponse(invoice), nil
}

// resolveMeters turns stored readings, request overrides and pricing into the
// two utility inputs. Without a prior reading the previous value defaults to
// the current one, so a room's first billed period carries no metered charge.
func (s *Service) resolveMeters(ctx context.Context, roomID snowflake.ID, req invoicedomain.CreateRequest, pricing billing.Pricing) (billing.UtilityInput, billing.UtilityInput, error) {
	current, err := s.readingRepo.FindByPeriod(ctx, s.db, roomID, req.Year, req.Month)
	if err != nil {
		return billing.UtilityInput{}, billing.UtilityInput{}, err
	}

	var prior *readingdomain.MeterReading
	if current != nil {
		prior, err = s.readingRepo.FindLatestBefore(ctx, s.db, roomID, current.ReadAt)
		if err != nil {
			return billing.UtilityInput{}, billing.UtilityInput{}, err
		}
	}

	var waterCurr, electricCurr int64
	if current != nil {
		waterCurr = current.Water
		electricCurr = current.Electricity
	}
	if req.WaterCurr != nil {
		waterCurr = *req.WaterCurr
	}
	if req.ElectricCurr != nil {
		electricCurr = *req.ElectricCurr
	}

	waterPrev, electricPrev := waterCurr, electricCurr
	if prior != nil {
		waterPrev = prior.Water
		electricPrev = prior.Electricity
	}
	if req.WaterPrev != nil {
		waterPrev = *req.WaterPrev
	}
	if req.ElectricPrev != nil {
		electricPrev = *req.ElectricPrev
	}

	water := billing.UtilityInput{
		Prev:       waterPrev,
		Curr:       waterCurr,
		UnitPrice:  pricing.WaterUnitPrice,
		FlatAmount: pricing.WaterFlatAmount,
	}
	electric := billing.UtilityInput{
		Prev:       electricPrev,
		Curr:       electricCurr,
		UnitPrice:  pricing.ElectricUnitPrice,
		FlatAmount: pricing.ElectricFlatAmount,
	}
	return water, electric, nil
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListRequest) ([]invoicedomain.Response, error) {
	var filter invoicedomain.ListFilter

	if trimmed := strings.TrimSpace(req.ContractID); trimmed != "" {
		contractID, err := contractdomain.ParseID(trimmed)
		if err != nil {
			return nil, invoicedomain.ErrInvalidContract
		}
		filter.ContractID = contractID
	}
	if req.Year != 0 || req.Month != 0 {
		if !readingdomain.ValidPeriod(req.Year, req.Month) {
			return nil, invoicedomain.ErrInvalidPeriod
		}
		filter.Year = req.Year
		filter.Month = req.Month
	}
	if trimmed := strings.TrimSpace(req.Status); trimmed != "" {
		status, err := invoicedomain.ParseStatus(trimmed)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	invoices, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]invoicedomain.Response, 0, len(invoices))
	for i := range invoices {
		resp = append(resp, *toResponse(&invoices[i]))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*invoicedomain.Response, error) {
	invoiceID, err := invoicedomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, invoicedomain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, invoicedomain.ErrNotFound
	}

	return toResponse(invoice), nil
}

// Delete removes the invoice unconditionally. Payments against it are kept;
// they become orphans rather than cascading away audit history.
func (s *Service) Delete(ctx context.Context, id string) error {
	invoiceID, err := invoicedomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return invoicedomain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return invoicedomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, invoiceID)
}

func toResponse(m *invoicedomain.Invoice) *invoicedomain.Response {
	return &invoicedomain.Response{
		ID:         m.ID.String(),
		ContractID: m.ContractID.String(),
		RoomID:     m.RoomID.String(),
		Year:       m.PeriodYear,
		Month:      m.PeriodMonth,
		RentAmount: m.RentAmount,
		Water: invoicedomain.UtilityLineResponse{
			Prev:      m.WaterPrev,
			Curr:      m.WaterCurr,
			Units:     m.WaterUnits,
			UnitPrice: m.WaterUnitPrice,
			FlatRate:  m.WaterFlatRate,
			Subtotal:  m.WaterSubtotal,
		},
		Electric: invoicedomain.UtilityLineResponse{
			Prev:      m.ElectricPrev,
			Curr:      m.ElectricCurr,
			Units:     m.ElectricUnits,
			UnitPrice: m.ElectricUnitPrice,
			FlatRate:  m.ElectricFlatRate,
			Subtotal:  m.ElectricSubtotal,
		},
		Fees: invoicedomain.FeesResponse{
			Common:   m.FeeCommon,
			Parking:  m.FeeParking,
			Internet: m.FeeInternet,
			Cleaning: m.FeeCleaning,
			Other:    m.FeeOther,
		},
		TotalAmount: m.TotalAmount,
		Status:      m.Status,
		Metadata:    m.Metadata,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
