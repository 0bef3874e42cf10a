package service

import (
	"context"

	"github.com/dormos/dormos/internal/billing"
	"github.com/dormos/dormos/internal/clock"
	settingsdomain "github.com/dormos/dormos/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  settingsdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  settingsdomain.Repository
	clock clock.Clock
}

func New(p Params) settingsdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("settings.service"),
		repo:  p.Repo,
		clock: p.Clock,
	}
}

func (s *Service) Get(ctx context.Context) (*settingsdomain.Response, error) {
	settings, err := s.find(ctx)
	if err != nil {
		return nil, err
	}
	return toResponse(settings), nil
}

func (s *Service) Update(ctx context.Context, req settingsdomain.UpdateRequest) (*settingsdomain.Response, error) {
	for _, v := range []int64{
		req.WaterUnitPrice, req.ElectricUnitPrice,
		req.WaterFlatAmount, req.ElectricFlatAmount,
		req.FeeCommon, req.FeeParking, req.FeeInternet, req.FeeCleaning, req.FeeOther,
	} {
		if v < 0 {
			return nil, settingsdomain.ErrNegativeAmount
		}
	}

	settings := &settingsdomain.BillingSettings{
		ID:                 settingsdomain.SettingsRowID,
		WaterUnitPrice:     req.WaterUnitPrice,
		ElectricUnitPrice:  req.ElectricUnitPrice,
		WaterFlatRate:      req.WaterFlatRate,
		WaterFlatAmount:    req.WaterFlatAmount,
		ElectricFlatRate:   req.ElectricFlatRate,
		ElectricFlatAmount: req.ElectricFlatAmount,
		FeeCommon:          req.FeeCommon,
		FeeParking:         req.FeeParking,
		FeeInternet:        req.FeeInternet,
		FeeCleaning:        req.FeeCleaning,
		FeeOther:           req.FeeOther,
		UpdatedAt:          s.clock.Now(),
	}

	if err := s.repo.Save(ctx, s.db, settings); err != nil {
		return nil, err
	}

	return toResponse(settings), nil
}

func (s *Service) Pricing(ctx context.Context) (billing.Pricing, error) {
	settings, err := s.find(ctx)
	if err != nil {
		return billing.Pricing{}, err
	}

	pricing := billing.Pricing{
		WaterUnitPrice:    settings.WaterUnitPrice,
		ElectricUnitPrice: settings.ElectricUnitPrice,
		DefaultFees: billing.FixedFees{
			Common:   settings.FeeCommon,
			Parking:  settings.FeeParking,
			Internet: settings.FeeInternet,
			Cleaning: settings.FeeCleaning,
			Other:    settings.FeeOther,
		},
	}
	if settings.WaterFlatRate {
		amount := settings.WaterFlatAmount
		pricing.WaterFlatAmount = &amount
	}
	if settings.ElectricFlatRate {
		amount := settings.ElectricFlatAmount
		pricing.ElectricFlatAmount = &amount
	}
	return pricing, nil
}

func (s *Service) find(ctx context.Context) (*settingsdomain.BillingSettings, error) {
	settings, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, settingsdomain.ErrNotFound
	}
	return settings, nil
}

func toResponse(m *settingsdomain.BillingSettings) *settingsdomain.Response {
	return &settingsdomain.Response{
		WaterUnitPrice:     m.WaterUnitPrice,
		ElectricUnitPrice:  m.ElectricUnitPrice,
		WaterFlatRate:      m.WaterFlatRate,
		WaterFlatAmount:    m.WaterFlatAmount,
		ElectricFlatRate:   m.ElectricFlatRate,
		ElectricFlatAmount: m.ElectricFlatAmount,
		FeeCommon:          m.FeeCommon,
		FeeParking:         m.FeeParking,
		FeeInternet:        m.FeeInternet,
		FeeCleaning:        m.FeeCleaning,
		FeeOther:           m.FeeOther,
		UpdatedAt:          m.UpdatedAt,
	}
}
