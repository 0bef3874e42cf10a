package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dormos/dormos/internal/clock"
	contractdomain "github.com/dormos/dormos/internal/contract/domain"
	contractrepo "github.com/dormos/dormos/internal/contract/repository"
	invoicedomain "github.com/dormos/dormos/internal/invoice/domain"
	invoicerepo "github.com/dormos/dormos/internal/invoice/repository"
	readingdomain "github.com/dormos/dormos/internal/reading/domain"
	readingrepo "github.com/dormos/dormos/internal/reading/repository"
	roomdomain "github.com/dormos/dormos/internal/room/domain"
	settingsdomain "github.com/dormos/dormos/internal/settings/domain"
	settingsrepo "github.com/dormos/dormos/internal/settings/repository"
	settingsservice "github.com/dormos/dormos/internal/settings/service"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	svc      *Service
	settings settingsdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&roomdomain.Room{},
		&contractdomain.Contract{},
		&readingdomain.MeterReading{},
		&invoicedomain.Invoice{},
		&settingsdomain.BillingSettings{},
	))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC))
	settingsSvc := settingsservice.New(settingsservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: fake,
		Repo:  settingsrepo.Provide(),
	})

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Clock:        fake,
		Repo:         invoicerepo.Provide(),
		ContractRepo: contractrepo.Provide(),
		ReadingRepo:  readingrepo.Provide(),
		Settings:     settingsSvc,
	})

	return &fixture{
		db:       db,
		node:     node,
		svc:      svc.(*Service),
		settings: settingsSvc,
	}
}

func (f *fixture) updateSettings(t *testing.T, req settingsdomain.UpdateRequest) {
	t.Helper()
	_, err := f.settings.Update(context.Background(), req)
	require.NoError(t, err)
}

func (f *fixture) seedContract(t *testing.T, rentPrice int64) *contractdomain.Contract {
	t.Helper()

	contract := &contractdomain.Contract{
		ID:        f.node.Generate(),
		TenantID:  f.node.Generate(),
		RoomID:    f.node.Generate(),
		RentPrice: rentPrice,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, contractrepo.Provide().Insert(context.Background(), f.db, contract))
	return contract
}

func (f *fixture) seedReading(t *testing.T, roomID snowflake.ID, year, month int, electricity, water int64, readAt time.Time) {
	t.Helper()

	reading := &readingdomain.MeterReading{
		ID:          f.node.Generate(),
		RoomID:      roomID,
		PeriodYear:  year,
		PeriodMonth: month,
		Electricity: electricity,
		Water:       water,
		ReadAt:      readAt,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, readingrepo.Provide().Upsert(context.Background(), f.db, reading))
}

func TestCreateMeteredInvoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.updateSettings(t, settingsdomain.UpdateRequest{
		WaterUnitPrice:    18,
		ElectricUnitPrice: 8,
		FeeCommon:         300,
	})

	contract := f.seedContract(t, 3000)
	f.seedReading(t, contract.RoomID, 2024, 2, 100, 10, time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC))
	f.seedReading(t, contract.RoomID, 2024, 3, 120, 15, time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC))

	resp, err := f.svc.Create(ctx, invoicedomain.CreateRequest{
		ContractID: contract.ID.String(),
		Year:       2024,
		Month:      3,
	})
	require.NoError(t, err)

	require.Equal(t, int64(3000), resp.RentAmount)
	require.Equal(t, int64(10), resp.Water.Prev)
	require.Equal(t, int64(15), resp.Water.Curr)
	require.Equal(t, int64(5), resp.Water.Units)
	require.Equal(t, int64(90), resp.Water.Subtotal)
	require.Equal(t, int64(100), resp.Electric.Prev)
	require.Equal(t, int64(120), resp.Electric.Curr)
	require.Equal(t, int64(20), resp.Electric.Units)
	require.Equal(t, int64(160), resp.Electric.Subtotal)
	require.Equal(t, int64(300), resp.Fees.Common)
	require.Equal(t, int64(3550), resp.TotalAmount)
	require.Equal(t, invoicedomain.InvoiceStatusPending, resp.Status)
}

func TestCreateFlatRateRecordsZeroReadings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.updateSettings(t, settingsdomain.UpdateRequest{
		WaterFlatRate:     true,
		WaterFlatAmount:   250,
		ElectricUnitPrice: 8,
	})

	contract := f.seedContract(t, 3000)
	f.seedReading(t, contract.RoomID, 2024, 2, 100, 10, time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC))
	f.seedReading(t, contract.RoomID, 2024, 3, 120, 15, time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC))

	resp, err := f.svc.Create(ctx, invoicedomain.CreateRequest{
		ContractID: contract.ID.String(),
		Year:       2024,
		Month:      3,
	})
	require.NoError(t, err)

	// Flat-rate water stores zeroed readings so the invoice does not imply
	// metered billing happened.
	require.True(t, resp.Water.FlatRate)
	require.Equal(t, int64(0), resp.Water.Prev)
	require.Equal(t, int64(0), resp.Water.Curr)
	require.Equal(t, int64(0), resp.Water.Units)
	require.Equal(t, int64(250), resp.Water.Subtotal)

	require.False(t, resp.Electric.FlatRate)
	require.Equal(t, int64(160), resp.Electric.Subtotal)
	require.Equal(t, int64(3410), resp.TotalAmount)
}

func TestCreateDecreasingReadingGoesNegative(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.updateSettings(t, settingsdomain.UpdateRequest{
		WaterUnitPrice:    10,
		ElectricUnitPrice: 8,
	})

	contract := f.seedContract(t, 3000)
	f.seedReading(t, contract.RoomID, 2024, 2, 100, 80, time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC))
	f.seedReading(t, contract.RoomID, 2024, 3, 100, 50, time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC))

	resp, err := f.svc.Create(ctx, invoicedomain.CreateRequest{
		ContractID: contract.ID.String(),
		Year:       2024,
		Month:      3,
	})
	require.NoError(t, err)

	// Invoice computation does not clamp; consumption reporting does.
	require.Equal(t, int64(-30), resp.Water.Units)
	require.Equal(t, int64(-300), resp.Water.Subtotal)
	require.Equal(t, int64(2700), resp.TotalAmount)
}

func TestCreateFirstPeriodHasNoMeteredCharge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.updateSettings(t, settingsdomain.UpdateRequest{
		WaterUnitPrice:    18,
		ElectricUnitPrice: 8,
	})

	contract := f.seedContract(t, 3000)
	f.seedReading(t, contract.RoomID, 2024, 3, 500, 200, time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC))

	resp, err := f.svc.Create(ctx, invoicedomain.CreateRequest{
		ContractID: contract.ID.String(),
		Year:       2024,
		Month:      3,
	})
	require.NoError(t, err)

	require.Equal(t, int64(0), resp.Water.Units)
	require.Equal(t, int64(0), resp.Electric.Units)
	require.Equal(t, int64(3000), resp.TotalAmount)
}

func TestCreateRequestOverridesWin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.updateSettings(t, settingsdomain.UpdateRequest{
		WaterUnitPrice:    18,
		ElectricUnitPrice: 8,
	})

	contract := f.seedContract(t, 3000)
	f.seedReading(t, contract.RoomID, 2024, 3, 120, 15, time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC))

	waterPrev := int64(10)
	electricPrev := int64(100)
	resp, err := f.svc.Create(ctx, invoicedomain.CreateRequest{
		ContractID:   contract.ID.String(),
		Year:         2024,
		Month:        3,
		WaterPrev:    &waterPrev,
		ElectricPrev: &electricPrev,
	})
	require.NoError(t, err)

	require.Equal(t, int64(5), resp.Water.Units)
	require.Equal(t, int64(20), resp.Electric.Units)
	require.Equal(t, int64(3000+90+160), resp.TotalAmount)
}

func TestCreateContractNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.updateSettings(t, settingsdomain.UpdateRequest{})

	_, err := f.svc.Create(ctx, invoicedomain.CreateRequest{
		ContractID: f.node.Generate().String(),
		Year:       2024,
		Month:      3,
	})
	require.ErrorIs(t, err, invoicedomain.ErrNotFound)
}

func TestDuplicateInvoicesAllowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.updateSettings(t, settingsdomain.UpdateRequest{})
	contract := f.seedContract(t, 3000)

	for i := 0; i < 2; i++ {
		_, err := f.svc.Create(ctx, invoicedomain.CreateRequest{
			ContractID: contract.ID.String(),
			Year:       2024,
			Month:      3,
		})
		require.NoError(t, err)
	}

	list, err := f.svc.List(ctx, invoicedomain.ListRequest{
		ContractID: contract.ID.String(),
		Year:       2024,
		Month:      3,
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestDeleteLeavesNoInvoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.updateSettings(t, settingsdomain.UpdateRequest{})
	contract := f.seedContract(t, 3000)

	created, err := f.svc.Create(ctx, invoicedomain.CreateRequest{
		ContractID: contract.ID.String(),
		Year:       2024,
		Month:      3,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, created.ID))

	_, err = f.svc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, invoicedomain.ErrNotFound)
}
