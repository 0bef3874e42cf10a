package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dormos/dormos/internal/clock"
	readingdomain "github.com/dormos/dormos/internal/reading/domain"
	readingrepo "github.com/dormos/dormos/internal/reading/repository"
	roomdomain "github.com/dormos/dormos/internal/room/domain"
	roomrepo "github.com/dormos/dormos/internal/room/repository"
	tenantdomain "github.com/dormos/dormos/internal/tenant/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&roomdomain.Room{},
		&tenantdomain.Tenant{},
		&readingdomain.MeterReading{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, now time.Time) (*Service, *snowflake.Node) {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.NewFakeClock(now),
		Repo:     readingrepo.Provide(),
		RoomRepo: roomrepo.Provide(),
	})
	return svc.(*Service), node
}

func seedRoom(t *testing.T, db *gorm.DB, node *snowflake.Node, number string) snowflake.ID {
	t.Helper()

	room := &roomdomain.Room{
		ID:           node.Generate(),
		Number:       number,
		Floor:        1,
		RoomType:     "standard",
		MonthlyPrice: 3000,
		Status:       roomdomain.RoomStatusVacant,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, roomrepo.Provide().Insert(context.Background(), db, room))
	return room.ID
}

func seedTenant(t *testing.T, db *gorm.DB, node *snowflake.Node, roomID snowflake.ID, status tenantdomain.TenantStatus) {
	t.Helper()

	tenant := &tenantdomain.Tenant{
		ID:        node.Generate(),
		RoomID:    &roomID,
		Name:      "tenant",
		Status:    status,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(tenant).Error)
}

func TestUpsertOverwritesSamePeriod(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	now := time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)
	svc, node := newTestService(t, db, now)

	roomID := seedRoom(t, db, node, "A-101")

	first, err := svc.Upsert(ctx, readingdomain.UpsertRequest{
		RoomID:      roomID.String(),
		Year:        2024,
		Month:       3,
		Electricity: 100,
		Water:       50,
		RecordedBy:  "admin",
	})
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, readingdomain.UpsertRequest{
		RoomID:      roomID.String(),
		Year:        2024,
		Month:       3,
		Electricity: 120,
		Water:       55,
		RecordedBy:  "admin",
	})
	require.NoError(t, err)

	// The stored row keeps the first id, only the values change.
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, int64(120), second.Electricity)
	require.Equal(t, int64(55), second.Water)

	var count int64
	require.NoError(t, db.Raw(
		`SELECT COUNT(*) FROM meter_readings WHERE room_id = ?`, roomID,
	).Scan(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUpsertRejectsNegativeValues(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	roomID := seedRoom(t, db, node, "A-101")

	_, err := svc.Upsert(ctx, readingdomain.UpsertRequest{
		RoomID:      roomID.String(),
		Year:        2024,
		Month:       3,
		Electricity: -1,
		Water:       0,
	})
	require.ErrorIs(t, err, readingdomain.ErrNegativeValue)
}

func TestUpsertUnknownRoom(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	_, err := svc.Upsert(ctx, readingdomain.UpsertRequest{
		RoomID: node.Generate().String(),
		Year:   2024,
		Month:  3,
	})
	require.ErrorIs(t, err, readingdomain.ErrInvalidRoom)
}

func TestConsumptionFallsBackPastGaps(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	roomID := seedRoom(t, db, node, "A-101")

	// January reading, nothing in February, then March.
	_, err := svc.Upsert(ctx, readingdomain.UpsertRequest{
		RoomID:      roomID.String(),
		Year:        2024,
		Month:       1,
		Electricity: 50,
		Water:       20,
		ReadAt:      time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, readingdomain.UpsertRequest{
		RoomID:      roomID.String(),
		Year:        2024,
		Month:       3,
		Electricity: 70,
		Water:       35,
		ReadAt:      time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	resp, err := svc.Consumption(ctx, roomID.String(), 2024, 3)
	require.NoError(t, err)
	require.Equal(t, int64(20), resp.ElectricityUnits)
	require.Equal(t, int64(15), resp.WaterUnits)
}

func TestConsumptionClampsDecreasingReading(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	roomID := seedRoom(t, db, node, "A-101")

	_, err := svc.Upsert(ctx, readingdomain.UpsertRequest{
		RoomID:      roomID.String(),
		Year:        2024,
		Month:       2,
		Electricity: 900,
		Water:       100,
		ReadAt:      time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	// Meter was replaced and restarted below the previous value.
	_, err = svc.Upsert(ctx, readingdomain.UpsertRequest{
		RoomID:      roomID.String(),
		Year:        2024,
		Month:       3,
		Electricity: 10,
		Water:       120,
		ReadAt:      time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	resp, err := svc.Consumption(ctx, roomID.String(), 2024, 3)
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.ElectricityUnits)
	require.Equal(t, int64(20), resp.WaterUnits)
}

func TestConsumptionNoPriorReadingIsZero(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	roomID := seedRoom(t, db, node, "A-101")

	_, err := svc.Upsert(ctx, readingdomain.UpsertRequest{
		RoomID:      roomID.String(),
		Year:        2024,
		Month:       3,
		Electricity: 500,
		Water:       200,
	})
	require.NoError(t, err)

	resp, err := svc.Consumption(ctx, roomID.String(), 2024, 3)
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.ElectricityUnits)
	require.Equal(t, int64(0), resp.WaterUnits)
}

func TestConsumptionMissingPeriod(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	roomID := seedRoom(t, db, node, "A-101")

	_, err := svc.Consumption(ctx, roomID.String(), 2024, 3)
	require.ErrorIs(t, err, readingdomain.ErrNotFound)
}

func TestSummaryCountsAndTotals(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	roomA := seedRoom(t, db, node, "A-101")
	roomB := seedRoom(t, db, node, "A-102")
	roomC := seedRoom(t, db, node, "A-103")

	seedTenant(t, db, node, roomA, tenantdomain.TenantStatusActive)
	seedTenant(t, db, node, roomB, tenantdomain.TenantStatusActive)
	seedTenant(t, db, node, roomC, tenantdomain.TenantStatusInactive)

	for _, r := range []struct {
		room        snowflake.ID
		month       int
		electricity int64
		water       int64
		readAt      time.Time
	}{
		{roomA, 2, 100, 40, time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC)},
		{roomA, 3, 130, 46, time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC)},
		{roomB, 3, 500, 200, time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC)},
	} {
		_, err := svc.Upsert(ctx, readingdomain.UpsertRequest{
			RoomID:      r.room.String(),
			Year:        2024,
			Month:       r.month,
			Electricity: r.electricity,
			Water:       r.water,
			ReadAt:      r.readAt,
		})
		require.NoError(t, err)
	}

	resp, err := svc.Summary(ctx, 2024, 3)
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.TotalRooms)
	require.Equal(t, int64(2), resp.OccupiedRooms)
	require.Equal(t, int64(2), resp.RecordedRooms)
	require.Equal(t, int64(0), resp.PendingRooms)
	// Room B has no prior reading so it contributes nothing.
	require.Equal(t, int64(30), resp.TotalElectricity)
	require.Equal(t, int64(6), resp.TotalWater)
}

func TestSummaryPendingNeverNegative(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	// Vacant but metered room: recorded exceeds occupied.
	roomID := seedRoom(t, db, node, "A-101")
	_, err := svc.Upsert(ctx, readingdomain.UpsertRequest{
		RoomID: roomID.String(),
		Year:   2024,
		Month:  3,
	})
	require.NoError(t, err)

	resp, err := svc.Summary(ctx, 2024, 3)
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.OccupiedRooms)
	require.Equal(t, int64(1), resp.RecordedRooms)
	require.Equal(t, int64(0), resp.PendingRooms)
}

func TestHistoryNewestFirstBounded(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	roomID := seedRoom(t, db, node, "A-101")

	for month := 1; month <= 6; month++ {
		_, err := svc.Upsert(ctx, readingdomain.UpsertRequest{
			RoomID:      roomID.String(),
			Year:        2024,
			Month:       month,
			Electricity: int64(month * 10),
			Water:       int64(month),
			ReadAt:      time.Date(2024, time.Month(month), 28, 9, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	resp, err := svc.History(ctx, roomID.String(), 3)
	require.NoError(t, err)
	require.Len(t, resp, 3)
	require.Equal(t, 6, resp[0].Month)
	require.Equal(t, 5, resp[1].Month)
	require.Equal(t, 4, resp[2].Month)

	_, err = svc.History(ctx, roomID.String(), -1)
	require.ErrorIs(t, err, readingdomain.ErrInvalidLimit)
}

func TestListForPeriodPairsEveryRoom(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	roomA := seedRoom(t, db, node, "A-101")
	roomB := seedRoom(t, db, node, "A-102")

	_, err := svc.Upsert(ctx, readingdomain.UpsertRequest{
		RoomID: roomA.String(),
		Year:   2024,
		Month:  3,
		Water:  10,
	})
	require.NoError(t, err)

	entries, err := svc.ListForPeriod(ctx, readingdomain.ListRequest{Year: 2024, Month: 3})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byRoom := map[string]readingdomain.PeriodEntry{}
	for _, e := range entries {
		byRoom[e.RoomID] = e
	}
	require.NotNil(t, byRoom[roomA.String()].Reading)
	require.Nil(t, byRoom[roomB.String()].Reading)
}
