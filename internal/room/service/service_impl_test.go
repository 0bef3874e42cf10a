package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	roomdomain "github.com/dormos/dormos/internal/room/domain"
	roomrepo "github.com/dormos/dormos/internal/room/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&roomdomain.Room{}))

	node, err := snowflake.NewNode(5)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  roomrepo.Provide(),
	})
	return svc.(*Service)
}

func TestCreateAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	resp, err := svc.Create(ctx, roomdomain.CreateRequest{
		Number:       "B-201",
		MonthlyPrice: 3500,
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Floor)
	require.Equal(t, "standard", resp.RoomType)
	require.Equal(t, roomdomain.RoomStatusVacant, resp.Status)
}

func TestCreateDuplicateNumberConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, roomdomain.CreateRequest{Number: "B-201", MonthlyPrice: 3500})
	require.NoError(t, err)

	_, err = svc.Create(ctx, roomdomain.CreateRequest{Number: "B-201", MonthlyPrice: 4000})
	require.ErrorIs(t, err, roomdomain.ErrDuplicate)
}

func TestCreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, roomdomain.CreateRequest{Number: "", MonthlyPrice: 3500})
	require.ErrorIs(t, err, roomdomain.ErrInvalidNumber)

	_, err = svc.Create(ctx, roomdomain.CreateRequest{Number: "B-202", MonthlyPrice: -1})
	require.ErrorIs(t, err, roomdomain.ErrInvalidPrice)
}

func TestUpdateUnknownRoom(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	floor := 2
	_, err := svc.Update(ctx, roomdomain.UpdateRequest{
		ID:    snowflake.ID(12345).String(),
		Floor: &floor,
	})
	require.ErrorIs(t, err, roomdomain.ErrNotFound)
}
