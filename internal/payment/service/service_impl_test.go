package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dormos/dormos/internal/clock"
	invoicedomain "github.com/dormos/dormos/internal/invoice/domain"
	invoicerepo "github.com/dormos/dormos/internal/invoice/repository"
	paymentdomain "github.com/dormos/dormos/internal/payment/domain"
	paymentrepo "github.com/dormos/dormos/internal/payment/repository"
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
		&invoicedomain.Invoice{},
		&paymentdomain.Payment{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, now time.Time) (*Service, *snowflake.Node) {
	t.Helper()

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clock.NewFakeClock(now),
		Repo:        paymentrepo.Provide(),
		InvoiceRepo: invoicerepo.Provide(),
	})
	return svc.(*Service), node
}

func seedInvoice(t *testing.T, db *gorm.DB, node *snowflake.Node, status invoicedomain.InvoiceStatus) snowflake.ID {
	t.Helper()

	invoice := &invoicedomain.Invoice{
		ID:          node.Generate(),
		ContractID:  node.Generate(),
		RoomID:      node.Generate(),
		PeriodYear:  2024,
		PeriodMonth: 3,
		RentAmount:  3000,
		TotalAmount: 3550,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, invoicerepo.Provide().Insert(context.Background(), db, invoice))
	return invoice.ID
}

func invoiceStatus(t *testing.T, db *gorm.DB, id snowflake.ID) invoicedomain.InvoiceStatus {
	t.Helper()

	invoice, err := invoicerepo.Provide().FindByID(context.Background(), db, id)
	require.NoError(t, err)
	require.NotNil(t, invoice)
	return invoice.Status
}

func TestSubmitForcesInvoicePending(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	// Even a paid invoice reopens on a new submission.
	invoiceID := seedInvoice(t, db, node, invoicedomain.InvoiceStatusPaid)

	resp, err := svc.Submit(ctx, paymentdomain.SubmitRequest{
		InvoiceID:   invoiceID.String(),
		Amount:      3550,
		EvidenceRef: "transfer-20240331.jpg",
	})
	require.NoError(t, err)
	require.Equal(t, paymentdomain.PaymentStatusPending, resp.Status)
	require.Equal(t, invoicedomain.InvoiceStatusPending, invoiceStatus(t, db, invoiceID))
}

func TestSubmitAmountNotCheckedAgainstTotal(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	invoiceID := seedInvoice(t, db, node, invoicedomain.InvoiceStatusPending)

	resp, err := svc.Submit(ctx, paymentdomain.SubmitRequest{
		InvoiceID: invoiceID.String(),
		Amount:    1,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Amount)
}

func TestSubmitUnknownInvoice(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	_, err := svc.Submit(ctx, paymentdomain.SubmitRequest{
		InvoiceID: node.Generate().String(),
		Amount:    100,
	})
	require.ErrorIs(t, err, paymentdomain.ErrNotFound)
}

func TestVerifyPaidMarksInvoicePaid(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	now := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)
	svc, node := newTestService(t, db, now)

	invoiceID := seedInvoice(t, db, node, invoicedomain.InvoiceStatusPending)
	submitted, err := svc.Submit(ctx, paymentdomain.SubmitRequest{
		InvoiceID: invoiceID.String(),
		Amount:    3550,
	})
	require.NoError(t, err)

	resp, err := svc.Verify(ctx, paymentdomain.VerifyRequest{
		PaymentID:  submitted.ID,
		Decision:   "paid",
		ApproverID: "admin-1",
	})
	require.NoError(t, err)

	require.Equal(t, paymentdomain.PaymentStatusPaid, resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	require.Equal(t, "admin-1", *resp.ApprovedBy)
	require.NotNil(t, resp.VerifiedAt)
	require.Equal(t, now, resp.VerifiedAt.UTC())
	require.Equal(t, invoicedomain.InvoiceStatusPaid, invoiceStatus(t, db, invoiceID))
}

func TestVerifyRejectMarksInvoiceOverdue(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	invoiceID := seedInvoice(t, db, node, invoicedomain.InvoiceStatusPending)
	submitted, err := svc.Submit(ctx, paymentdomain.SubmitRequest{
		InvoiceID: invoiceID.String(),
		Amount:    3550,
	})
	require.NoError(t, err)

	resp, err := svc.Verify(ctx, paymentdomain.VerifyRequest{
		PaymentID:  submitted.ID,
		Decision:   "reject",
		ApproverID: "admin-1",
	})
	require.NoError(t, err)

	require.Equal(t, paymentdomain.PaymentStatusReject, resp.Status)
	require.Equal(t, invoicedomain.InvoiceStatusOverdue, invoiceStatus(t, db, invoiceID))
}

func TestVerifyTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	invoiceID := seedInvoice(t, db, node, invoicedomain.InvoiceStatusPending)
	submitted, err := svc.Submit(ctx, paymentdomain.SubmitRequest{
		InvoiceID: invoiceID.String(),
		Amount:    3550,
	})
	require.NoError(t, err)

	_, err = svc.Verify(ctx, paymentdomain.VerifyRequest{
		PaymentID:  submitted.ID,
		Decision:   "paid",
		ApproverID: "admin-1",
	})
	require.NoError(t, err)

	_, err = svc.Verify(ctx, paymentdomain.VerifyRequest{
		PaymentID:  submitted.ID,
		Decision:   "reject",
		ApproverID: "admin-2",
	})
	require.ErrorIs(t, err, paymentdomain.ErrAlreadyVerified)
	require.Equal(t, invoicedomain.InvoiceStatusPaid, invoiceStatus(t, db, invoiceID))
}

func TestVerifyInvalidDecision(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	invoiceID := seedInvoice(t, db, node, invoicedomain.InvoiceStatusPending)
	submitted, err := svc.Submit(ctx, paymentdomain.SubmitRequest{
		InvoiceID: invoiceID.String(),
		Amount:    3550,
	})
	require.NoError(t, err)

	_, err = svc.Verify(ctx, paymentdomain.VerifyRequest{
		PaymentID: submitted.ID,
		Decision:  "pending",
	})
	require.ErrorIs(t, err, paymentdomain.ErrInvalidDecision)
}

func TestListByInvoiceSurvivesInvoiceDelete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newTestService(t, db, time.Now().UTC())

	invoiceID := seedInvoice(t, db, node, invoicedomain.InvoiceStatusPending)
	_, err := svc.Submit(ctx, paymentdomain.SubmitRequest{
		InvoiceID: invoiceID.String(),
		Amount:    3550,
	})
	require.NoError(t, err)

	require.NoError(t, invoicerepo.Provide().Delete(ctx, db, invoiceID))

	payments, err := svc.ListByInvoice(ctx, invoiceID.String())
	require.NoError(t, err)
	require.Len(t, payments, 1)
}
