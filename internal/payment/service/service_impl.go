package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/dormos/dormos/internal/clock"
	invoicedomain "github.com/dormos/dormos/internal/invoice/domain"
	paymentdomain "github.com/dormos/dormos/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        paymentdomain.Repository
	InvoiceRepo invoicedomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	repo        paymentdomain.Repository
	invoiceRepo invoicedomain.Repository
	genID       *snowflake.Node
	clock       clock.Clock
}

func New(p Params) paymentdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("payment.service"),
		repo:        p.Repo,
		invoiceRepo: p.InvoiceRepo,
		genID:       p.GenID,
		clock:       p.Clock,
	}
}

// Submit records transfer evidence against an invoice and forces the invoice
// back to pending in the same transaction. A submission always resets status,
// even on an invoice already marked paid. The amount is stored as given; it
// is not checked against the invoice total.
func (s *Service) Submit(ctx context.Context, req paymentdomain.SubmitRequest) (*paymentdomain.Response, error) {
	invoiceID, err := invoicedomain.ParseID(strings.TrimSpace(req.InvoiceID))
	if err != nil {
		return nil, paymentdomain.ErrInvalidInvoice
	}
	if req.Amount <= 0 {
		return nil, paymentdomain.ErrInvalidAmount
	}

	now := s.clock.Now()
	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}

	metadata := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	payment := &paymentdomain.Payment{
		ID:          s.genID.Generate(),
		InvoiceID:   invoiceID,
		Amount:      req.Amount,
		EvidenceRef: strings.TrimSpace(req.EvidenceRef),
		PaidAt:      paidAt.UTC(),
		Status:      paymentdomain.PaymentStatusPending,
		Metadata:    metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.invoiceRepo.FindByID(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return paymentdomain.ErrNotFound
		}

		if err := s.repo.Insert(ctx, tx, payment); err != nil {
			return err
		}
		return s.invoiceRepo.UpdateStatus(ctx, tx, invoiceID, invoicedomain.InvoiceStatusPending)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment submitted",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", invoiceID.String()),
		zap.Int64("amount", payment.Amount),
	)

	return toResponse(payment), nil
}

// Verify records the approver's decision and moves the linked invoice in the
// same transaction: paid marks it paid, reject marks it overdue. A payment
// can be verified once.
func (s *Service) Verify(ctx context.Context, req paymentdomain.VerifyRequest) (*paymentdomain.Response, error) {
	paymentID, err := paymentdomain.ParseID(strings.TrimSpace(req.PaymentID))
	if err != nil {
		return nil, paymentdomain.ErrInvalidID
	}
	decision, err := paymentdomain.ParseDecision(strings.TrimSpace(req.Decision))
	if err != nil {
		return nil, err
	}

	var verified *paymentdomain.Payment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.repo.FindByID(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return paymentdomain.ErrNotFound
		}
		if payment.Status != paymentdomain.PaymentStatusPending {
			return paymentdomain.ErrAlreadyVerified
		}

		now := s.clock.Now()
		approver := strings.TrimSpace(req.ApproverID)
		payment.Status = decision
		payment.ApprovedBy = &approver
		payment.VerifiedAt = &now
		payment.UpdatedAt = now

		if err := s.repo.Verify(ctx, tx, payment); err != nil {
			return err
		}

		invoiceStatus := invoicedomain.InvoiceStatusPaid
		if decision == paymentdomain.PaymentStatusReject {
			invoiceStatus = invoicedomain.InvoiceStatusOverdue
		}
		if err := s.invoiceRepo.UpdateStatus(ctx, tx, payment.InvoiceID, invoiceStatus); err != nil {
			return err
		}

		verified = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment verified",
		zap.String("payment_id", verified.ID.String()),
		zap.String("invoice_id", verified.InvoiceID.String()),
		zap.String("decision", string(decision)),
	)

	return toResponse(verified), nil
}

func (s *Service) ListByInvoice(ctx context.Context, invoiceID string) ([]paymentdomain.Response, error) {
	parsed, err := invoicedomain.ParseID(strings.TrimSpace(invoiceID))
	if err != nil {
		return nil, paymentdomain.ErrInvalidInvoice
	}

	payments, err := s.repo.ListByInvoice(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}

	resp := make([]paymentdomain.Response, 0, len(payments))
	for i := range payments {
		resp = append(resp, *toResponse(&payments[i]))
	}
	return resp, nil
}

func toResponse(m *paymentdomain.Payment) *paymentdomain.Response {
	return &paymentdomain.Response{
		ID:          m.ID.String(),
		InvoiceID:   m.InvoiceID.String(),
		Amount:      m.Amount,
		EvidenceRef: m.EvidenceRef,
		PaidAt:      m.PaidAt,
		Status:      m.Status,
		ApprovedBy:  m.ApprovedBy,
		VerifiedAt:  m.VerifiedAt,
		Metadata:    m.Metadata,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
