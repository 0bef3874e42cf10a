package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	paymentdomain "github.com/dormos/dormos/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() paymentdomain.Repository {
	return &repo{}
}

const paymentColumns = `id, invoice_id, amount, evidence_ref, paid_at, status,
       approved_by, verified_at, metadata, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *paymentdomain.Payment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO payments (
		     id, invoice_id, amount, evidence_ref, paid_at, status,
		     approved_by, verified_at, metadata, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.InvoiceID,
		payment.Amount,
		payment.EvidenceRef,
		payment.PaidAt,
		payment.Status,
		payment.ApprovedBy,
		payment.VerifiedAt,
		payment.Metadata,
		payment.CreatedAt,
		payment.UpdatedAt,
	).Error
}

func (r *repo) Verify(ctx context.Context, db *gorm.DB, payment *paymentdomain.Payment) error {
	return db.WithContext(ctx).Exec(
		`UPDATE payments
		 SET status = ?, approved_by = ?, verified_at = ?, updated_at = ?
		 WHERE id = ?`,
		payment.Status,
		payment.ApprovedBy,
		payment.VerifiedAt,
		payment.UpdatedAt,
		payment.ID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*paymentdomain.Payment, error) {
	var payment paymentdomain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`,
		id,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}

func (r *repo) ListByInvoice(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]paymentdomain.Payment, error) {
	var payments []paymentdomain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT `+paymentColumns+` FROM payments WHERE invoice_id = ? ORDER BY created_at DESC, id DESC`,
		invoiceID,
	).Scan(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
