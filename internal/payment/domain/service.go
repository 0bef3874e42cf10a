package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Response, error)
	Verify(ctx context.Context, req VerifyRequest) (*Response, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]Response, error)
}

type SubmitRequest struct {
	InvoiceID   string         `json:"invoice_id"`
	Amount      int64          `json:"amount"`
	EvidenceRef string         `json:"evidence_ref"`
	PaidAt      time.Time      `json:"paid_at"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type VerifyRequest struct {
	PaymentID  string `json:"payment_id"`
	Decision   string `json:"decision"`
	ApproverID string `json:"approver_id"`
}

type Response struct {
	ID          string         `json:"id"`
	InvoiceID   string         `json:"invoice_id"`
	Amount      int64          `json:"amount"`
	EvidenceRef string         `json:"evidence_ref"`
	PaidAt      time.Time      `json:"paid_at"`
	Status      PaymentStatus  `json:"status"`
	ApprovedBy  *string        `json:"approved_by,omitempty"`
	VerifiedAt  *time.Time     `json:"verified_at,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

var (
	ErrInvalidInvoice  = errors.New("invalid_invoice")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidDecision = errors.New("invalid_decision")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
	ErrAlreadyVerified = errors.New("already_verified")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}

// ParseDecision maps a verification decision to the payment status it
// records. Only paid and reject are decisions.
func ParseDecision(value string) (PaymentStatus, error) {
	switch PaymentStatus(value) {
	case PaymentStatusPaid, PaymentStatusReject:
		return PaymentStatus(value), nil
	default:
		return "", ErrInvalidDecision
	}
}
