// Package domain contains persistence models for payments.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PaymentStatus tracks verification of a submitted payment. A payment is
// terminal once verified either way.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusReject  PaymentStatus = "reject"
)

// Payment is one transfer-evidence submission against an invoice. The
// invoice reference is deliberately unconstrained: deleting the invoice
// leaves the payment as an audit record.
type Payment struct {
	ID          snowflake.ID      `json:"id" gorm:"primaryKey"`
	InvoiceID   snowflake.ID      `json:"invoice_id" gorm:"not null;index:ix_payments_invoice"`
	Amount      int64             `json:"amount" gorm:"not null"`
	EvidenceRef string            `json:"evidence_ref" gorm:"type:text;not null;default:''"`
	PaidAt      time.Time         `json:"paid_at" gorm:"not null"`
	Status      PaymentStatus     `json:"status" gorm:"type:text;not null;default:'pending'"`
	ApprovedBy  *string           `json:"approved_by"`
	VerifiedAt  *time.Time        `json:"verified_at"`
	Metadata    datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
	CreatedAt   time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }
