package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/dormos/dormos/internal/payment/domain"
)

type submitPaymentRequest struct {
	InvoiceID   string         `json:"invoice_id"`
	Amount      int64          `json:"amount"`
	EvidenceRef string         `json:"evidence_ref"`
	PaidAt      *time.Time     `json:"paid_at,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type verifyPaymentRequest struct {
	Decision   string `json:"decision"`
	ApproverID string `json:"approver_id"`
}

func (s *Server) SubmitPayment(c *gin.Context) {
	var req submitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	submit := paymentdomain.SubmitRequest{
		InvoiceID:   strings.TrimSpace(req.InvoiceID),
		Amount:      req.Amount,
		EvidenceRef: strings.TrimSpace(req.EvidenceRef),
		Metadata:    req.Metadata,
	}
	if req.PaidAt != nil {
		submit.PaidAt = *req.PaidAt
	}

	resp, err := s.paymentSvc.Submit(c.Request.Context(), submit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.paymentSvc.Verify(c.Request.Context(), paymentdomain.VerifyRequest{
		PaymentID:  c.Param("id"),
		Decision:   strings.TrimSpace(req.Decision),
		ApproverID: strings.TrimSpace(req.ApproverID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
