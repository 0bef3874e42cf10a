package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/dormos/dormos/internal/invoice/domain"
)

type createInvoiceRequest struct {
	ContractID string `json:"contract_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	WaterPrev    *int64 `json:"water_prev,omitempty"`
	WaterCurr    *int64 `json:"water_curr,omitempty"`
	ElectricPrev *int64 `json:"electric_prev,omitempty"`
	ElectricCurr *int64 `json:"electric_curr,omitempty"`

	Fees *invoicedomain.FeesRequest `json:"fees,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateRequest{
		ContractID:   strings.TrimSpace(req.ContractID),
		Year:         req.Year,
		Month:        req.Month,
		WaterPrev:    req.WaterPrev,
		WaterCurr:    req.WaterCurr,
		ElectricPrev: req.ElectricPrev,
		ElectricCurr: req.ElectricCurr,
		Fees:         req.Fees,
		Metadata:     req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	year, err := parseOptionalInt(c.Query("year"))
	if err != nil {
		AbortWithError(c, invoicedomain.ErrInvalidPeriod)
		return
	}
	month, err := parseOptionalInt(c.Query("month"))
	if err != nil {
		AbortWithError(c, invoicedomain.ErrInvalidPeriod)
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListRequest{
		ContractID: strings.TrimSpace(c.Query("contract_id")),
		Year:       year,
		Month:      month,
		Status:     strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListInvoicePayments(c *gin.Context) {
	resp, err := s.paymentSvc.ListByInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
