package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	contractdomain "github.com/dormos/dormos/internal/contract/domain"
)

type createContractRequest struct {
	TenantID       string    `json:"tenant_id"`
	RoomID         string    `json:"room_id"`
	RentPrice      int64     `json:"rent_price"`
	Deposit        int64     `json:"deposit"`
	StartDate      time.Time `json:"start_date"`
	DurationMonths *int      `json:"duration_months,omitempty"`
}

type renewContractRequest struct {
	NewStartDate   time.Time `json:"new_start_date"`
	DurationMonths int       `json:"duration_months"`
}

type terminateContractRequest struct {
	TerminationDate time.Time `json:"termination_date"`
}

func (s *Server) CreateContract(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.contractSvc.Create(c.Request.Context(), contractdomain.CreateRequest{
		TenantID:       strings.TrimSpace(req.TenantID),
		RoomID:         strings.TrimSpace(req.RoomID),
		RentPrice:      req.RentPrice,
		Deposit:        req.Deposit,
		StartDate:      req.StartDate,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListContracts(c *gin.Context) {
	resp, err := s.contractSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetContract(c *gin.Context) {
	resp, err := s.contractSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ExpiringContracts(c *gin.Context) {
	threshold, err := parseOptionalInt(c.Query("threshold_days"))
	if err != nil {
		AbortWithError(c, contractdomain.ErrInvalidThreshold)
		return
	}

	resp, err := s.contractSvc.Expiring(c.Request.Context(), threshold)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RenewContract(c *gin.Context) {
	var req renewContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.contractSvc.Renew(c.Request.Context(), contractdomain.RenewRequest{
		ID:             c.Param("id"),
		NewStartDate:   req.NewStartDate,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) TerminateContract(c *gin.Context) {
	var req terminateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.contractSvc.Terminate(c.Request.Context(), contractdomain.TerminateRequest{
		ID:              c.Param("id"),
		TerminationDate: req.TerminationDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
