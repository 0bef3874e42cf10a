package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	tenantdomain "github.com/dormos/dormos/internal/tenant/domain"
)

type createTenantRequest struct {
	RoomID    string `json:"room_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	IDCardRef string `json:"id_card_ref"`
}

type updateTenantRequest struct {
	RoomID    *string `json:"room_id,omitempty"`
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IDCardRef *string `json:"id_card_ref,omitempty"`
	Status    *string `json:"status,omitempty"`
}

func (s *Server) CreateTenant(c *gin.Context) {
	var req createTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.tenantSvc.Create(c.Request.Context(), tenantdomain.CreateRequest{
		RoomID:    strings.TrimSpace(req.RoomID),
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		IDCardRef: strings.TrimSpace(req.IDCardRef),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTenants(c *gin.Context) {
	resp, err := s.tenantSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTenant(c *gin.Context) {
	resp, err := s.tenantSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTenant(c *gin.Context) {
	var req updateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.tenantSvc.Update(c.Request.Context(), tenantdomain.UpdateRequest{
		ID:        c.Param("id"),
		RoomID:    req.RoomID,
		Name:      req.Name,
		Phone:     req.Phone,
		IDCardRef: req.IDCardRef,
		Status:    req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTenant(c *gin.Context) {
	if err := s.tenantSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
