package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	roomdomain "github.com/dormos/dormos/internal/room/domain"
)

type createRoomRequest struct {
	Number       string `json:"number"`
	Floor        int    `json:"floor"`
	RoomType     string `json:"room_type"`
	MonthlyPrice int64  `json:"monthly_price"`
}

type updateRoomRequest struct {
	Floor        *int    `json:"floor,omitempty"`
	RoomType     *string `json:"room_type,omitempty"`
	MonthlyPrice *int64  `json:"monthly_price,omitempty"`
}

func (s *Server) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.roomSvc.Create(c.Request.Context(), roomdomain.CreateRequest{
		Number:       strings.TrimSpace(req.Number),
		Floor:        req.Floor,
		RoomType:     strings.TrimSpace(req.RoomType),
		MonthlyPrice: req.MonthlyPrice,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRooms(c *gin.Context) {
	resp, err := s.roomSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRoom(c *gin.Context) {
	resp, err := s.roomSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateRoom(c *gin.Context) {
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.roomSvc.Update(c.Request.Context(), roomdomain.UpdateRequest{
		ID:           c.Param("id"),
		Floor:        req.Floor,
		RoomType:     req.RoomType,
		MonthlyPrice: req.MonthlyPrice,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteRoom(c *gin.Context) {
	if err := s.roomSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
