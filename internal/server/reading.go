package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	readingdomain "github.com/dormos/dormos/internal/reading/domain"
)

type upsertReadingRequest struct {
	RoomID      string     `json:"room_id"`
	Year        int        `json:"year"`
	Month       int        `json:"month"`
	Electricity int64      `json:"electricity"`
	Water       int64      `json:"water"`
	RecordedBy  string     `json:"recorded_by"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

func (s *Server) UpsertReading(c *gin.Context) {
	var req upsertReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	upsert := readingdomain.UpsertRequest{
		RoomID:      strings.TrimSpace(req.RoomID),
		Year:        req.Year,
		Month:       req.Month,
		Electricity: req.Electricity,
		Water:       req.Water,
		RecordedBy:  strings.TrimSpace(req.RecordedBy),
	}
	if req.ReadAt != nil {
		upsert.ReadAt = *req.ReadAt
	}

	resp, err := s.readingSvc.Upsert(c.Request.Context(), upsert)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListReadings(c *gin.Context) {
	year, month, err := periodQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.readingSvc.ListForPeriod(c.Request.Context(), readingdomain.ListRequest{
		Year:   year,
		Month:  month,
		RoomID: strings.TrimSpace(c.Query("room_id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteReading(c *gin.Context) {
	if err := s.readingSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ReadingSummary(c *gin.Context) {
	year, month, err := periodQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.readingSvc.Summary(c.Request.Context(), year, month)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReadingConsumption(c *gin.Context) {
	year, month, err := periodQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.readingSvc.Consumption(c.Request.Context(), strings.TrimSpace(c.Query("room_id")), year, month)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReadingHistory(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		AbortWithError(c, readingdomain.ErrInvalidLimit)
		return
	}

	resp, err := s.readingSvc.History(c.Request.Context(), strings.TrimSpace(c.Query("room_id")), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func periodQuery(c *gin.Context) (int, int, error) {
	year, err := parseOptionalInt(c.Query("year"))
	if err != nil {
		return 0, 0, readingdomain.ErrInvalidPeriod
	}
	month, err := parseOptionalInt(c.Query("month"))
	if err != nil {
		return 0, 0, readingdomain.ErrInvalidPeriod
	}
	return year, month, nil
}
