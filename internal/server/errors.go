package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	contractdomain "github.com/dormos/dormos/internal/contract/domain"
	invoicedomain "github.com/dormos/dormos/internal/invoice/domain"
	paymentdomain "github.com/dormos/dormos/internal/payment/domain"
	readingdomain "github.com/dormos/dormos/internal/reading/domain"
	roomdomain "github.com/dormos/dormos/internal/room/domain"
	settingsdomain "github.com/dormos/dormos/internal/settings/domain"
	tenantdomain "github.com/dormos/dormos/internal/tenant/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not_found")
	ErrInternal           = errors.New("internal_error")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

// ErrorHandlingMiddleware turns the last gin error into a JSON envelope.
// Handlers report failures with AbortWithError and never write error bodies
// themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, roomdomain.ErrInvalidNumber),
		errors.Is(err, roomdomain.ErrInvalidPrice),
		errors.Is(err, roomdomain.ErrInvalidID),
		errors.Is(err, tenantdomain.ErrInvalidName),
		errors.Is(err, tenantdomain.ErrInvalidStatus),
		errors.Is(err, tenantdomain.ErrInvalidRoom),
		errors.Is(err, tenantdomain.ErrInvalidID),
		errors.Is(err, readingdomain.ErrInvalidRoom),
		errors.Is(err, readingdomain.ErrInvalidPeriod),
		errors.Is(err, readingdomain.ErrNegativeValue),
		errors.Is(err, readingdomain.ErrInvalidLimit),
		errors.Is(err, readingdomain.ErrInvalidID),
		errors.Is(err, contractdomain.ErrInvalidTenant),
		errors.Is(err, contractdomain.ErrInvalidRoom),
		errors.Is(err, contractdomain.ErrInvalidRent),
		errors.Is(err, contractdomain.ErrInvalidStartDate),
		errors.Is(err, contractdomain.ErrInvalidDuration),
		errors.Is(err, contractdomain.ErrInvalidThreshold),
		errors.Is(err, contractdomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidContract),
		errors.Is(err, invoicedomain.ErrInvalidPeriod),
		errors.Is(err, invoicedomain.ErrInvalidStatus),
		errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, paymentdomain.ErrInvalidInvoice),
		errors.Is(err, paymentdomain.ErrInvalidAmount),
		errors.Is(err, paymentdomain.ErrInvalidDecision),
		errors.Is(err, paymentdomain.ErrInvalidID),
		errors.Is(err, settingsdomain.ErrNegativeAmount):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, roomdomain.ErrDuplicate),
		errors.Is(err, contractdomain.ErrRoomOccupied),
		errors.Is(err, contractdomain.ErrNotActive),
		errors.Is(err, paymentdomain.ErrAlreadyVerified):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, roomdomain.ErrNotFound),
		errors.Is(err, tenantdomain.ErrNotFound),
		errors.Is(err, readingdomain.ErrNotFound),
		errors.Is(err, contractdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, settingsdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
