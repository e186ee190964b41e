package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praktijkdash/cashflow-backend/internal/api/dto"
	"github.com/praktijkdash/cashflow-backend/internal/application/service"
	"github.com/praktijkdash/cashflow-backend/internal/domain/forecast"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/storage"
)

// respondError maps service and storage errors onto HTTP status codes
// and the shared error envelope.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.NewAPIError(dto.ErrCodeValidation, verr.Error()))
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewAPIError(dto.ErrCodeNotFound, err.Error()))
	case errors.Is(err, storage.ErrAlreadyReconciled), errors.Is(err, storage.ErrAlreadyMatched):
		c.JSON(http.StatusConflict, dto.NewAPIError(dto.ErrCodeConflict, err.Error()))
	case errors.Is(err, forecast.ErrNoBaselineBalance):
		c.JSON(http.StatusBadRequest, dto.NewAPIError(dto.ErrCodeConfiguration, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewAPIError(dto.ErrCodeInternalError, "internal server error"))
	}
}

// respondBadRequest reports a malformed request body or parameter.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewAPIError(dto.ErrCodeBadRequest, message))
}
