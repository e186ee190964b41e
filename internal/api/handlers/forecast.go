package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/api/dto"
	"github.com/praktijkdash/cashflow-backend/internal/application/service"
	"github.com/praktijkdash/cashflow-backend/internal/domain/forecast"
	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

// ForecastHandler exposes the cashflow projection and the expected
// payments list, plus edit and delete of individual line items.
type ForecastHandler struct {
	forecast    *service.ForecastService
	defaultDays int
}

func NewForecastHandler(fc *service.ForecastService, defaultDays int) *ForecastHandler {
	return &ForecastHandler{forecast: fc, defaultDays: defaultDays}
}

func (h *ForecastHandler) Forecast(c *gin.Context) {
	days := h.defaultDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondBadRequest(c, "days must be an integer")
			return
		}
		days = n
	}

	f, err := h.forecast.ComputeForecast(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToForecastResponse(*f))
}

func (h *ForecastHandler) VerwachteBetalingen(c *gin.Context) {
	betalingen, err := h.forecast.VerwachteBetalingen(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVerwachteBetalingResponses(betalingen))
}

func (h *ForecastHandler) EditLineItem(c *gin.Context) {
	var req dto.EditLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	kind := forecast.ItemKind(req.Kind)
	if !forecast.ValidItemKind(kind) {
		respondBadRequest(c, "unknown line item kind")
		return
	}

	patch := service.LineItemPatch{Description: req.Description}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		patch.Amount = &amount
	}
	if req.Date != nil {
		d, err := ledger.ParseDate(*req.Date)
		if err != nil {
			respondBadRequest(c, "invalid date, expected YYYY-MM-DD")
			return
		}
		patch.Date = &d
	}

	if err := h.forecast.EditLineItem(c.Request.Context(), c.Param("id"), kind, patch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *ForecastHandler) DeleteLineItem(c *gin.Context) {
	kind := forecast.ItemKind(c.Query("kind"))
	if kind == "" {
		var req dto.DeleteLineItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "line item kind is required")
			return
		}
		kind = forecast.ItemKind(req.Kind)
	}
	if !forecast.ValidItemKind(kind) {
		respondBadRequest(c, "unknown line item kind")
		return
	}

	if err := h.forecast.DeleteLineItem(c.Request.Context(), c.Param("id"), kind); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
