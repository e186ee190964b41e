package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/praktijkdash/cashflow-backend/internal/api/dto"
	"github.com/praktijkdash/cashflow-backend/internal/application/service"
	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

// CashflowHandler exposes realized cashflow aggregations.
type CashflowHandler struct {
	ledger *service.LedgerService
	now    func() time.Time
}

func NewCashflowHandler(ledger *service.LedgerService) *CashflowHandler {
	return &CashflowHandler{ledger: ledger, now: time.Now}
}

func NewCashflowHandlerWithClock(ledger *service.LedgerService, now func() time.Time) *CashflowHandler {
	return &CashflowHandler{ledger: ledger, now: now}
}

func (h *CashflowHandler) Daily(c *gin.Context) {
	date, err := ledger.ParseDate(c.Param("date"))
	if err != nil {
		respondBadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}
	daily, err := h.ledger.DailyCashflow(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyCashflowResponse(*daily))
}

func (h *CashflowHandler) Summary(c *gin.Context) {
	summary, err := h.ledger.CashflowSummary(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCashflowSummaryResponse(*summary))
}
