package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/api/dto"
	"github.com/praktijkdash/cashflow-backend/internal/application/service"
	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

// CorrectieHandler manages corrections and their linking workflow.
type CorrectieHandler struct {
	ledger *service.LedgerService
}

func NewCorrectieHandler(ledger *service.LedgerService) *CorrectieHandler {
	return &CorrectieHandler{ledger: ledger}
}

func (h *CorrectieHandler) Create(c *gin.Context) {
	var req dto.CreateCorrectieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	date, err := ledger.ParseDate(req.Date)
	if err != nil {
		respondBadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}
	cr := &ledger.Correctie{
		CorrectionType: ledger.CorrectionType(req.Type),
		Amount:         decimal.NewFromFloat(req.Amount),
		Date:           date,
		Description:    req.Description,
		PatientName:    req.PatientName,
		InvoiceNumber:  req.InvoiceNumber,
	}
	if err := h.ledger.CreateCorrectie(c.Request.Context(), cr); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCorrectieResponse(*cr))
}

func (h *CorrectieHandler) List(c *gin.Context) {
	unmatchedOnly := c.Query("unmatched") == "true"
	crs, err := h.ledger.ListCorrecties(c.Request.Context(), unmatchedOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCorrectieResponses(crs))
}

func (h *CorrectieHandler) ListUnmatched(c *gin.Context) {
	crs, err := h.ledger.ListCorrecties(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCorrectieResponses(crs))
}

func (h *CorrectieHandler) Delete(c *gin.Context) {
	if err := h.ledger.DeleteCorrectie(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Suggestions lists income transactions a correction could apply to,
// matched on invoice number or patient name.
func (h *CorrectieHandler) Suggestions(c *gin.Context) {
	txs, err := h.ledger.CorrectieSuggestions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txs))
}

func (h *CorrectieHandler) Link(c *gin.Context) {
	var req dto.LinkCorrectieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := h.ledger.LinkCorrectie(c.Request.Context(), c.Param("id"), req.TransactionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "linked"})
}
