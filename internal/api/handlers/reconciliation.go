package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praktijkdash/cashflow-backend/internal/api/dto"
	"github.com/praktijkdash/cashflow-backend/internal/application/service"
	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

// ReconciliationHandler exposes the bank reconciliation workflow:
// listing unmatched bank lines, scoring suggestions, confirming matches
// and classifying outgoing transactions.
type ReconciliationHandler struct {
	recon *service.ReconciliationService
}

func NewReconciliationHandler(recon *service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{recon: recon}
}

func (h *ReconciliationHandler) Unmatched(c *gin.Context) {
	bts, err := h.recon.UnmatchedBankTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponses(bts))
}

func (h *ReconciliationHandler) Suggestions(c *gin.Context) {
	candidates, err := h.recon.FindMatchCandidates(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMatchCandidateResponses(candidates))
}

func (h *ReconciliationHandler) ConfirmMatch(c *gin.Context) {
	var req dto.ConfirmMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := h.recon.ConfirmMatch(c.Request.Context(), req.BankTransactionID, req.TransactionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "matched"})
}

func (h *ReconciliationHandler) ConfirmCrediteurMatch(c *gin.Context) {
	var req dto.ConfirmCrediteurMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := h.recon.ConfirmCrediteurMatch(c.Request.Context(), req.BankTransactionID, req.CrediteurID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "matched"})
}

func (h *ReconciliationHandler) Classify(c *gin.Context) {
	var req dto.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	err := h.recon.ClassifyTransaction(c.Request.Context(), req.BankTransactionID, ledger.ClassificationType(req.Type), req.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "classified"})
}

func (h *ReconciliationHandler) VasteKosten(c *gin.Context) {
	overzicht, err := h.recon.KostenOverzicht(c.Request.Context(), ledger.ClassificationFixed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToKostenCategorieResponses(overzicht))
}

func (h *ReconciliationHandler) VariabeleKosten(c *gin.Context) {
	overzicht, err := h.recon.KostenOverzicht(c.Request.Context(), ledger.ClassificationVariable)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToKostenCategorieResponses(overzicht))
}
