package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/api/dto"
	"github.com/praktijkdash/cashflow-backend/internal/application/service"
	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/storage"
)

// TransactionHandler exposes CRUD operations on ledger transactions.
type TransactionHandler struct {
	ledger *service.LedgerService
}

func NewTransactionHandler(ledger *service.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	date, err := ledger.ParseDate(req.Date)
	if err != nil {
		respondBadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}

	tx := &ledger.Transaction{
		Type:          ledger.TransactionType(req.Type),
		Category:      req.Category,
		Amount:        decimal.NewFromFloat(req.Amount),
		Description:   req.Description,
		Date:          date,
		PatientName:   req.PatientName,
		InvoiceNumber: req.InvoiceNumber,
		Notes:         req.Notes,
	}
	if err := h.ledger.CreateTransaction(c.Request.Context(), tx); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*tx))
}

func (h *TransactionHandler) Get(c *gin.Context) {
	tx, err := h.ledger.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*tx))
}

func (h *TransactionHandler) List(c *gin.Context) {
	filters := storage.TransactionFilters{
		Category: c.Query("category"),
		Type:     ledger.TransactionType(c.Query("type")),
	}
	if v := c.Query("start_date"); v != "" {
		d, err := ledger.ParseDate(v)
		if err != nil {
			respondBadRequest(c, "invalid start_date, expected YYYY-MM-DD")
			return
		}
		filters.StartDate = &d
	}
	if v := c.Query("end_date"); v != "" {
		d, err := ledger.ParseDate(v)
		if err != nil {
			respondBadRequest(c, "invalid end_date, expected YYYY-MM-DD")
			return
		}
		filters.EndDate = &d
	}
	if v := c.Query("reconciled"); v != "" {
		reconciled := v == "true"
		filters.Reconciled = &reconciled
	}

	txs, err := h.ledger.ListTransactions(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txs))
}

func (h *TransactionHandler) Update(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	existing, err := h.ledger.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	date, err := ledger.ParseDate(req.Date)
	if err != nil {
		respondBadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}

	existing.Type = ledger.TransactionType(req.Type)
	existing.Category = req.Category
	existing.Amount = decimal.NewFromFloat(req.Amount)
	existing.Description = req.Description
	existing.Date = date
	existing.PatientName = req.PatientName
	existing.InvoiceNumber = req.InvoiceNumber
	existing.Notes = req.Notes

	if err := h.ledger.UpdateTransaction(c.Request.Context(), existing); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*existing))
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.ledger.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Categories returns the valid income and expense categories. The
// dashboard uses these to populate dropdowns.
func (h *TransactionHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"income":  ledger.IncomeCategories(),
		"expense": ledger.ExpenseCategories(),
	})
}

func (h *TransactionHandler) IncomeCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": ledger.IncomeCategories()})
}

func (h *TransactionHandler) ExpenseCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": ledger.ExpenseCategories()})
}
