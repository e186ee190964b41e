package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/api/dto"
	"github.com/praktijkdash/cashflow-backend/internal/application/service"
	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

// SetupHandler manages the reference data the forecast draws from:
// crediteuren, verzekeraars, bank balance snapshots and other income.
type SetupHandler struct {
	ledger *service.LedgerService
}

func NewSetupHandler(ledger *service.LedgerService) *SetupHandler {
	return &SetupHandler{ledger: ledger}
}

func (h *SetupHandler) CreateCrediteur(c *gin.Context) {
	var req dto.CreateCrediteurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cr := &ledger.Crediteur{
		Name:   req.Name,
		Amount: decimal.NewFromFloat(req.Amount),
		Day:    req.Day,
	}
	if err := h.ledger.CreateCrediteur(c.Request.Context(), cr); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCrediteurResponse(*cr))
}

func (h *SetupHandler) ListCrediteuren(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	crs, err := h.ledger.ListCrediteuren(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCrediteurResponses(crs))
}

func (h *SetupHandler) DeleteCrediteur(c *gin.Context) {
	if err := h.ledger.DeleteCrediteur(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SetupHandler) CreateVerzekeraar(c *gin.Context) {
	var req dto.CreateVerzekeraarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	v := &ledger.Verzekeraar{
		Name:            req.Name,
		PaymentTermDays: req.PaymentTermDays,
	}
	if err := h.ledger.CreateVerzekeraar(c.Request.Context(), v); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.VerzekeraarResponse{ID: v.ID, Name: v.Name, PaymentTermDays: v.PaymentTermDays})
}

func (h *SetupHandler) ListVerzekeraars(c *gin.Context) {
	vs, err := h.ledger.ListVerzekeraars(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVerzekeraarResponses(vs))
}

func (h *SetupHandler) DeleteVerzekeraar(c *gin.Context) {
	if err := h.ledger.DeleteVerzekeraar(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SetupHandler) CreateBankSaldo(c *gin.Context) {
	var req dto.CreateBankSaldoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	date, err := ledger.ParseDate(req.Date)
	if err != nil {
		respondBadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}
	b := &ledger.BankSaldo{
		Saldo:       decimal.NewFromFloat(req.Saldo),
		Date:        date,
		Description: req.Description,
	}
	if err := h.ledger.CreateBankSaldo(c.Request.Context(), b); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankSaldoResponse(*b))
}

func (h *SetupHandler) ListBankSaldos(c *gin.Context) {
	bs, err := h.ledger.ListBankSaldos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankSaldoResponses(bs))
}

func (h *SetupHandler) CreateOverigeOmzet(c *gin.Context) {
	var req dto.CreateOverigeOmzetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	date, err := ledger.ParseDate(req.Date)
	if err != nil {
		respondBadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}
	o := &ledger.OverigeOmzet{
		Description: req.Description,
		Amount:      decimal.NewFromFloat(req.Amount),
		Date:        date,
		Recurring:   req.Recurring,
	}
	if err := h.ledger.CreateOverigeOmzet(c.Request.Context(), o); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": o.ID})
}

func (h *SetupHandler) ListOverigeOmzet(c *gin.Context) {
	os, err := h.ledger.ListOverigeOmzet(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOverigeOmzetResponses(os))
}
