package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praktijkdash/cashflow-backend/internal/api/dto"
	"github.com/praktijkdash/cashflow-backend/internal/application/service"
)

// ImportHandler accepts bank CSV exports as multipart uploads.
type ImportHandler struct {
	ledger *service.LedgerService
}

func NewImportHandler(ledger *service.LedgerService) *ImportHandler {
	return &ImportHandler{ledger: ledger}
}

func (h *ImportHandler) ImportBankCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "multipart field 'file' is required")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respondBadRequest(c, "could not open uploaded file")
		return
	}
	defer f.Close()

	result, err := h.ledger.ImportBankCSV(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ImportResultResponse{
		Imported:   result.Imported,
		Duplicates: result.Duplicates,
	})
}
