package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praktijkdash/cashflow-backend/internal/application/service"
	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
	"github.com/praktijkdash/cashflow-backend/internal/domain/matcher"
	"github.com/praktijkdash/cashflow-backend/internal/infrastructure/storage"
)

func date(s string) time.Time {
	t, err := ledger.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type testEnv struct {
	router *gin.Engine
	repo   *storage.MockRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := storage.NewMockRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := func() time.Time { return date("2025-03-01") }

	ledgerSvc := service.NewLedgerService(repo, logger)
	reconSvc := service.NewReconciliationService(repo, matcher.New(matcher.DefaultConfig()), logger)
	forecastSvc := service.NewForecastServiceWithClock(repo, logger, now)

	transactions := NewTransactionHandler(ledgerSvc)
	recon := NewReconciliationHandler(reconSvc)
	forecast := NewForecastHandler(forecastSvc, 30)
	setup := NewSetupHandler(ledgerSvc)
	correcties := NewCorrectieHandler(ledgerSvc)
	cashflow := NewCashflowHandlerWithClock(ledgerSvc, now)
	importer := NewImportHandler(ledgerSvc)

	router := gin.New()
	router.GET("/health", NewHealthHandler().Health)
	api := router.Group("/api")
	{
		api.POST("/transactions", transactions.Create)
		api.GET("/transactions", transactions.List)
		api.GET("/transactions/:id", transactions.Get)
		api.PUT("/transactions/:id", transactions.Update)
		api.DELETE("/transactions/:id", transactions.Delete)
		api.GET("/categories", transactions.Categories)
		api.GET("/bank-reconciliation/unmatched", recon.Unmatched)
		api.GET("/bank-reconciliation/suggestions/:id", recon.Suggestions)
		api.POST("/bank-reconciliation/match", recon.ConfirmMatch)
		api.POST("/bank-reconciliation/match-crediteur", recon.ConfirmCrediteurMatch)
		api.POST("/bank-reconciliation/classify", recon.Classify)
		api.GET("/vaste-kosten", recon.VasteKosten)
		api.GET("/cashflow-forecast", forecast.Forecast)
		api.GET("/verwachte-betalingen", forecast.VerwachteBetalingen)
		api.PUT("/forecast/line-items/:id", forecast.EditLineItem)
		api.DELETE("/forecast/line-items/:id", forecast.DeleteLineItem)
		api.POST("/crediteuren", setup.CreateCrediteur)
		api.GET("/crediteuren", setup.ListCrediteuren)
		api.POST("/bank-saldo", setup.CreateBankSaldo)
		api.POST("/correcties", correcties.Create)
		api.GET("/correcties/unmatched", correcties.ListUnmatched)
		api.GET("/correcties/suggestions/:id", correcties.Suggestions)
		api.POST("/correcties/:id/match", correcties.Link)
		api.GET("/cashflow/daily/:date", cashflow.Daily)
		api.GET("/cashflow/summary", cashflow.Summary)
		api.POST("/import/bank", importer.ImportBankCSV)
	}

	return &testEnv{router: router, repo: repo}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.request(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestCreateAndGetTransaction(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/transactions", map[string]any{
		"type":     "income",
		"category": "zorgverzekeraar",
		"amount":   450.00,
		"date":     "2025-03-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	id, ok := body["id"].(string)
	require.True(t, ok)
	assert.Equal(t, 450.00, body["amount"])
	assert.Equal(t, false, body["reconciled"])

	w = env.request(t, http.MethodGet, "/api/transactions/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListTransactions_TypeFilter(t *testing.T) {
	env := newTestEnv(t)

	for _, req := range []map[string]any{
		{"type": "income", "category": "particulier", "amount": 85.00, "date": "2025-03-01"},
		{"type": "expense", "category": "huur", "amount": 1200.00, "date": "2025-03-01"},
	} {
		w := env.request(t, http.MethodPost, "/api/transactions", req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.request(t, http.MethodGet, "/api/transactions?type=expense", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var txs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txs))
	require.Len(t, txs, 1)
	assert.Equal(t, "expense", txs[0]["type"])
	assert.Equal(t, "huur", txs[0]["category"])
}

func TestCreateTransaction_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/transactions", map[string]any{
		"type":     "income",
		"category": "huur", // expense category on an income entry
		"amount":   450.00,
		"date":     "2025-03-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decodeBody(t, w)["code"])
}

func TestCreateTransaction_BadDate(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/transactions", map[string]any{
		"type":     "income",
		"category": "particulier",
		"amount":   85.00,
		"date":     "01-03-2025",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", decodeBody(t, w)["code"])
}

func TestGetTransaction_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/transactions/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeBody(t, w)["code"])
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Contains(t, body["income"], "zorgverzekeraar")
	assert.Contains(t, body["expense"], "huur")
}

func TestReconciliationFlow(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.repo.SaveBankTransaction(&ledger.BankTransaction{
		ID: "bt-1", Date: date("2025-03-10"), Amount: dec("450.00"),
	}))
	require.NoError(t, env.repo.SaveTransaction(&ledger.Transaction{
		ID: "tx-1", Type: ledger.TypeIncome, Category: ledger.CategoryZorgverzekeraar,
		Amount: dec("450.00"), Date: date("2025-03-10"),
	}))

	w := env.request(t, http.MethodGet, "/api/bank-reconciliation/unmatched", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/bank-reconciliation/suggestions/bt-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var suggestions []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &suggestions))
	require.Len(t, suggestions, 1)
	assert.Equal(t, float64(80), suggestions[0]["score"])
	assert.Equal(t, "high", suggestions[0]["confidence"])

	w = env.request(t, http.MethodPost, "/api/bank-reconciliation/match", map[string]any{
		"bank_transaction_id": "bt-1",
		"transaction_id":      "tx-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// A second confirm is a conflict, not a silent overwrite.
	w = env.request(t, http.MethodPost, "/api/bank-reconciliation/match", map[string]any{
		"bank_transaction_id": "bt-1",
		"transaction_id":      "tx-1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decodeBody(t, w)["code"])

	// The matched pair no longer appears in the suggestion flow.
	w = env.request(t, http.MethodGet, "/api/bank-reconciliation/suggestions/bt-1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestClassifyAndVasteKosten(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.repo.SaveBankTransaction(&ledger.BankTransaction{
		ID: "bt-1", Date: date("2025-03-10"), Amount: dec("-89.95"),
	}))

	w := env.request(t, http.MethodPost, "/api/bank-reconciliation/classify", map[string]any{
		"bank_transaction_id": "bt-1",
		"type":                "fixed",
		"category":            "software",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/vaste-kosten", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "software", categories[0]["category_name"])
	assert.Equal(t, float64(1), categories[0]["transaction_count"])
}

func TestForecastEndpoint(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.repo.SaveBankSaldo(&ledger.BankSaldo{
		ID: "saldo-1", Saldo: dec("10000.00"), Date: date("2025-03-01"),
	}))
	require.NoError(t, env.repo.SaveCrediteur(&ledger.Crediteur{
		ID: "cr-1", Name: "Huur", Amount: dec("1200.00"), Day: 1, Active: true,
	}))

	w := env.request(t, http.MethodGet, "/api/cashflow-forecast?days=31", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, 10000.00, body["current_balance"])
	assert.Equal(t, 8800.00, body["final_balance"])
	days, ok := body["forecast_days"].([]any)
	require.True(t, ok)
	assert.Len(t, days, 31)
}

func TestForecastEndpoint_NoBaseline(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/cashflow-forecast", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "configuration_error", decodeBody(t, w)["code"])
}

func TestForecastEndpoint_BadDays(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/cashflow-forecast?days=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditAndDeleteLineItem(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.repo.SaveCrediteur(&ledger.Crediteur{
		ID: "cr-1", Name: "Huur", Amount: dec("1200.00"), Day: 1, Active: true,
	}))

	w := env.request(t, http.MethodPut, "/api/forecast/line-items/cr-1", map[string]any{
		"kind":   "crediteur",
		"amount": 1250.00,
	})
	require.Equal(t, http.StatusOK, w.Code)

	cr, err := env.repo.GetCrediteur("cr-1")
	require.NoError(t, err)
	assert.True(t, cr.Amount.Equal(dec("1250")))

	w = env.request(t, http.MethodDelete, "/api/forecast/line-items/cr-1?kind=crediteur", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err = env.repo.GetCrediteur("cr-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateCrediteur_Validation(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/crediteuren", map[string]any{
		"name":   "Huur",
		"amount": 1200.00,
		"day":    32,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decodeBody(t, w)["code"])
}

func TestCorrectieEndpoints(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.repo.SaveTransaction(&ledger.Transaction{
		ID: "tx-1", Type: ledger.TypeIncome, Category: ledger.CategoryParticulier,
		Amount: dec("85.00"), Date: date("2025-02-10"), InvoiceNumber: "F-2025-031",
	}))

	w := env.request(t, http.MethodPost, "/api/correcties", map[string]any{
		"type":           "creditfactuur_particulier",
		"amount":         85.00,
		"date":           "2025-03-01",
		"invoice_number": "F-2025-031",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	correctieID := decodeBody(t, w)["id"].(string)

	w = env.request(t, http.MethodGet, "/api/correcties/unmatched", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var unmatched []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unmatched))
	require.Len(t, unmatched, 1)

	w = env.request(t, http.MethodGet, "/api/correcties/suggestions/"+correctieID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var suggestions []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &suggestions))
	require.Len(t, suggestions, 1)

	w = env.request(t, http.MethodPost, "/api/correcties/"+correctieID+"/match", map[string]any{
		"transaction_id": "tx-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/correcties/"+correctieID+"/match", map[string]any{
		"transaction_id": "tx-1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDailyCashflowEndpoint(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.repo.SaveTransaction(&ledger.Transaction{
		ID: "tx-1", Type: ledger.TypeIncome, Category: ledger.CategoryParticulier,
		Amount: dec("85.00"), Date: date("2025-03-01"),
	}))

	w := env.request(t, http.MethodGet, "/api/cashflow/daily/2025-03-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 85.00, body["total_income"])

	w = env.request(t, http.MethodGet, "/api/cashflow/daily/notadate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportBankCSVEndpoint(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "export.csv")
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(
		"date,amount,counterparty,description\n"+
			"2025-03-10,450.00,CZ Groep,Betaling declaratie\n"+
			"2025-03-11,-150.50,Vattenfall,Termijnbedrag\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import/bank", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["imported"])
	assert.Equal(t, float64(0), body["duplicates"])

	unreconciled := false
	bts, err := env.repo.ListBankTransactions(&unreconciled)
	require.NoError(t, err)
	assert.Len(t, bts, 2)
}

func TestImportBankCSVEndpoint_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/import/bank", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
