package service

import (
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(s string) time.Time {
	t, err := ledger.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedClock(s string) func() time.Time {
	d := date(s)
	return func() time.Time { return d }
}
