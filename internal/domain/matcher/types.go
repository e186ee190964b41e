package matcher

import "github.com/shopspring/decimal"

// MatchType tags which pool a candidate came from.
type MatchType string

const (
	MatchTypeTransaction MatchType = "transaction"
	MatchTypeCrediteur   MatchType = "crediteur"
)

// Confidence is the suggested tri-level banding for a candidate score.
// It is advisory only: low-confidence candidates are still returned.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"    // score < 50
	ConfidenceMedium Confidence = "medium" // 50-79
	ConfidenceHigh   Confidence = "high"   // >= 80
)

// Config holds matcher configuration.
type Config struct {
	// AmountTolerance admits crediteur candidates whose monthly amount
	// is close to, but not exactly, the bank amount. Zero means only
	// exact-cent matches are eligible.
	AmountTolerance decimal.Decimal

	// DateWindowDays is how far apart dates may be and still earn the
	// partial date term on transaction candidates.
	DateWindowDays int

	// DayOfMonthWindow is how far (in cyclic days) a bank transaction's
	// day of month may be from a crediteur's payment day and still earn
	// the partial day term.
	DayOfMonthWindow int
}

// DefaultConfig returns sensible defaults: exact-cent amounts only, a
// 7-day date window and a 3-day payment-day window.
func DefaultConfig() Config {
	return Config{
		AmountTolerance:  decimal.Zero,
		DateWindowDays:   7,
		DayOfMonthWindow: 3,
	}
}

// Candidate is one suggested match for a bank transaction.
type Candidate struct {
	EntityID  string
	MatchType MatchType
	Score     int // 0-100
	Reason    string

	// dateDistance breaks score ties deterministically.
	dateDistance int
}

// Confidence returns the advisory confidence band for this candidate.
func (c Candidate) Confidence() Confidence {
	switch {
	case c.Score >= 80:
		return ConfidenceHigh
	case c.Score >= 50:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
