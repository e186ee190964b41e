// Package matcher scores candidate matches between an unexplained bank
// transaction and the open receivables/payables or recurring crediteuren
// of the practice.
//
// Transaction candidates are scored on exact amount equality (+50) and
// date proximity (+30 same day, +15 within the date window). Crediteur
// candidates are gated on the bank transaction being outgoing and the
// amount landing within tolerance of the monthly amount, then scored on
// amount exactness and payment-day proximity. Candidates that score zero
// are not suggested.
//
// Example usage:
//
//	m := matcher.New(matcher.DefaultConfig())
//	candidates := m.FindCandidates(bankTx, openTransactions, crediteuren)
//	if len(candidates) > 0 {
//		best := candidates[0]
//	}
package matcher

import (
	"fmt"
	"sort"

	"github.com/praktijkdash/cashflow-backend/internal/domain/ledger"
)

const (
	amountTermExact = 50
	amountTermNear  = 35
	dateTermExact   = 30
	dateTermNear    = 15
	dayTermExact    = 30
	dayTermNear     = 15
)

// Matcher finds candidate matches for bank transactions.
type Matcher struct {
	config Config
}

// New creates a matcher with the given config.
func New(config Config) *Matcher {
	return &Matcher{config: config}
}

// FindCandidates returns all non-zero-scoring candidates for the given
// bank transaction, best first. Ties are broken by smaller date
// distance, then entity id, so output is deterministic.
//
// The transaction pool is expected to hold only unreconciled entries;
// reconciled ones are skipped defensively. Inactive crediteuren are
// ignored.
func (m *Matcher) FindCandidates(
	bank ledger.BankTransaction,
	transactions []ledger.Transaction,
	crediteuren []ledger.Crediteur,
) []Candidate {
	candidates := make([]Candidate, 0)

	for _, tx := range transactions {
		if tx.Reconciled {
			continue
		}
		if c, ok := m.scoreTransaction(bank, tx); ok {
			candidates = append(candidates, c)
		}
	}

	// Crediteuren only explain outgoing money.
	if bank.Amount.Sign() < 0 {
		for _, cr := range crediteuren {
			if !cr.Active {
				continue
			}
			if c, ok := m.scoreCrediteur(bank, cr); ok {
				candidates = append(candidates, c)
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].dateDistance != candidates[j].dateDistance {
			return candidates[i].dateDistance < candidates[j].dateDistance
		}
		return candidates[i].EntityID < candidates[j].EntityID
	})

	return candidates
}

func (m *Matcher) scoreTransaction(bank ledger.BankTransaction, tx ledger.Transaction) (Candidate, bool) {
	score := 0
	var reasons []string

	if bank.Amount.Abs().Equal(tx.Amount) {
		score += amountTermExact
		reasons = append(reasons, "exact amount match")
	}

	dayDiff := ledger.DaysBetween(bank.Date, tx.Date)
	switch {
	case dayDiff == 0:
		score += dateTermExact
		reasons = append(reasons, "same date")
	case dayDiff <= m.config.DateWindowDays:
		score += dateTermNear
		reasons = append(reasons, fmt.Sprintf("date within %d days", dayDiff))
	}

	if score == 0 {
		return Candidate{}, false
	}

	return Candidate{
		EntityID:     tx.ID,
		MatchType:    MatchTypeTransaction,
		Score:        score,
		Reason:       joinReasons(reasons),
		dateDistance: dayDiff,
	}, true
}

func (m *Matcher) scoreCrediteur(bank ledger.BankTransaction, cr ledger.Crediteur) (Candidate, bool) {
	absAmount := bank.Amount.Abs()
	amountDiff := absAmount.Sub(cr.Amount).Abs()

	score := 0
	var reasons []string

	switch {
	case amountDiff.IsZero():
		score += amountTermExact
		reasons = append(reasons, "exact monthly amount")
	case m.config.AmountTolerance.IsPositive() && amountDiff.LessThanOrEqual(m.config.AmountTolerance):
		score += amountTermNear
		reasons = append(reasons, fmt.Sprintf("amount within tolerance (off by %s)", amountDiff.StringFixed(2)))
	default:
		// Amount is the eligibility gate for crediteuren.
		return Candidate{}, false
	}

	dayDist := dayOfMonthDistance(bank.Date.Day(), cr.Day, ledger.DaysInMonth(bank.Date.Year(), bank.Date.Month()))
	switch {
	case dayDist == 0:
		score += dayTermExact
		reasons = append(reasons, fmt.Sprintf("paid on expected day %d", cr.Day))
	case dayDist <= m.config.DayOfMonthWindow:
		score += dayTermNear
		reasons = append(reasons, fmt.Sprintf("%d days from expected day %d", dayDist, cr.Day))
	}

	return Candidate{
		EntityID:     cr.ID,
		MatchType:    MatchTypeCrediteur,
		Score:        score,
		Reason:       joinReasons(reasons),
		dateDistance: dayDist,
	}, true
}

// dayOfMonthDistance measures cyclic distance between two days of a
// month, so a payment on the 1st is two days from an expected day 30 in
// a 31-day month rather than twenty-nine. Expected days beyond the
// month's length clip to its last day.
func dayOfMonthDistance(actual, expected, daysInMonth int) int {
	if expected > daysInMonth {
		expected = daysInMonth
	}
	d := actual - expected
	if d < 0 {
		d = -d
	}
	if wrapped := daysInMonth - d; wrapped < d {
		d = wrapped
	}
	return d
}

func joinReasons(reasons []string) string {
	out := ""
	for i, r := range reasons {
		if i > 0 {
			out += ", "
		}
		out += r
	}
	return out
}
