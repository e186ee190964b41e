package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15-03-2025")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestFormatDate_RoundTrip(t *testing.T) {
	d, err := ParseDate("2025-12-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01", FormatDate(d))
}

func TestDateOnly_StripsTimeAndZone(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	in := time.Date(2025, time.March, 15, 23, 45, 12, 0, loc)

	got := DateOnly(in)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, DaysBetween(a, b))
	assert.Equal(t, 5, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 30, DaysInMonth(2025, time.April))
	assert.Equal(t, 31, DaysInMonth(2025, time.December))
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(TypeIncome, CategoryZorgverzekeraar))
	assert.True(t, ValidCategory(TypeExpense, CategoryHuur))
	assert.True(t, ValidCategory(TypeCredit, CategoryCreditfactuur))

	assert.False(t, ValidCategory(TypeIncome, CategoryHuur))
	assert.False(t, ValidCategory(TypeExpense, CategoryParticulier))
	assert.False(t, ValidCategory(TypeIncome, "onbekend"))
}

func TestValidTransactionType(t *testing.T) {
	assert.True(t, ValidTransactionType(TypeIncome))
	assert.True(t, ValidTransactionType(TypeExpense))
	assert.True(t, ValidTransactionType(TypeCredit))
	assert.True(t, ValidTransactionType(TypeCorrection))
	assert.False(t, ValidTransactionType("transfer"))
}

func TestValidCorrectionType(t *testing.T) {
	assert.True(t, ValidCorrectionType(CorrectionCreditfactuurParticulier))
	assert.True(t, ValidCorrectionType(CorrectionCreditdeclaratieVerzekeraar))
	assert.True(t, ValidCorrectionType(CorrectionCorrectiefactuurVerzekeraar))
	assert.False(t, ValidCorrectionType("storno"))
}

func TestValidClassificationType(t *testing.T) {
	assert.True(t, ValidClassificationType(ClassificationFixed))
	assert.True(t, ValidClassificationType(ClassificationVariable))
	assert.False(t, ValidClassificationType("recurring"))
}
