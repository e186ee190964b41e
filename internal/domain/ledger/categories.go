package ledger

// Income categories used by the practice. zorgverzekeraar and
// particulier drive expected-payment projection; the credit categories
// only appear on credit/correction entries.
const (
	CategoryZorgverzekeraar  = "zorgverzekeraar"
	CategoryParticulier      = "particulier"
	CategoryFysiofitness     = "fysiofitness"
	CategoryOrthomoleculair  = "orthomoleculair"
	CategoryCreditDeclaratie = "credit_declaratie"
	CategoryCreditfactuur    = "creditfactuur"
)

// Expense categories.
const (
	CategoryHuur      = "huur"
	CategoryMateriaal = "materiaal"
	CategorySalaris   = "salaris"
	CategoryOverig    = "overig"
)

// IncomeCategories returns the valid categories for income, credit and
// correction transactions.
func IncomeCategories() []string {
	return []string{
		CategoryZorgverzekeraar,
		CategoryParticulier,
		CategoryFysiofitness,
		CategoryOrthomoleculair,
		CategoryCreditDeclaratie,
		CategoryCreditfactuur,
	}
}

// ExpenseCategories returns the valid categories for expense transactions.
func ExpenseCategories() []string {
	return []string{
		CategoryHuur,
		CategoryMateriaal,
		CategorySalaris,
		CategoryOverig,
	}
}

// ValidCategory reports whether category is allowed for the given
// transaction type.
func ValidCategory(t TransactionType, category string) bool {
	var valid []string
	switch t {
	case TypeExpense:
		valid = ExpenseCategories()
	case TypeIncome, TypeCredit, TypeCorrection:
		valid = IncomeCategories()
	default:
		return false
	}
	for _, c := range valid {
		if c == category {
			return true
		}
	}
	return false
}

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TypeIncome, TypeExpense, TypeCredit, TypeCorrection:
		return true
	}
	return false
}

// ValidCorrectionType reports whether t is a known correction type.
func ValidCorrectionType(t CorrectionType) bool {
	switch t {
	case CorrectionCreditfactuurParticulier,
		CorrectionCreditdeclaratieVerzekeraar,
		CorrectionCorrectiefactuurVerzekeraar:
		return true
	}
	return false
}

// ValidClassificationType reports whether t is fixed or variable.
func ValidClassificationType(t ClassificationType) bool {
	return t == ClassificationFixed || t == ClassificationVariable
}
