package schema

import "strconv"

// SafeRatio divides num by den with the zero-denominator convention used
// across all KPI formulas: a zero or negative denominator yields 0, never a
// division fault.
func SafeRatio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// UserFormula returns the stakeholder-specified "formula usuario" value for
// a ratio. The formula divides by 100 a value that is already a ratio; it is
// preserved verbatim as an external-report compatibility field and plays no
// part in the core ratio definitions.
func UserFormula(ratio float64) float64 {
	return ratio / 100.0
}

// MonthName returns the Spanish month name for report output, falling back
// to the number itself for out-of-range values.
func MonthName(month int) string {
	if name, ok := MonthNames[month]; ok {
		return name
	}
	return strconv.Itoa(month)
}
