package compliance

import (
	"fmt"
	"time"

	"coitrack/internal/domain"
)

// ScoreResult is the verdict for one extraction against one rule set.
// Reasons are ordered by evaluation order, which is also display order.
type ScoreResult struct {
	Status         domain.ComplianceStatus `json:"status"`
	Reasons        []string                `json:"reasons"`
	NextExpiryDate *Date                   `json:"next_expiry_date"`
}

// Score evaluates extracted certificate fields against a rule set. It is a
// pure function: the reference date is the explicit today parameter, never
// the wall clock. Checks run in a fixed order and each appends at most one
// reason; any red-tier failure forces red, else any yellow-tier condition
// forces yellow, else green. Absent numeric fields count as unmet
// requirements, never as zero.
func Score(fields *ExtractedFields, rules *domain.ComplianceRuleSet, today time.Time) ScoreResult {
	var reasons []string
	red := false
	yellow := false

	fail := func(msg string) {
		reasons = append(reasons, msg)
		red = true
	}

	// 1. Expiry
	if fields.PolicyExpirationDate == nil {
		fail("Missing expiration date")
	} else {
		daysUntil := DaysBetween(today, fields.PolicyExpirationDate.Time)
		if daysUntil < 0 {
			fail(fmt.Sprintf("Policy expired %d days ago", -daysUntil))
		} else if daysUntil <= rules.YellowDaysBeforeExpiry {
			reasons = append(reasons, fmt.Sprintf("Policy expires in %d days", daysUntil))
			yellow = true
		}
	}

	// 2-3. General liability limits
	checkMin(&reasons, &red, fields.GLEachOccurrence, rules.GLEachOccurrenceMin, "general liability each-occurrence limit")
	checkMin(&reasons, &red, fields.GLAggregate, rules.GLAggregateMin, "general liability aggregate limit")

	// 4-6. Required endorsements
	if rules.WorkersCompRequired && !fields.WorkersCompPresent {
		fail("Workers compensation coverage required but not present")
	}
	if rules.AdditionalInsuredRequired && !fields.AdditionalInsuredPresent {
		fail("Additional insured endorsement required but not present")
	}
	if rules.WaiverOfSubrogationRequired && !fields.WaiverOfSubrogationPresent {
		fail("Waiver of subrogation required but not present")
	}

	// 7-10. Optional coverage minimums, evaluated only when configured
	checkMin(&reasons, &red, fields.AutoLiabilityCombinedSingleLimit, rules.AutoLiabilityMin, "auto liability combined single limit")
	checkMin(&reasons, &red, fields.UmbrellaEachOccurrence, rules.UmbrellaEachOccurrenceMin, "umbrella each-occurrence limit")
	checkMin(&reasons, &red, fields.ProfessionalLiabilityEachOccurrence, rules.ProfessionalLiabilityMin, "professional liability limit")
	checkMin(&reasons, &red, fields.CyberLiabilityEachOccurrence, rules.CyberLiabilityMin, "cyber liability limit")

	// 11. Property insurance
	if rules.PropertyInsuranceRequired && !fields.PropertyInsurancePresent {
		fail("Property insurance required but not present")
	}

	status := domain.ComplianceGreen
	switch {
	case red:
		status = domain.ComplianceRed
	case yellow:
		status = domain.ComplianceYellow
	}

	// Expiry passes through verbatim, even when nil or already past;
	// display behavior is the caller's concern.
	return ScoreResult{
		Status:         status,
		Reasons:        reasons,
		NextExpiryDate: fields.PolicyExpirationDate,
	}
}

// checkMin applies one numeric coverage check. A nil minimum means the
// coverage is not required and the check is skipped entirely. A nil value
// against a set minimum is a red failure; the boundary is inclusive, so a
// value equal to the minimum passes.
func checkMin(reasons *[]string, red *bool, value, min *int64, label string) {
	if min == nil {
		return
	}
	if value == nil {
		*reasons = append(*reasons, fmt.Sprintf("Missing %s (minimum $%s required)", label, formatAmount(*min)))
		*red = true
		return
	}
	if *value < *min {
		*reasons = append(*reasons, fmt.Sprintf("%s of $%s is below the $%s minimum",
			capitalize(label), formatAmount(*value), formatAmount(*min)))
		*red = true
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
