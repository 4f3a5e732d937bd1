package compliance

import "fmt"

// DiffResult flags coverage regressions between two extractions for the
// same vendor. Regressions are ordered by evaluation order.
type DiffResult struct {
	HasRegression bool     `json:"has_regression"`
	Regressions   []string `json:"regressions"`
}

// Diff compares the current extraction against the vendor's most recent
// prior one. A nil previous (first-ever certificate) never regresses.
//
// Numeric comparisons only fire on a strict decrease between two known
// values; a limit going from present to null is deliberately not flagged
// here, matching the governing system's behavior.
func Diff(current, previous *ExtractedFields) DiffResult {
	if previous == nil {
		return DiffResult{HasRegression: false, Regressions: []string{}}
	}

	var regressions []string

	if decreased(current.GLEachOccurrence, previous.GLEachOccurrence) {
		regressions = append(regressions, fmt.Sprintf(
			"General liability each-occurrence limit decreased from $%s to $%s",
			formatAmount(*previous.GLEachOccurrence), formatAmount(*current.GLEachOccurrence)))
	}
	if decreased(current.GLAggregate, previous.GLAggregate) {
		regressions = append(regressions, fmt.Sprintf(
			"General liability aggregate limit decreased from $%s to $%s",
			formatAmount(*previous.GLAggregate), formatAmount(*current.GLAggregate)))
	}
	if previous.WorkersCompPresent && !current.WorkersCompPresent {
		regressions = append(regressions, "Workers compensation coverage was present on the prior certificate but is now missing")
	}
	if previous.AdditionalInsuredPresent && !current.AdditionalInsuredPresent {
		regressions = append(regressions, "Additional insured endorsement was present on the prior certificate but is now missing")
	}
	if previous.WaiverOfSubrogationPresent && !current.WaiverOfSubrogationPresent {
		regressions = append(regressions, "Waiver of subrogation was present on the prior certificate but is now missing")
	}

	if regressions == nil {
		regressions = []string{}
	}
	return DiffResult{
		HasRegression: len(regressions) > 0,
		Regressions:   regressions,
	}
}

// decreased reports a strict decrease between two known values.
func decreased(current, previous *int64) bool {
	return current != nil && previous != nil && *current < *previous
}
