package compliance

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component, serialized as
// "2006-01-02". Extracted certificates carry dates only; comparing
// timestamps would make day arithmetic depend on the clock.
type Date struct {
	time.Time
}

// NewDate creates a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON serializes the date as "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON parses "2006-01-02"; null is handled by using *Date.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// DaysBetween returns the whole-day distance from one date to another,
// ignoring time-of-day and zone. Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// ExtractedFields is the fixed-shape record produced by the AI-vision
// extractor for one certificate. Nil means the field was not found on the
// document. Records are immutable once created.
type ExtractedFields struct {
	PolicyExpirationDate                *Date   `json:"policy_expiration_date"`
	PolicyEffectiveDate                 *Date   `json:"policy_effective_date"`
	GLEachOccurrence                    *int64  `json:"gl_each_occurrence"`
	GLAggregate                         *int64  `json:"gl_aggregate"`
	WorkersCompPresent                  bool    `json:"workers_comp_present"`
	AdditionalInsuredPresent            bool    `json:"additional_insured_present"`
	WaiverOfSubrogationPresent          bool    `json:"waiver_of_subrogation_present"`
	AutoLiabilityCombinedSingleLimit    *int64  `json:"auto_liability_combined_single_limit"`
	UmbrellaEachOccurrence              *int64  `json:"umbrella_each_occurrence"`
	UmbrellaAggregate                   *int64  `json:"umbrella_aggregate"`
	ProfessionalLiabilityEachOccurrence *int64  `json:"professional_liability_each_occurrence"`
	CyberLiabilityEachOccurrence        *int64  `json:"cyber_liability_each_occurrence"`
	PropertyInsurancePresent            bool    `json:"property_insurance_present"`
	ConfidenceScore                     float64 `json:"confidence_score"`
}

// formatAmount renders a dollar amount with thousands separators, e.g.
// 1000000 -> "1,000,000". Reason strings quote both the extracted and the
// required amounts this way.
func formatAmount(v int64) string {
	s := fmt.Sprintf("%d", v)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
