package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"coitrack/internal/domain"
)

func i64(v int64) *int64 { return &v }

func dateP(year int, month time.Month, day int) *Date {
	d := NewDate(year, month, day)
	return &d
}

func standardRules() *domain.ComplianceRuleSet {
	return &domain.ComplianceRuleSet{
		GLEachOccurrenceMin:         i64(1000000),
		GLAggregateMin:              i64(2000000),
		WorkersCompRequired:         true,
		AdditionalInsuredRequired:   true,
		WaiverOfSubrogationRequired: false,
		YellowDaysBeforeExpiry:      30,
	}
}

func compliantFields() *ExtractedFields {
	return &ExtractedFields{
		PolicyExpirationDate:     dateP(2026, time.December, 31),
		GLEachOccurrence:         i64(1000000),
		GLAggregate:              i64(2000000),
		WorkersCompPresent:       true,
		AdditionalInsuredPresent: true,
		ConfidenceScore:          0.95,
	}
}

func TestScore_FullyCompliant(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	result := Score(compliantFields(), standardRules(), today)

	assert.Equal(t, domain.ComplianceGreen, result.Status)
	assert.Empty(t, result.Reasons)
	assert.Equal(t, dateP(2026, time.December, 31), result.NextExpiryDate)
}

func TestScore_AllFieldsNull(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	result := Score(&ExtractedFields{}, standardRules(), today)

	assert.Equal(t, domain.ComplianceRed, result.Status)
	assert.NotEmpty(t, result.Reasons)
	assert.Contains(t, result.Reasons, "Missing expiration date")
	assert.Nil(t, result.NextExpiryDate)
}

func TestScore_ExpiredPolicy(t *testing.T) {
	today := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	fields := compliantFields()
	fields.PolicyExpirationDate = dateP(2026, time.March, 1)

	result := Score(fields, standardRules(), today)

	assert.Equal(t, domain.ComplianceRed, result.Status)
	assert.Contains(t, result.Reasons, "Policy expired 10 days ago")
}

func TestScore_ExpiringWithinYellowWindow(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	fields := compliantFields()
	// Exactly today + yellow window: still yellow, boundary is inclusive.
	fields.PolicyExpirationDate = dateP(2026, time.March, 31)

	result := Score(fields, standardRules(), today)

	assert.Equal(t, domain.ComplianceYellow, result.Status)
	assert.Equal(t, []string{"Policy expires in 30 days"}, result.Reasons)
}

func TestScore_OneDayPastYellowWindowIsGreen(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	fields := compliantFields()
	fields.PolicyExpirationDate = dateP(2026, time.April, 1)

	result := Score(fields, standardRules(), today)

	assert.Equal(t, domain.ComplianceGreen, result.Status)
	assert.Empty(t, result.Reasons)
}

func TestScore_LimitExactlyAtMinimumPasses(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	fields := compliantFields()
	fields.GLEachOccurrence = i64(1000000)

	result := Score(fields, standardRules(), today)

	assert.Equal(t, domain.ComplianceGreen, result.Status)
}

func TestScore_LimitBelowMinimum(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	fields := compliantFields()
	fields.GLEachOccurrence = i64(500000)

	result := Score(fields, standardRules(), today)

	assert.Equal(t, domain.ComplianceRed, result.Status)
	assert.Contains(t, result.Reasons,
		"General liability each-occurrence limit of $500,000 is below the $1,000,000 minimum")
}

func TestScore_MissingLimitAgainstSetMinimum(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	fields := compliantFields()
	fields.GLAggregate = nil

	result := Score(fields, standardRules(), today)

	assert.Equal(t, domain.ComplianceRed, result.Status)
	assert.Contains(t, result.Reasons,
		"Missing general liability aggregate limit (minimum $2,000,000 required)")
}

func TestScore_NilMinimumSkipsCheck(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	rules := standardRules()
	rules.UmbrellaEachOccurrenceMin = nil
	fields := compliantFields()
	fields.UmbrellaEachOccurrence = nil

	result := Score(fields, rules, today)

	assert.Equal(t, domain.ComplianceGreen, result.Status)
}

func TestScore_MissingEndorsements(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	fields := compliantFields()
	fields.WorkersCompPresent = false
	fields.AdditionalInsuredPresent = false

	result := Score(fields, standardRules(), today)

	assert.Equal(t, domain.ComplianceRed, result.Status)
	assert.Equal(t, []string{
		"Workers compensation coverage required but not present",
		"Additional insured endorsement required but not present",
	}, result.Reasons)
}

func TestScore_RedOutranksYellow(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	fields := compliantFields()
	fields.PolicyExpirationDate = dateP(2026, time.March, 15)
	fields.WorkersCompPresent = false

	result := Score(fields, standardRules(), today)

	assert.Equal(t, domain.ComplianceRed, result.Status)
	// Expiry reason still comes first; order follows evaluation order.
	assert.Equal(t, []string{
		"Policy expires in 14 days",
		"Workers compensation coverage required but not present",
	}, result.Reasons)
}

func TestScore_Deterministic(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	fields := compliantFields()
	fields.GLEachOccurrence = i64(750000)
	fields.WorkersCompPresent = false

	first := Score(fields, standardRules(), today)
	second := Score(fields, standardRules(), today)

	assert.Equal(t, first, second)
}

func TestScore_ExpiryPassesThroughEvenWhenExpired(t *testing.T) {
	today := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	fields := compliantFields()
	fields.PolicyExpirationDate = dateP(2026, time.January, 15)

	result := Score(fields, standardRules(), today)

	assert.Equal(t, dateP(2026, time.January, 15), result.NextExpiryDate)
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2026, time.March, 1, 23, 59, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 2, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysBetween(from, to))
	assert.Equal(t, -1, DaysBetween(to, from))
	assert.Equal(t, 0, DaysBetween(from, from))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "500", formatAmount(500))
	assert.Equal(t, "500,000", formatAmount(500000))
	assert.Equal(t, "1,000,000", formatAmount(1000000))
	assert.Equal(t, "25,000,000", formatAmount(25000000))
}
