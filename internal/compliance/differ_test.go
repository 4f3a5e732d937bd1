package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func baselineFields() *ExtractedFields {
	return &ExtractedFields{
		PolicyExpirationDate:       dateP(2026, time.December, 31),
		GLEachOccurrence:           i64(1000000),
		GLAggregate:                i64(2000000),
		WorkersCompPresent:         true,
		AdditionalInsuredPresent:   true,
		WaiverOfSubrogationPresent: true,
	}
}

func TestDiff_NoPreviousExtraction(t *testing.T) {
	result := Diff(baselineFields(), nil)

	assert.False(t, result.HasRegression)
	assert.Empty(t, result.Regressions)
}

func TestDiff_IdenticalExtractions(t *testing.T) {
	fields := baselineFields()

	result := Diff(fields, fields)

	assert.False(t, result.HasRegression)
	assert.Empty(t, result.Regressions)
}

func TestDiff_GLEachOccurrenceDecreased(t *testing.T) {
	current := baselineFields()
	current.GLEachOccurrence = i64(500000)

	result := Diff(current, baselineFields())

	assert.True(t, result.HasRegression)
	assert.Equal(t, []string{
		"General liability each-occurrence limit decreased from $1,000,000 to $500,000",
	}, result.Regressions)
}

func TestDiff_LimitIncreaseIsNotRegression(t *testing.T) {
	current := baselineFields()
	current.GLEachOccurrence = i64(2000000)
	current.GLAggregate = i64(4000000)

	result := Diff(current, baselineFields())

	assert.False(t, result.HasRegression)
}

func TestDiff_WorkersCompDropped(t *testing.T) {
	current := baselineFields()
	current.WorkersCompPresent = false

	result := Diff(current, baselineFields())

	assert.True(t, result.HasRegression)
	assert.Equal(t, []string{
		"Workers compensation coverage was present on the prior certificate but is now missing",
	}, result.Regressions)
}

func TestDiff_NullTransitionsNotFlagged(t *testing.T) {
	// Present -> null is not a numeric regression; the scorer handles
	// missing fields on its own.
	current := baselineFields()
	current.GLEachOccurrence = nil

	result := Diff(current, baselineFields())

	assert.False(t, result.HasRegression)

	// Null -> present is likewise fine.
	previous := baselineFields()
	previous.GLAggregate = nil

	result = Diff(baselineFields(), previous)

	assert.False(t, result.HasRegression)
}

func TestDiff_EndorsementGainedIsNotRegression(t *testing.T) {
	previous := baselineFields()
	previous.AdditionalInsuredPresent = false

	result := Diff(baselineFields(), previous)

	assert.False(t, result.HasRegression)
}

func TestDiff_MultipleRegressionsOrdered(t *testing.T) {
	current := baselineFields()
	current.GLEachOccurrence = i64(500000)
	current.GLAggregate = i64(1000000)
	current.WorkersCompPresent = false
	current.WaiverOfSubrogationPresent = false

	result := Diff(current, baselineFields())

	assert.True(t, result.HasRegression)
	assert.Equal(t, []string{
		"General liability each-occurrence limit decreased from $1,000,000 to $500,000",
		"General liability aggregate limit decreased from $2,000,000 to $1,000,000",
		"Workers compensation coverage was present on the prior certificate but is now missing",
		"Waiver of subrogation was present on the prior certificate but is now missing",
	}, result.Regressions)
}
