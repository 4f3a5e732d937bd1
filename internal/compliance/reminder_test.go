package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"coitrack/internal/domain"
)

func TestComputeStage_Windows(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expiry  time.Time
		stage   domain.ReminderStage
		due     bool
	}{
		{"expired five days ago", today.AddDate(0, 0, -5), domain.StageExpiredWeekly, true},
		{"expired yesterday", today.AddDate(0, 0, -1), domain.StageExpiredWeekly, true},
		{"expires today", today, domain.Stage1Day, true},
		{"expires tomorrow", today.AddDate(0, 0, 1), domain.Stage1Day, true},
		{"expires in two days", today.AddDate(0, 0, 2), domain.Stage7Days, true},
		{"expires in seven days", today.AddDate(0, 0, 7), domain.Stage7Days, true},
		{"expires in eight days", today.AddDate(0, 0, 8), domain.Stage14Days, true},
		{"expires in fourteen days", today.AddDate(0, 0, 14), domain.Stage14Days, true},
		{"expires in fifteen days", today.AddDate(0, 0, 15), domain.Stage30Days, true},
		{"expires in thirty days", today.AddDate(0, 0, 30), domain.Stage30Days, true},
		{"expires in thirty-one days", today.AddDate(0, 0, 31), "", false},
		{"expires next year", today.AddDate(1, 0, 0), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, due := ComputeStage(tt.expiry, today)
			assert.Equal(t, tt.due, due)
			assert.Equal(t, tt.stage, stage)
		})
	}
}

func TestComputeStage_MostUrgentWins(t *testing.T) {
	// One day out satisfies the 7d window too; the 1d stage must win.
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	stage, due := ComputeStage(today.AddDate(0, 0, 1), today)

	assert.True(t, due)
	assert.Equal(t, domain.Stage1Day, stage)
}

func TestRenderMessage_Upcoming(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	msg := RenderMessage("Acme Roofing", "roofing", expiry, today, nil)

	assert.Equal(t,
		"Acme Roofing's roofing certificate of insurance expires in 14 days (March 15, 2026). "+
			"Please provide an updated certificate to remain in compliance.",
		msg)
}

func TestRenderMessage_ExpiresToday(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	msg := RenderMessage("Acme Roofing", "roofing", today, today, nil)

	assert.Contains(t, msg, "certificate of insurance expires today.")
}

func TestRenderMessage_ExpiresTomorrow(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	msg := RenderMessage("Acme Roofing", "roofing", today.AddDate(0, 0, 1), today, nil)

	assert.Contains(t, msg, "certificate of insurance expires tomorrow.")
}

func TestRenderMessage_Expired(t *testing.T) {
	today := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	msg := RenderMessage("Acme Roofing", "roofing", expiry, today, nil)

	assert.Contains(t, msg, "certificate of insurance expired 10 days ago.")
}

func TestRenderMessage_WithIssues(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	reasons := []string{
		"General liability each-occurrence limit of $500,000 is below the $1,000,000 minimum",
		"Workers compensation coverage required but not present",
	}

	msg := RenderMessage("Acme Roofing", "roofing", expiry, today, reasons)

	assert.Contains(t, msg,
		"Issues: General liability each-occurrence limit of $500,000 is below the $1,000,000 minimum; "+
			"Workers compensation coverage required but not present.")
}

func TestRenderMessage_NoIssuesClauseWhenEmpty(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	msg := RenderMessage("Acme Roofing", "roofing", expiry, today, []string{})

	assert.NotContains(t, msg, "Issues:")
}
