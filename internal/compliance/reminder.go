package compliance

import (
	"fmt"
	"strings"
	"time"

	"coitrack/internal/domain"
)

// ComputeStage determines which reminder window applies for a certificate
// expiring on expiryDate as of today. The second return value is false when
// no stage is due (more than 30 days out).
//
// Branches are checked most-urgent-first and the first match wins: one day
// out must classify as the 1d stage, not 7d. Reordering these checks would
// misclassify near-term expiries.
func ComputeStage(expiryDate, today time.Time) (domain.ReminderStage, bool) {
	daysUntil := DaysBetween(today, expiryDate)
	switch {
	case daysUntil < 0:
		return domain.StageExpiredWeekly, true
	case daysUntil <= 1:
		return domain.Stage1Day, true
	case daysUntil <= 7:
		return domain.Stage7Days, true
	case daysUntil <= 14:
		return domain.Stage14Days, true
	case daysUntil <= 30:
		return domain.Stage30Days, true
	default:
		return "", false
	}
}

// RenderMessage produces the reminder email body for a vendor. The urgency
// phrase is derived from the day delta at render time, independently of the
// stage the dedup log uses. A trailing issues clause is added only when the
// scorer produced reasons.
func RenderMessage(vendorName, tradeType string, expiryDate, today time.Time, reasons []string) string {
	daysUntil := DaysBetween(today, expiryDate)

	var urgency string
	switch {
	case daysUntil < 0:
		urgency = fmt.Sprintf("expired %d days ago", -daysUntil)
	case daysUntil == 0:
		urgency = "expires today"
	case daysUntil == 1:
		urgency = "expires tomorrow"
	default:
		urgency = fmt.Sprintf("expires in %d days (%s)", daysUntil, expiryDate.Format("January 2, 2006"))
	}

	msg := fmt.Sprintf("%s's %s certificate of insurance %s. Please provide an updated certificate to remain in compliance.",
		vendorName, tradeType, urgency)
	if len(reasons) > 0 {
		msg += " Issues: " + strings.Join(reasons, "; ") + "."
	}
	return msg
}
