package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"coitrack/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Vendor Name",
	"Trade Type",
	"Property",
	"Contact Email",
	"Compliance Status",
	"Compliance Reasons",
	"Next Expiry Date",
	"Review Status",
	"Last Upload At",
}

// Writer wraps csv.Writer for exporting compliance overview rows as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows converts a batch of overview rows to CSV rows and writes them.
func (w *Writer) WriteRows(rows []domain.ComplianceOverviewRow) error {
	for i := range rows {
		record := overviewToRecord(&rows[i])
		if err := w.csv.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// overviewToRecord converts a single overview row to a string slice. Vendors
// with no scored extraction get empty status columns.
func overviewToRecord(row *domain.ComplianceOverviewRow) []string {
	record := make([]string, len(columns))

	record[0] = row.VendorName
	record[1] = row.TradeType
	if row.PropertyName != nil {
		record[2] = *row.PropertyName
	}
	record[3] = row.ContactEmail
	record[4] = string(row.ComplianceStatus)
	record[5] = formatReasons(row.ComplianceReasons)
	record[6] = formatDate(row.NextExpiryDate)
	record[7] = string(row.ReviewStatus)
	record[8] = formatTime(row.LastUploadAt)

	return record
}

func formatReasons(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var reasons []string
	if err := json.Unmarshal(raw, &reasons); err != nil {
		return ""
	}
	return strings.Join(reasons, "; ")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a tenant name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_compliance_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_compliance_%s.csv", sanitized, date)
}
