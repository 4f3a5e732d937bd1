package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"coitrack/internal/csvexport"
	"coitrack/internal/domain"
)

func TestWriter_HeaderAndRows(t *testing.T) {
	propertyName := "Lakeside Apartments"
	expiry := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	uploaded := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
	reasons, _ := json.Marshal([]string{"Policy expires in 14 days", "Missing general liability aggregate limit (minimum $2,000,000 required)"})

	rows := []domain.ComplianceOverviewRow{
		{
			VendorID:          uuid.New(),
			VendorName:        "Apex Plumbing",
			TradeType:         "plumbing",
			PropertyName:      &propertyName,
			ContactEmail:      "office@apexplumbing.example",
			ComplianceStatus:  domain.ComplianceYellow,
			ComplianceReasons: reasons,
			NextExpiryDate:    &expiry,
			ReviewStatus:      domain.ReviewStatusApproved,
			LastUploadAt:      &uploaded,
		},
		{
			VendorID:     uuid.New(),
			VendorName:   "Nova Electric",
			TradeType:    "electrical",
			ContactEmail: "hello@novaelectric.example",
		},
	}

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	assert.NoError(t, w.WriteHeader())
	assert.NoError(t, w.WriteRows(rows))
	w.Flush()
	assert.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3)

	assert.Equal(t, []string{
		"Vendor Name", "Trade Type", "Property", "Contact Email",
		"Compliance Status", "Compliance Reasons", "Next Expiry Date",
		"Review Status", "Last Upload At",
	}, records[0])

	assert.Equal(t, []string{
		"Apex Plumbing", "plumbing", "Lakeside Apartments", "office@apexplumbing.example",
		"yellow",
		"Policy expires in 14 days; Missing general liability aggregate limit (minimum $2,000,000 required)",
		"2026-09-15", "approved", "2026-03-01T14:30:00Z",
	}, records[1])

	// Unscored vendor with no property keeps empty columns
	assert.Equal(t, []string{
		"Nova Electric", "electrical", "", "hello@novaelectric.example",
		"", "", "", "", "",
	}, records[2])
}

func TestWriter_MalformedReasonsBlank(t *testing.T) {
	rows := []domain.ComplianceOverviewRow{
		{
			VendorName:        "Apex Plumbing",
			TradeType:         "plumbing",
			ComplianceReasons: json.RawMessage(`{"not":"an array"}`),
		},
	}

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	assert.NoError(t, w.WriteRows(rows))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, "", records[0][5])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Acme", "Acme"},
		{"spaces and punctuation", "Acme Property Mgmt, LLC.", "Acme_Property_Mgmt_LLC"},
		{"keeps hyphen and underscore", "north-side_group", "north-side_group"},
		{"collapses runs", "a   &&&   b", "a_b"},
		{"trims edge underscores", "  wrapped  ", "wrapped"},
		{"truncates long names", strings.Repeat("x", 150), strings.Repeat("x", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, csvexport.SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	got := csvexport.BuildFilename("Acme Property Mgmt")
	assert.True(t, strings.HasPrefix(got, "Acme_Property_Mgmt_compliance_"))
	assert.True(t, strings.HasSuffix(got, ".csv"))
}
