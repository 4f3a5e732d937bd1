// Command seedrules converts a trade-type insurance requirements Excel
// workbook into a SQL seed file of compliance rule sets.
// Expected columns (data starts at row index 1):
// A=trade type, B=GL each occurrence min, C=GL aggregate min,
// D=auto liability min, E=umbrella min, F=professional liability min,
// G=cyber liability min, H=workers comp (Yes/No), I=additional insured (Yes/No),
// J=waiver of subrogation (Yes/No), K=property insurance (Yes/No),
// L=yellow days before expiry.
// Usage: go run ./cmd/seedrules <workbook.xlsx> <tenant-uuid> <created-by-uuid>
// Output: db/seeds/rule_sets.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

type ruleEntry struct {
	tradeType string
	minimums  [6]*int64 // gl each occ, gl agg, auto, umbrella, professional, cyber
	required  [4]bool   // workers comp, additional insured, waiver, property
	yellow    int
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 4 {
		fmt.Println("Usage: seedrules <workbook.xlsx> <tenant-uuid> <created-by-uuid>")
		os.Exit(1)
	}
	xlsxPath := os.Args[1]
	tenantID, err := uuid.Parse(os.Args[2])
	if err != nil {
		return fmt.Errorf("invalid tenant UUID: %w", err)
	}
	createdBy, err := uuid.Parse(os.Args[3])
	if err != nil {
		return fmt.Errorf("invalid created-by UUID: %w", err)
	}
	outPath := "db/seeds/rule_sets.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseRuleSheet(f)
	if err != nil {
		return fmt.Errorf("parse rule sheet: %w", err)
	}
	log.Printf("parsed %d rule set(s)", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := writeSQL(out, entries, tenantID, createdBy); err != nil {
		return fmt.Errorf("write SQL: %w", err)
	}

	log.Printf("Generated %d rule set(s) in %s", len(entries), outPath)
	return nil
}

// parseRuleSheet reads the first sheet. Rows with an empty trade type are
// skipped; duplicate trade types keep the first occurrence.
func parseRuleSheet(f *excelize.File) ([]ruleEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []ruleEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		tradeType := strings.ToLower(strings.TrimSpace(cellVal(row, 0)))
		if tradeType == "" || seen[tradeType] {
			continue
		}
		seen[tradeType] = true

		e := ruleEntry{tradeType: tradeType, yellow: 30}
		for j := 0; j < 6; j++ {
			e.minimums[j] = parseAmount(cellVal(row, j+1))
		}
		for j := 0; j < 4; j++ {
			e.required[j] = parseYesNo(cellVal(row, j+7))
		}
		if days, derr := strconv.Atoi(strings.TrimSpace(cellVal(row, 11))); derr == nil && days > 0 {
			e.yellow = days
		}

		entries = append(entries, e)
	}
	return entries, nil
}

// parseAmount parses a dollar amount cell like "1,000,000" or "$2000000".
// Empty or unparseable cells mean the coverage is not required (NULL).
func parseAmount(s string) *int64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}

func parseYesNo(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "required", "1":
		return true
	default:
		return false
	}
}

func writeSQL(out *os.File, entries []ruleEntry, tenantID, createdBy uuid.UUID) error {
	var b strings.Builder
	b.WriteString("-- Compliance rule set seed data generated from Excel.\n")
	fmt.Fprintf(&b, "-- %d rule sets for tenant %s.\n", len(entries), tenantID)
	b.WriteString("BEGIN;\n\n")
	b.WriteString("INSERT INTO compliance_rule_sets (id, tenant_id, trade_type,\n")
	b.WriteString("  gl_each_occurrence_min, gl_aggregate_min, auto_liability_min,\n")
	b.WriteString("  umbrella_each_occurrence_min, professional_liability_min, cyber_liability_min,\n")
	b.WriteString("  workers_comp_required, additional_insured_required,\n")
	b.WriteString("  waiver_of_subrogation_required, property_insurance_required,\n")
	b.WriteString("  yellow_days_before_expiry, created_by, created_at, updated_at) VALUES\n")

	for i := range entries {
		e := &entries[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', %s, %s, %s, %s, %s, %s, %t, %t, %t, %t, %d, '%s', NOW(), NOW())",
			uuid.New(), tenantID, escapeSQL(e.tradeType),
			sqlAmount(e.minimums[0]), sqlAmount(e.minimums[1]), sqlAmount(e.minimums[2]),
			sqlAmount(e.minimums[3]), sqlAmount(e.minimums[4]), sqlAmount(e.minimums[5]),
			e.required[0], e.required[1], e.required[2], e.required[3],
			e.yellow, createdBy)
	}

	b.WriteString("\nON CONFLICT (tenant_id, trade_type) DO NOTHING;\n\nCOMMIT;\n")

	_, err := out.WriteString(b.String())
	return err
}

func sqlAmount(v *int64) string {
	if v == nil {
		return "NULL"
	}
	return strconv.FormatInt(*v, 10)
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
