package usecases

import (
	"strings"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

// Clean turns parsed rows into unique, validated fund records.
// Category and signals are left unset.
func Clean(raw []entities.RawRecord) []entities.FundRecord {
	// 1. Normalize field names, 2. drop all-empty rows
	rows := make([]entities.RawRecord, 0, len(raw))
	for _, r := range raw {
		row := make(entities.RawRecord, len(r))
		for k, v := range r {
			row[strings.TrimSpace(k)] = v
		}
		if allEmpty(row) {
			continue
		}
		rows = append(rows, row)
	}

	// 3. Deduplicate by name, the last occurrence wins. Names are compared in
	// their normalized form so step 6 cannot reintroduce duplicates.
	last := make(map[string]int, len(rows))
	for i, row := range rows {
		last[normalizeName(row[entities.ColumnSchemeName])] = i
	}

	funds := make([]entities.FundRecord, 0, len(last))
	for i, row := range rows {
		name := normalizeName(row[entities.ColumnSchemeName])
		if last[name] != i {
			continue
		}

		// 4. Require name and NAV
		navText := strings.TrimSpace(row[entities.ColumnNAV])
		if name == "" || navText == "" {
			continue
		}

		// 5. Coerce NAV
		nav, ok := parseNAV(navText)
		if !ok {
			continue
		}

		// 6. Normalized name
		funds = append(funds, entities.FundRecord{Name: name, NAV: nav})
	}

	return funds
}

func allEmpty(row entities.RawRecord) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
