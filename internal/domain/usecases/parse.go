// Package usecases contains application business rules.
// Usecases orchestrate entities and depend on port interfaces.
// The pipeline stages here are pure: each returns a new slice and never mutates its input.
package usecases

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

// Delimiter separates fields in the NAV file.
const Delimiter = ";"

var whitespaceRun = regexp.MustCompile(`\s+`)

// ParseNAV splits raw NAV text into records keyed by header name.
// The first non-blank line is the header. Rows with the wrong field count,
// or with a non-numeric NAV, are skipped silently.
func ParseNAV(raw string) []entities.RawRecord {
	records := make([]entities.RawRecord, 0)

	var header []string
	navIdx := -1
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, Delimiter)
		if header == nil {
			header = fields
			for i, name := range header {
				if strings.TrimSpace(name) == entities.ColumnNAV {
					navIdx = i
				}
			}
			continue
		}

		if len(fields) != len(header) {
			continue
		}
		if navIdx >= 0 && strings.TrimSpace(fields[navIdx]) != "" {
			if _, ok := parseNAV(fields[navIdx]); !ok {
				continue
			}
		}

		rec := make(entities.RawRecord, len(header))
		for i, name := range header {
			rec[name] = fields[i]
		}
		records = append(records, rec)
	}

	return records
}

// ParseAndClean runs the parser and the cleaner. Blank or unparseable input
// yields an empty, non-nil slice.
func ParseAndClean(raw string) []entities.FundRecord {
	return Clean(ParseNAV(raw))
}

// parseNAV coerces a NAV field to a finite number.
func parseNAV(s string) (float64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// normalizeName trims a scheme name and collapses internal whitespace.
func normalizeName(name string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(name), " ")
}
