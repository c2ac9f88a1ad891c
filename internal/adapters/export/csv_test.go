package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

func sampleFunds() []entities.RankedFund {
	return []entities.RankedFund{
		{
			FundRecord: entities.FundRecord{
				Name:     "ABC Equity Fund, Direct",
				NAV:      100.5,
				Category: entities.CategoryEquity,
				Signals: &entities.Signals{
					OneDay: 0.5, OneWeek: -1.2, OneMonth: 3, SixMonth: 10.25,
					OneYear: 12, ThreeYear: 40.1, Volatility: 2.5,
				},
			},
			AdjustedScore: 19.5,
			Rank:          1,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleFunds()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(Header, ",") {
		t.Errorf("unexpected header: %v", rows[0])
	}

	row := rows[1]
	if row[0] != "ABC Equity Fund, Direct" || row[1] != "Equity" || row[2] != "100.5" {
		t.Errorf("unexpected row: %v", row)
	}
	if row[4] != "-1.2" || row[10] != "19.5" {
		t.Errorf("unexpected numbers: %v", row)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected header only, got %q", buf.String())
	}
}

func TestWriteFile(t *testing.T) {
	dir, _ := os.MkdirTemp("", "export-test-*")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "out", DefaultFileName)
	if err := WriteFile(path, sampleFunds()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "Scheme Name,Category,Net Asset Value,") {
		t.Errorf("unexpected file contents: %s", data)
	}
}
