// Package export writes recommendations as a comma-delimited table.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

// DefaultFileName is the recommendation output written next to the snapshots.
const DefaultFileName = "recommended_funds.csv"

// Header is the column layout of the output table.
var Header = []string{
	"Scheme Name", "Category", "Net Asset Value",
	"1D Return (%)", "1W Return (%)", "1M Return (%)",
	"6M Return (%)", "1Y Return (%)", "3Y Return (%)",
	"Volatility", "Adjusted Score",
}

// WriteCSV writes the header and one row per ranked fund.
func WriteCSV(w io.Writer, funds []entities.RankedFund) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, f := range funds {
		var s entities.Signals
		if f.Signals != nil {
			s = *f.Signals
		}
		row := []string{
			f.Name,
			f.Category.String(),
			formatFloat(f.NAV),
			formatFloat(s.OneDay),
			formatFloat(s.OneWeek),
			formatFloat(s.OneMonth),
			formatFloat(s.SixMonth),
			formatFloat(s.OneYear),
			formatFloat(s.ThreeYear),
			formatFloat(s.Volatility),
			formatFloat(f.AdjustedScore),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %q: %w", f.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to path, creating parent directories.
func WriteFile(path string, funds []entities.RankedFund) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, funds); err != nil {
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
