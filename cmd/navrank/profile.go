package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/0xcro3dile/navrank-go/internal/domain/usecases"
)

// question is one line of the interactive profile prompt.
type question struct {
	field  string
	prompt string
}

var questions = []question{
	{"FundType", "Type of Mutual Fund (Equity / Debt / Hybrid / Any)"},
	{"Risk", "Risk Tolerance (Low / Medium / High)"},
	{"Horizon", "Investment Horizon (Short / Long)"},
	{"Goal", "Financial Goal (Growth / Income / Balanced)"},
	{"Knowledge", "Investment Knowledge (Beginner / Intermediate / Expert)"},
	{"AgeIncome", "Age Group / Income Level (e.g., <25 Low / 25-40 Medium / >40 High)"},
}

// promptProfile asks each question on w and reads one answer per line from r.
// A closed input leaves the remaining fields empty.
func promptProfile(r io.Reader, w io.Writer) (map[string]string, error) {
	fmt.Fprintln(w, "Enter your investment profile:")

	fields := make(map[string]string, len(questions))
	scanner := bufio.NewScanner(r)
	for _, q := range questions {
		fmt.Fprintf(w, "%s: ", q.prompt)
		if !scanner.Scan() {
			break
		}
		fields[q.field] = strings.TrimSpace(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	fmt.Fprintln(w)
	return fields, nil
}

// readProfileFile loads profile fields from a YAML mapping, e.g.
//
//	fund_type: Equity
//	risk: High
//	goal: Growth
func readProfileFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}

	fields := map[string]string{}
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing profile file %s: %w", path, err)
	}
	return fields, nil
}

// mergeFields copies non-empty values from src over dst. Keys are
// canonicalized so fund_type and FundType name the same field.
func mergeFields(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = map[string]string{}
	}
	for k, v := range src {
		if strings.TrimSpace(v) != "" {
			dst[usecases.FieldKey(k)] = v
		}
	}
	return dst
}
