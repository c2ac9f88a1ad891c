package entities

import "strings"

// FundType is the fund class a user asked for explicitly.
type FundType uint8

const (
	FundTypeUnknown FundType = iota
	FundTypeAny
	FundTypeEquity
	FundTypeDebt
	FundTypeHybrid
)

var fundTypeNames = [...]string{"Unknown", "Any", "Equity", "Debt", "Hybrid"}

func (f FundType) String() string {
	if int(f) < len(fundTypeNames) {
		return fundTypeNames[f]
	}
	return fundTypeNames[FundTypeUnknown]
}

// MarshalText implements encoding.TextMarshaler.
func (f FundType) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Category returns the category a concrete fund type restricts to.
// It reports false for Any and Unknown.
func (f FundType) Category() (Category, bool) {
	switch f {
	case FundTypeEquity:
		return CategoryEquity, true
	case FundTypeDebt:
		return CategoryDebt, true
	case FundTypeHybrid:
		return CategoryHybrid, true
	case FundTypeAny, FundTypeUnknown:
		return CategoryOther, false
	}
	return CategoryOther, false
}

// ParseFundType maps a name to a FundType; unrecognized names yield FundTypeUnknown.
func ParseFundType(s string) FundType {
	return FundType(lookup(fundTypeNames[:], s))
}

// Risk is the user's risk tolerance.
type Risk uint8

const (
	RiskUnknown Risk = iota
	RiskLow
	RiskMedium
	RiskHigh
)

var riskNames = [...]string{"Unknown", "Low", "Medium", "High"}

func (r Risk) String() string {
	if int(r) < len(riskNames) {
		return riskNames[r]
	}
	return riskNames[RiskUnknown]
}

// MarshalText implements encoding.TextMarshaler.
func (r Risk) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// ParseRisk maps a name to a Risk; unrecognized names yield RiskUnknown.
func ParseRisk(s string) Risk {
	return Risk(lookup(riskNames[:], s))
}

// Goal is the user's financial goal.
type Goal uint8

const (
	GoalUnknown Goal = iota
	GoalGrowth
	GoalIncome
	GoalBalanced
)

var goalNames = [...]string{"Unknown", "Growth", "Income", "Balanced"}

func (g Goal) String() string {
	if int(g) < len(goalNames) {
		return goalNames[g]
	}
	return goalNames[GoalUnknown]
}

// MarshalText implements encoding.TextMarshaler.
func (g Goal) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// ParseGoal maps a name to a Goal; unrecognized names yield GoalUnknown.
func ParseGoal(s string) Goal {
	return Goal(lookup(goalNames[:], s))
}

// lookup returns the index of s in names, or 0 (the Unknown slot).
func lookup(names []string, s string) uint8 {
	s = strings.TrimSpace(s)
	for i := 1; i < len(names); i++ {
		if strings.EqualFold(s, names[i]) {
			return uint8(i)
		}
	}
	return 0
}

// UserProfile holds the preferences that drive category filtering.
// Horizon, Knowledge and AgeIncome are informational only.
type UserProfile struct {
	FundType  FundType `json:"fund_type"`
	Risk      Risk     `json:"risk"`
	Goal      Goal     `json:"goal"`
	Horizon   string   `json:"horizon,omitempty"`
	Knowledge string   `json:"knowledge,omitempty"`
	AgeIncome string   `json:"age_income,omitempty"`
}

// Key identifies the profile fields that affect ranking.
func (p UserProfile) Key() string {
	return p.FundType.String() + "|" + p.Risk.String() + "|" + p.Goal.String()
}
