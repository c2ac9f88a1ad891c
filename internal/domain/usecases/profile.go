package usecases

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

// BuildProfile builds a profile from free-form fields. Keys are matched
// ignoring case, '_' and '-' (fundType, fund_type, FundType). Values are
// trimmed and title-cased; unrecognized values become the Unknown member.
func BuildProfile(fields map[string]string) entities.UserProfile {
	caser := cases.Title(language.English)
	norm := make(map[string]string, len(fields))
	for k, v := range fields {
		norm[FieldKey(k)] = caser.String(strings.TrimSpace(v))
	}

	return entities.UserProfile{
		FundType:  entities.ParseFundType(norm["fundtype"]),
		Risk:      entities.ParseRisk(norm["risk"]),
		Goal:      entities.ParseGoal(norm["goal"]),
		Horizon:   norm["horizon"],
		Knowledge: norm["knowledge"],
		AgeIncome: norm["ageincome"],
	}
}

// FieldKey is the canonical form of a profile field name.
func FieldKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.NewReplacer("_", "", "-", "").Replace(k)
}

// ResolveCategories maps a profile to the categories it may be shown.
// Unknown risk or goal contributes nothing; a concrete fund type narrows
// the result to that category.
func ResolveCategories(p entities.UserProfile) entities.CategorySet {
	allowed := riskCategories(p.Risk).Union(goalCategories(p.Goal))

	switch p.FundType {
	case entities.FundTypeAny:
		return allowed
	case entities.FundTypeEquity, entities.FundTypeDebt, entities.FundTypeHybrid:
		c, _ := p.FundType.Category()
		return allowed.Intersect(entities.NewCategorySet(c))
	default:
		return entities.NewCategorySet()
	}
}

func riskCategories(r entities.Risk) entities.CategorySet {
	switch r {
	case entities.RiskLow:
		return entities.NewCategorySet(entities.CategoryDebt)
	case entities.RiskMedium:
		return entities.NewCategorySet(entities.CategoryHybrid, entities.CategoryDebt)
	case entities.RiskHigh:
		return entities.NewCategorySet(entities.CategoryEquity, entities.CategoryHybrid)
	default:
		return entities.NewCategorySet()
	}
}

func goalCategories(g entities.Goal) entities.CategorySet {
	switch g {
	case entities.GoalGrowth:
		return entities.NewCategorySet(entities.CategoryEquity)
	case entities.GoalIncome:
		return entities.NewCategorySet(entities.CategoryDebt)
	case entities.GoalBalanced:
		return entities.NewCategorySet(entities.CategoryHybrid)
	default:
		return entities.NewCategorySet()
	}
}
