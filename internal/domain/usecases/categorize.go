package usecases

import (
	"strings"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

// keywordGroups are checked in order; the first group with a match wins.
var keywordGroups = []struct {
	category entities.Category
	keywords []string
}{
	{entities.CategoryEquity, []string{"equity", "large cap", "midcap", "small cap", "elss"}},
	{entities.CategoryDebt, []string{"debt", "bond", "income", "gilt", "liquid"}},
	{entities.CategoryHybrid, []string{"hybrid", "balanced", "aggressive"}},
}

// Categorize infers a fund's category from its scheme name.
func Categorize(name string) entities.Category {
	name = strings.ToLower(name)
	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(name, kw) {
				return group.category
			}
		}
	}
	return entities.CategoryOther
}

// CategorizeAll returns a copy of funds with categories set.
func CategorizeAll(funds []entities.FundRecord) []entities.FundRecord {
	out := make([]entities.FundRecord, len(funds))
	for i, f := range funds {
		f.Category = Categorize(f.Name)
		out[i] = f
	}
	return out
}
