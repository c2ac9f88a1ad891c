// Package usecases - recommend.go filters, scores and ranks funds for a profile.
package usecases

import (
	"cmp"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

// DefaultLimit is the maximum number of funds recommended.
const DefaultLimit = 10

// Score weights. Return weights sum to 1.0; volatility is a penalty.
const (
	WeightThreeYear  = 0.40
	WeightOneYear    = 0.20
	WeightSixMonth   = 0.15
	WeightOneMonth   = 0.10
	WeightOneWeek    = 0.10
	WeightOneDay     = 0.05
	VolatilityWeight = 0.50
)

// Score computes the adjusted score of a fund's signals.
func Score(s entities.Signals) float64 {
	return WeightThreeYear*s.ThreeYear +
		WeightOneYear*s.OneYear +
		WeightSixMonth*s.SixMonth +
		WeightOneMonth*s.OneMonth +
		WeightOneWeek*s.OneWeek +
		WeightOneDay*s.OneDay -
		VolatilityWeight*s.Volatility
}

// RecommendUseCase ranks funds for a profile.
type RecommendUseCase struct {
	limit int
}

// NewRecommendUseCase creates a RecommendUseCase returning at most limit funds.
// Limits outside 1..DefaultLimit fall back to DefaultLimit.
func NewRecommendUseCase(limit int) *RecommendUseCase {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	return &RecommendUseCase{limit: limit}
}

// Recommend returns the top funds for the profile, best first.
// An empty universe yields OutcomeIngestEmpty; an empty filter result yields
// OutcomeNoMatch. Neither is an error.
func (uc *RecommendUseCase) Recommend(funds []entities.FundRecord, profile entities.UserProfile) *entities.Recommendation {
	rec := &entities.Recommendation{
		Profile: profile,
		Allowed: ResolveCategories(profile),
		Funds:   []entities.RankedFund{},
	}

	if len(funds) == 0 {
		rec.Outcome = entities.OutcomeIngestEmpty
		return rec
	}

	// 1. Filter by allowed categories and score
	ranked := make([]entities.RankedFund, 0, len(funds))
	for _, f := range funds {
		if !rec.Allowed.Has(f.Category) {
			continue
		}
		if f.Signals == nil {
			log.Warn().Str("fund", f.Name).Msg("skipping fund without signals")
			continue
		}
		ranked = append(ranked, entities.RankedFund{
			FundRecord:    f,
			AdjustedScore: Score(*f.Signals),
		})
	}

	if len(ranked) == 0 {
		rec.Outcome = entities.OutcomeNoMatch
		return rec
	}

	// 2. Sort by score descending, equal scores keep input order
	slices.SortStableFunc(ranked, func(a, b entities.RankedFund) int {
		return cmp.Compare(b.AdjustedScore, a.AdjustedScore)
	})

	// 3. Take top N
	if len(ranked) > uc.limit {
		ranked = ranked[:uc.limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	rec.Funds = ranked
	rec.Outcome = entities.OutcomeMatched
	return rec
}
