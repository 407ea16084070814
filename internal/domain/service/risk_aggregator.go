// Package service holds domain services that operate on models without
// touching storage or transport.
package service

import (
	"github.com/mspsec/riskboard/internal/domain/classify"
	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/pkg/constants"
)

// CategoryRating pairs a category score with its classified display bucket.
type CategoryRating struct {
	Category constants.RiskCategory `json:"category"`
	Score    float64                `json:"score"`
	Rating   classify.Rating        `json:"rating"`
}

// RiskSummary is the composite banner state for one tenant and period: five
// classified category scores plus the overall risk level.
type RiskSummary struct {
	OverallScore float64          `json:"overall_score"`
	OverallLevel classify.Rating  `json:"overall_level"`
	Categories   []CategoryRating `json:"categories"`
}

// Aggregate builds the composite risk summary from a set of category scores.
// When the supplied overall score is positive it is authoritative (the
// backend-computed maturity score); otherwise the overall falls back to the
// mean of the category scores.
func Aggregate(scores models.RiskScores) RiskSummary {
	overall := scores.Overall
	if overall <= 0 {
		overall = meanCategoryScore(scores)
	}

	categories := make([]CategoryRating, 0, len(constants.RiskCategories))
	for _, c := range constants.RiskCategories {
		v := scores.Category(c)
		categories = append(categories, CategoryRating{
			Category: c,
			Score:    v,
			Rating:   classify.Score(v),
		})
	}

	return RiskSummary{
		OverallScore: overall,
		OverallLevel: classify.RiskLevel(overall),
		Categories:   categories,
	}
}

func meanCategoryScore(scores models.RiskScores) float64 {
	var sum float64
	for _, c := range constants.RiskCategories {
		sum += scores.Category(c)
	}
	return sum / float64(len(constants.RiskCategories))
}
