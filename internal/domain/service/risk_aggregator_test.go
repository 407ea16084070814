package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mspsec/riskboard/internal/domain/classify"
	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/service"
	"github.com/mspsec/riskboard/pkg/constants"
)

func TestAggregate_BackendOverallIsAuthoritative(t *testing.T) {
	summary := service.Aggregate(models.RiskScores{
		Overall:  82,
		Identity: 10,
		Training: 10,
		Device:   10,
		Cloud:    10,
		Threat:   10,
	})

	assert.Equal(t, 82.0, summary.OverallScore)
	assert.Equal(t, "Low Risk", summary.OverallLevel.Label)
}

func TestAggregate_FallsBackToCategoryMean(t *testing.T) {
	summary := service.Aggregate(models.RiskScores{
		Identity: 50,
		Training: 60,
		Device:   40,
		Cloud:    50,
		Threat:   50,
	})

	assert.Equal(t, 50.0, summary.OverallScore)
	assert.Equal(t, classify.SeverityWarning, summary.OverallLevel.Severity)
}

func TestAggregate_CategoriesUseScoreBands(t *testing.T) {
	summary := service.Aggregate(models.RiskScores{
		Overall:  75,
		Identity: 75,
		Training: 39.9,
		Device:   40,
		Cloud:    70,
		Threat:   0,
	})

	byCategory := map[constants.RiskCategory]classify.Severity{}
	for _, c := range summary.Categories {
		byCategory[c.Category] = c.Rating.Severity
	}

	assert.Equal(t, classify.SeverityGood, byCategory[constants.CategoryIdentity])
	assert.Equal(t, classify.SeverityBad, byCategory[constants.CategoryTraining])
	assert.Equal(t, classify.SeverityWarning, byCategory[constants.CategoryDevice])
	assert.Equal(t, classify.SeverityGood, byCategory[constants.CategoryCloud])
	assert.Equal(t, classify.SeverityBad, byCategory[constants.CategoryThreat])
}

func TestAggregate_CategoryOrderIsStable(t *testing.T) {
	summary := service.Aggregate(models.RiskScores{Overall: 50})
	assert.Len(t, summary.Categories, 5)
	for i, c := range constants.RiskCategories {
		assert.Equal(t, c, summary.Categories[i].Category)
	}
}
