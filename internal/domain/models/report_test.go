package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
)

func newDraft(t *testing.T) *models.Report {
	t.Helper()
	return models.NewReport("tenant-1", models.Period{Year: 2026, Quarter: 2},
		models.RiskScores{Overall: 65}, "analyst-1")
}

func TestReport_Lifecycle(t *testing.T) {
	r := newDraft(t)
	assert.Equal(t, constants.ReportStatusDraft, r.Status)

	require.NoError(t, r.Submit())
	assert.Equal(t, constants.ReportStatusReview, r.Status)

	require.NoError(t, r.Approve())
	assert.Equal(t, constants.ReportStatusApproved, r.Status)

	require.NoError(t, r.Send([]string{"ciso@client.example"}))
	assert.Equal(t, constants.ReportStatusSent, r.Status)
	assert.NotNil(t, r.SentAt)
	assert.Equal(t, []string{"ciso@client.example"}, r.Recipients)
}

func TestReport_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		run  func(r *models.Report) error
	}{
		{"approve from draft", func(r *models.Report) error { return r.Approve() }},
		{"send from draft", func(r *models.Report) error { return r.Send(nil) }},
		{"double submit", func(r *models.Report) error {
			if err := r.Submit(); err != nil {
				return err
			}
			return r.Submit()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(newDraft(t))
			assert.True(t, errors.IsConflict(err))
		})
	}
}

func TestReport_ImmutableOnceSent(t *testing.T) {
	r := newDraft(t)
	require.NoError(t, r.Submit())
	require.NoError(t, r.Approve())
	require.NoError(t, r.Send(nil))

	assert.True(t, errors.IsConflict(r.UpdateScores(models.RiskScores{Overall: 90})))
	assert.True(t, errors.IsConflict(r.AddComment("analyst-1", "late note")))
}

func TestReport_ApprovedContentIsFrozen(t *testing.T) {
	r := newDraft(t)
	require.NoError(t, r.Submit())
	require.NoError(t, r.Approve())

	assert.True(t, errors.IsConflict(r.UpdateScores(models.RiskScores{Overall: 90})))
}

func TestReport_CommentsWhileMutable(t *testing.T) {
	r := newDraft(t)
	require.NoError(t, r.AddComment("analyst-1", "MFA gaps on admin accounts"))
	require.NoError(t, r.Submit())
	require.NoError(t, r.AddComment("analyst-2", "recommend conditional access"))
	assert.Len(t, r.Comments, 2)
}

func TestPeriod_Validate(t *testing.T) {
	tests := []struct {
		name    string
		period  models.Period
		wantErr bool
	}{
		{"quarter", models.Period{Year: 2026, Quarter: 1}, false},
		{"month", models.Period{Year: 2026, Month: 12}, false},
		{"both set", models.Period{Year: 2026, Quarter: 1, Month: 3}, true},
		{"neither set", models.Period{Year: 2026}, true},
		{"quarter out of range", models.Period{Year: 2026, Quarter: 5}, true},
		{"month out of range", models.Period{Year: 2026, Month: 13}, true},
		{"year out of range", models.Period{Year: 1, Quarter: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.period.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPeriod_String(t *testing.T) {
	assert.Equal(t, "2026-Q1", models.Period{Year: 2026, Quarter: 1}.String())
	assert.Equal(t, "2026-03", models.Period{Year: 2026, Month: 3}.String())
}
