package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunReport_Count(t *testing.T) {
	report := RunReport{Files: []FileReport{
		{Path: "a.cs", Outcome: OutcomeUpdated},
		{Path: "b.cs", Outcome: OutcomeUnchanged},
		{Path: "c.cshtml", Outcome: OutcomeUpdated},
		{Path: "d.cshtml", Outcome: OutcomeSkipped},
	}}

	assert.Equal(t, 2, report.Count(OutcomeUpdated))
	assert.Equal(t, 1, report.Count(OutcomeUnchanged))
	assert.Equal(t, 1, report.Count(OutcomeSkipped))
	assert.Zero(t, report.Count(OutcomePending))
	assert.Zero(t, RunReport{}.Count(OutcomeUpdated))
}
