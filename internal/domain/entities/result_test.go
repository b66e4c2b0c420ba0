package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunReportAllMatched(t *testing.T) {
	t.Parallel()

	report := &RunReport{}
	// No attempted channels: vacuously matched.
	assert.True(t, report.AllMatched())
	assert.Equal(t, 0, report.ExitCode())

	report.Results = append(report.Results, VerificationResult{Channel: "GitHub", Matched: true})
	assert.True(t, report.AllMatched())

	report.Results = append(report.Results, VerificationResult{Channel: "PyPI", Matched: false})
	assert.False(t, report.AllMatched())
	assert.Equal(t, 1, report.ExitCode())
}

func TestRunReportWarningsDoNotAffectExitCode(t *testing.T) {
	t.Parallel()

	report := &RunReport{
		Results: []VerificationResult{{Channel: "GitHub", Matched: true}},
	}
	report.AddWarning("PyPI latest version is 1.2.2, not 1.2.3")

	assert.Len(t, report.Warnings, 1)
	assert.Equal(t, 0, report.ExitCode())
}
