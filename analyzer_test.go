package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

func physicalReport(t *testing.T) *models.UsageReport {
	t.Helper()
	report, err := ParseUsageReport([]byte(
		"Title,Location Name,LC Classification Code,Subjects,Loans\n" +
			"A,Main Library,PQ,Poetry; Fiction,3\n" +
			"B,Main Library,F,Fiction; History,2\n" +
			"C,Branch A,PQ,Poetry,5\n"))
	require.NoError(t, err)
	return report
}

func TestAnalyzePhysical(t *testing.T) {
	result, err := Analyze(AnalysisRequest{
		Report:  physicalReport(t),
		Kind:    models.ReportPhysical,
		Options: models.DefaultVizOptions(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Loans", result.MetricLabel)
	assert.Equal(t, 3, result.RecordCount)
	assert.Equal(t, 3, result.FilteredCount)
	assert.Equal(t, 10.0, result.TotalWeight)
	assert.Empty(t, result.Notices)
	assert.Equal(t, "Physical Collections - Entire Collection", result.Title())

	require.Len(t, result.Table, 3)
	assert.Equal(t, models.WeightedTerm{Term: "Poetry", Weight: 8, Rank: 1}, result.Table[0])
	assert.Equal(t, models.WeightedTerm{Term: "Fiction", Weight: 5, Rank: 2}, result.Table[1])
	assert.Equal(t, models.WeightedTerm{Term: "History", Weight: 2, Rank: 3}, result.Table[2])
}

func TestAnalyzeCountFallback(t *testing.T) {
	report, err := ParseUsageReport([]byte(
		"Title,Subjects\nA,Poetry\nB,Poetry; Fiction\n"))
	require.NoError(t, err)

	result, err := Analyze(AnalysisRequest{Report: report, Kind: models.ReportERes})
	require.NoError(t, err)

	assert.Equal(t, "Records", result.MetricLabel)
	assert.Equal(t, 2.0, result.TotalWeight)
	require.Len(t, result.Notices, 1)
	assert.Contains(t, result.Notices[0], "1 unit of usage")
	assert.Equal(t, 2.0, result.Table[0].Weight)
	assert.Equal(t, "Poetry", result.Table[0].Term)
}

func TestAnalyzeCompositeDownloadsOnly(t *testing.T) {
	report, err := ParseUsageReport([]byte(
		"Name of file,Subjects,File Downloads\nA,Poetry,7\nB,Fiction,3\n"))
	require.NoError(t, err)

	result, err := Analyze(AnalysisRequest{Report: report, Kind: models.ReportDigital})
	require.NoError(t, err)

	assert.Equal(t, "Downloads", result.MetricLabel)
	assert.Equal(t, 10.0, result.TotalWeight)
	assert.Empty(t, result.Notices)
}

func TestAnalyzeFiltered(t *testing.T) {
	result, err := Analyze(AnalysisRequest{
		Report:     physicalReport(t),
		Kind:       models.ReportPhysical,
		Selections: models.FilterSelections{"Location": {"Main Library"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilteredCount)
	assert.Equal(t, 5.0, result.TotalWeight)
	assert.Equal(t, "Location: Main Library (1 selected)", result.FilterSummary)
	assert.Equal(t, "Physical Collections - Filtered (Location: Main Library (1 selected))", result.Title())

	require.Len(t, result.Table, 3)
	assert.Equal(t, "Fiction", result.Table[0].Term)
	assert.Equal(t, 5.0, result.Table[0].Weight)
}

func TestAnalyzeAllSelectedEqualsUnfiltered(t *testing.T) {
	plain, err := Analyze(AnalysisRequest{
		Report: physicalReport(t),
		Kind:   models.ReportPhysical,
	})
	require.NoError(t, err)

	all, err := Analyze(AnalysisRequest{
		Report: physicalReport(t),
		Kind:   models.ReportPhysical,
		Selections: models.FilterSelections{
			"Location": {"Main Library", "Branch A"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, plain.Table, all.Table)
	assert.Equal(t, plain.TotalWeight, all.TotalWeight)
	assert.Empty(t, all.FilterSummary)
	assert.Equal(t, plain.Title(), all.Title())
}

func TestAnalyzeEmptyFilterResult(t *testing.T) {
	_, err := Analyze(AnalysisRequest{
		Report:     physicalReport(t),
		Kind:       models.ReportPhysical,
		Selections: models.FilterSelections{"Location": {"Main Library"}, "LC Classification": {"HT"}},
	})
	assert.ErrorIs(t, err, models.ErrEmptyFilterResult)
}

func TestAnalyzeNoSubjectTerms(t *testing.T) {
	report, err := ParseUsageReport([]byte("Title,Subjects,Loans\nA,,3\nB, .; ,2\n"))
	require.NoError(t, err)

	_, err = Analyze(AnalysisRequest{Report: report, Kind: models.ReportPhysical})
	assert.ErrorIs(t, err, models.ErrNoSubjectTerms)
}

func TestFilterOptions(t *testing.T) {
	report := physicalReport(t)
	schema, err := ResolveSchema(models.ReportPhysical, report.Headers)
	require.NoError(t, err)

	options := FilterOptions(report, schema)
	assert.Equal(t, []string{"Branch A", "Main Library"}, options["Location"])
	assert.Equal(t, []string{"F", "PQ"}, options["LC Classification"])
}
