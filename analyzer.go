package main

import (
	"fmt"
	"sort"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

// AnalysisRequest is one full analysis run: a parsed upload, the chosen
// report kind, the user's filter selections and the visualization
// parameters. Each run owns its structures; re-running with new selections
// recomputes everything from the report.
type AnalysisRequest struct {
	Report     *models.UsageReport
	Kind       models.ReportKind
	Selections models.FilterSelections
	Options    models.VizOptions
}

// Analyze resolves the schema, weighs and filters the records and
// aggregates the subject terms into a ranked frequency table.
//
// Terminal conditions come back as the sentinel errors of the models
// package; the count-of-records fallback is not one of them, it only adds a
// notice and switches the metric label.
func Analyze(req AnalysisRequest) (*models.AnalysisResult, error) {
	schema, err := ResolveSchema(req.Kind, req.Report.Headers)
	if err != nil {
		return nil, err
	}

	result := &models.AnalysisResult{
		Kind:        req.Kind,
		Schema:      schema,
		MetricLabel: schema.MetricLabel(),
		RecordCount: len(req.Report.Records),
		Options:     req.Options,
	}
	if schema.CountFallback() {
		result.Notices = append(result.Notices, fmt.Sprintf(
			"No standard usage column found for %s. Treating all items as having 1 unit of usage.",
			req.Kind.Title()))
	}

	AttachWeights(req.Report.Records, schema)

	filtered := ApplyFilters(req.Report.Records, schema, req.Selections)
	if len(filtered) == 0 {
		return nil, models.ErrEmptyFilterResult
	}
	result.FilteredCount = len(filtered)
	result.FilterSummary = FilterSummary(req.Report.Records, schema, req.Selections)
	for _, rec := range filtered {
		result.TotalWeight += rec.Weight
	}

	table := AggregateSubjects(filtered, models.SubjectsColumn)
	if len(table) == 0 {
		return nil, models.ErrNoSubjectTerms
	}
	result.Table = table
	return result, nil
}

// FilterOptions lists the distinct non-missing values of every resolved
// filter column, in alias-table key order. The presentation layer offers
// these as the selectable values; selecting all of them keeps a key
// inactive.
func FilterOptions(report *models.UsageReport, schema models.ResolvedSchema) map[string][]string {
	options := map[string][]string{}
	for _, key := range schema.FilterKeys {
		column := schema.FilterColumns[key]
		seen := map[string]struct{}{}
		var values []string
		for _, rec := range report.Records {
			if missingValue(rec, column) {
				continue
			}
			v := rec.Values[column]
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				values = append(values, v)
			}
		}
		sort.Strings(values)
		options[key] = values
	}
	return options
}
