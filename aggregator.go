package main

import (
	"strings"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

// AggregateSubjects folds the records into a ranked term frequency table.
// Each record's subjects cell is split and cleaned, and the record's weight
// is added to every resulting term. A term repeated within one record adds
// the weight once per occurrence; records without a subjects cell
// contribute nothing. Ties keep first-encountered order.
func AggregateSubjects(records []models.Record, subjectColumn string) models.FrequencyTable {
	totals := map[string]float64{}
	var order []string

	for _, rec := range records {
		raw, ok := rec.Values[subjectColumn]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		for _, term := range SplitSubjects(raw) {
			if _, seen := totals[term]; !seen {
				order = append(order, term)
			}
			totals[term] += rec.Weight
		}
	}

	table := make(models.FrequencyTable, 0, len(order))
	for _, term := range order {
		table = append(table, models.WeightedTerm{Term: term, Weight: totals[term]})
	}
	table.Sort()
	return table
}
