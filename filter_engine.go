package main

import (
	"fmt"
	"strings"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

// missingValue reports whether a cell counts as missing for filtering:
// absent from the row or blank after trimming. Missing values never match
// an active filter.
func missingValue(rec models.Record, column string) bool {
	v, ok := rec.Values[column]
	return !ok || strings.TrimSpace(v) == ""
}

// distinctValues collects the distinct non-missing values of one column
// over the entire unfiltered record set.
func distinctValues(records []models.Record, column string) map[string]struct{} {
	seen := map[string]struct{}{}
	for _, rec := range records {
		if missingValue(rec, column) {
			continue
		}
		seen[rec.Values[column]] = struct{}{}
	}
	return seen
}

// activeSelections reduces the user's selections to the keys that actually
// restrict something: the key must be bound to a column, and the accepted
// set must be strictly smaller than the distinct non-missing values of that
// column. Selecting everything is a no-op and stays out of any summary.
func activeSelections(records []models.Record, schema models.ResolvedSchema, selections models.FilterSelections) map[string]map[string]struct{} {
	active := map[string]map[string]struct{}{}
	for key, values := range selections {
		column, bound := schema.FilterColumns[key]
		if !bound || len(values) == 0 {
			continue
		}
		accepted := map[string]struct{}{}
		for _, v := range values {
			accepted[v] = struct{}{}
		}
		if len(accepted) < len(distinctValues(records, column)) {
			active[key] = accepted
		}
	}
	return active
}

// ApplyFilters narrows the record set with AND semantics across logical
// filter keys. The full unfiltered set decides which selections are active,
// so applying the same selection twice returns the same records.
func ApplyFilters(records []models.Record, schema models.ResolvedSchema, selections models.FilterSelections) []models.Record {
	active := activeSelections(records, schema, selections)
	if len(active) == 0 {
		return records
	}

	var out []models.Record
	for _, rec := range records {
		keep := true
		for key, accepted := range active {
			column := schema.FilterColumns[key]
			if missingValue(rec, column) {
				keep = false
				break
			}
			if _, ok := accepted[rec.Values[column]]; !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out
}

// FilterSummary builds the human-readable description of the actively
// filtering keys, in alias-table order: `Key: first... (n selected)` parts
// joined with " | ". Returns "" when nothing restricts the set.
func FilterSummary(records []models.Record, schema models.ResolvedSchema, selections models.FilterSelections) string {
	active := activeSelections(records, schema, selections)
	var parts []string
	for _, key := range schema.FilterKeys {
		if _, ok := active[key]; !ok {
			continue
		}
		values := selections[key]
		ellipsis := ""
		if len(values) > 1 {
			ellipsis = "..."
		}
		parts = append(parts, fmt.Sprintf("%s: %s%s (%d selected)", key, values[0], ellipsis, len(values)))
	}
	return strings.Join(parts, " | ")
}
