package main

import (
	"math"
	"strconv"
	"strings"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

// parseNumericCell coerces one raw cell to a number. Missing cells and
// parse failures become 0, as do NaN and infinities, so a weight is always
// finite. Negative values that parse are kept as-is.
func parseNumericCell(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// RecordWeight computes one record's usage weight under the resolved
// schema: the single weight column when one matched, the downloads+views
// sum for composite weighting, and exactly 1 under the count-of-records
// fallback.
func RecordWeight(rec models.Record, schema models.ResolvedSchema) float64 {
	if schema.WeightColumn != "" {
		return parseNumericCell(rec.Values[schema.WeightColumn])
	}
	if schema.Composite {
		var w float64
		if schema.DownloadsColumn != "" {
			w += parseNumericCell(rec.Values[schema.DownloadsColumn])
		}
		if schema.ViewsColumn != "" {
			w += parseNumericCell(rec.Values[schema.ViewsColumn])
		}
		return w
	}
	return 1
}

// AttachWeights fills the Weight field of every record in place.
func AttachWeights(records []models.Record, schema models.ResolvedSchema) {
	for i := range records {
		records[i].Weight = RecordWeight(records[i], schema)
	}
}
