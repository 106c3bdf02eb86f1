package main

import (
	"fmt"
	"strings"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

// FilterAlias binds one logical filter key to its candidate column names,
// ordered by priority.
type FilterAlias struct {
	Key     string
	Aliases []string
}

// ColumnAliasSpec holds the candidate column names for one report kind.
// WeightAliases resolve the single usage column; DownloadAliases and
// ViewAliases exist only for kinds whose metric is naturally a sum of two
// measures and are consulted when no single weight column matches.
type ColumnAliasSpec struct {
	WeightAliases   []string
	DownloadAliases []string
	ViewAliases     []string
	FilterAliases   []FilterAlias
}

// columnAliasSpecs is static configuration, never derived from an upload.
// Alias order is the scan priority, so resolution depends only on this
// table and the header order of the file.
var columnAliasSpecs = map[models.ReportKind]ColumnAliasSpec{
	models.ReportPhysical: {
		WeightAliases: []string{"Loans", "Checkouts", "Circulation"},
		FilterAliases: []FilterAlias{
			{Key: "Location", Aliases: []string{"Location Name"}},
			{Key: "LC Classification", Aliases: []string{"LC Classification Code"}},
		},
	},
	models.ReportDigital: {
		WeightAliases:   []string{"Downloads", "Views", "Digital File Downloads", "Digital File Views"},
		DownloadAliases: []string{"Downloads", "Digital File Downloads"},
		ViewAliases:     []string{"Views", "Digital File Views"},
		FilterAliases: []FilterAlias{
			{Key: "Resource Name", Aliases: []string{"Name of file", "File Name"}},
			{Key: "Collection Name", Aliases: []string{"Collection Name"}},
		},
	},
	models.ReportERes: {
		WeightAliases: []string{"Total_Item_Requests", "Unique_Item_Requests", "Total_Requests", "Searches_Platform"},
		FilterAliases: []FilterAlias{
			{Key: "Title", Aliases: []string{"Title"}},
			{Key: "Platform", Aliases: []string{"Platform"}},
			{Key: "Publisher", Aliases: []string{"Publisher"}},
		},
	},
}

// matchColumnExact returns the first alias that is literally present among
// the headers, scanning aliases in priority order.
func matchColumnExact(aliases []string, headers []string) string {
	for _, alias := range aliases {
		for _, h := range headers {
			if h == alias {
				return h
			}
		}
	}
	return ""
}

// matchColumnFuzzy is the second matching phase: the first header (in file
// order) containing the alias, compared case-insensitively. "Loans" matches
// a "Loans (Total)" export column this way.
func matchColumnFuzzy(aliases []string, headers []string) string {
	for _, alias := range aliases {
		needle := strings.ToLower(alias)
		for _, h := range headers {
			if strings.Contains(strings.ToLower(h), needle) {
				return h
			}
		}
	}
	return ""
}

// matchColumn runs both phases: exact name first, then the case-insensitive
// substring fallback.
func matchColumn(aliases []string, headers []string) string {
	if col := matchColumnExact(aliases, headers); col != "" {
		return col
	}
	return matchColumnFuzzy(aliases, headers)
}

// ResolveSchema matches the alias tables of a report kind against the
// columns present in an upload. The weight column is resolved in three
// steps: exact single-column match, then the composite downloads+views
// check for kinds that define one, then the fuzzy single-column fallback.
// Filter keys with no matching alias are simply omitted.
func ResolveSchema(kind models.ReportKind, headers []string) (models.ResolvedSchema, error) {
	spec, ok := columnAliasSpecs[kind]
	if !ok {
		return models.ResolvedSchema{}, fmt.Errorf("no alias table for report kind %q", kind)
	}

	schema := models.ResolvedSchema{FilterColumns: map[string]string{}}
	schema.WeightColumn = matchColumnExact(spec.WeightAliases, headers)

	if schema.WeightColumn == "" && (len(spec.DownloadAliases) > 0 || len(spec.ViewAliases) > 0) {
		dl := matchColumn(spec.DownloadAliases, headers)
		vw := matchColumn(spec.ViewAliases, headers)
		if dl != "" || vw != "" {
			schema.Composite = true
			schema.DownloadsColumn = dl
			schema.ViewsColumn = vw
		}
	}
	if schema.WeightColumn == "" && !schema.Composite {
		schema.WeightColumn = matchColumnFuzzy(spec.WeightAliases, headers)
	}

	for _, fa := range spec.FilterAliases {
		if col := matchColumn(fa.Aliases, headers); col != "" {
			schema.FilterColumns[fa.Key] = col
			schema.FilterKeys = append(schema.FilterKeys, fa.Key)
		}
	}
	return schema, nil
}
