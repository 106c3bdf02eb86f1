package models

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// ReportKind identifies the schema family of an uploaded usage file.
// It is chosen once per analysis run and selects the alias tables used to
// resolve the weight column and the filter columns.
type ReportKind string

const (
	ReportPhysical ReportKind = "physical" // circulation exports (loans, checkouts)
	ReportDigital  ReportKind = "digital"  // digital repository access logs (views, downloads)
	ReportERes     ReportKind = "eres"     // COUNTER e-resource usage reports
)

func (k ReportKind) Title() string {
	switch k {
	case ReportPhysical:
		return "Physical Collections"
	case ReportDigital:
		return "Digital Collections"
	case ReportERes:
		return "COUNTER Reports (e-resources)"
	}
	return string(k)
}

func ParseReportKind(s string) (ReportKind, error) {
	switch s {
	case "physical":
		return ReportPhysical, nil
	case "digital":
		return ReportDigital, nil
	case "counter", "eres":
		return ReportERes, nil
	}
	return "", fmt.Errorf("unknown report kind: %q", s)
}

// SubjectsColumn is the one column every upload must carry, values are
// ';'-separated subject term lists.
const SubjectsColumn = "Subjects"

// Terminal run conditions. All of them leave the process usable for a new
// upload or a new filter selection.
var (
	ErrSubjectsColumnMissing = errors.New("csv must contain a 'Subjects' column")
	ErrEmptyFilterResult     = errors.New("no records left after filtering")
	ErrNoSubjectTerms        = errors.New("no subject terms found in the data")
)

// Record is one row of the uploaded table. Values maps trimmed column names
// to raw cells; Weight is attached once by the weight calculator and is the
// only derived field. Index is the original row position.
type Record struct {
	Index  int
	Values map[string]string
	Weight float64
}

// ResolvedSchema is the outcome of matching a report kind's alias tables
// against the columns actually present in an upload. Every column name held
// here is a literal header of the current table.
type ResolvedSchema struct {
	// WeightColumn is the single usage column, empty when none matched.
	WeightColumn string

	// Composite weighting: downloads + views summed per record. Only set
	// when no single weight column matched. Either sub-column may be empty
	// and then contributes nothing.
	Composite       bool
	DownloadsColumn string
	ViewsColumn     string

	// FilterColumns binds logical filter keys to actual column names.
	// FilterKeys preserves the alias-table order of the bound keys.
	FilterColumns map[string]string
	FilterKeys    []string
}

// CountFallback reports whether no usage column resolved at all, in which
// case every record weighs 1 and the displayed metric becomes a record
// count. Callers surface this as a notice, not an error.
func (s ResolvedSchema) CountFallback() bool {
	return s.WeightColumn == "" && !s.Composite
}

// MetricLabel names the usage metric for captions and axis labels.
func (s ResolvedSchema) MetricLabel() string {
	if s.WeightColumn != "" {
		return s.WeightColumn
	}
	if s.Composite {
		switch {
		case s.DownloadsColumn != "" && s.ViewsColumn != "":
			return "Downloads + Views"
		case s.DownloadsColumn != "":
			return "Downloads"
		default:
			return "Views"
		}
	}
	return "Records"
}

// FilterSelections maps a logical filter key to the accepted raw values,
// compared as strings against the bound column.
type FilterSelections map[string][]string

// WeightedTerm is one canonical subject term with its accumulated usage
// weight and 1-based rank.
type WeightedTerm struct {
	Term   string
	Weight float64
	Rank   int
}

// FrequencyTable is a ranked term frequency distribution, sorted by weight
// descending with first-encountered order breaking ties. Terms are unique.
type FrequencyTable []WeightedTerm

// TopN returns the first n entries (the whole table when n <= 0 or larger
// than the table).
func (t FrequencyTable) TopN(n int) FrequencyTable {
	if n <= 0 || n >= len(t) {
		return t
	}
	return t[:n]
}

// WithMinLength drops terms shorter than minLen characters and re-ranks the
// remainder. The projection happens after aggregation so the same table can
// be re-filtered without recomputation.
func (t FrequencyTable) WithMinLength(minLen int) FrequencyTable {
	if minLen <= 1 {
		return t
	}
	out := make(FrequencyTable, 0, len(t))
	for _, wt := range t {
		if utf8.RuneCountInString(wt.Term) >= minLen {
			wt.Rank = len(out) + 1
			out = append(out, wt)
		}
	}
	return out
}

// TotalWeight sums the accumulated weights over all terms.
func (t FrequencyTable) TotalWeight() float64 {
	var total float64
	for _, wt := range t {
		total += wt.Weight
	}
	return total
}

// Sort orders the table by weight descending, keeping the existing order
// for equal weights, and assigns ranks.
func (t FrequencyTable) Sort() {
	sort.SliceStable(t, func(i, j int) bool {
		return t[i].Weight > t[j].Weight
	})
	for i := range t {
		t[i].Rank = i + 1
	}
}

// UsageReport is one parsed upload: trimmed headers in file order plus all
// data rows. It lives for the duration of a single analysis session.
type UsageReport struct {
	Headers []string
	Records []Record
}

// VizOptions are the presentation parameters consumed by the chart layer
// and the post-aggregation projections.
type VizOptions struct {
	MaxTerms      int // word cloud size
	BarTerms      int // bars in the bar chart
	MinTermLength int
	ColorScheme   string
}

// DefaultVizOptions mirrors the defaults of the original analyzer UI.
func DefaultVizOptions() VizOptions {
	return VizOptions{MaxTerms: 100, BarTerms: 20, MinTermLength: 3, ColorScheme: "viridis"}
}

// AnalysisResult is everything one completed run produces for the
// presentation layer.
type AnalysisResult struct {
	Kind          ReportKind
	Schema        ResolvedSchema
	MetricLabel   string
	RecordCount   int // records before filtering
	FilteredCount int
	TotalWeight   float64 // over filtered records
	Table         FrequencyTable
	FilterSummary string
	Notices       []string
	Options       VizOptions
}

// Title builds the "Kind - Filtered (...)" suffix the original app put on
// every artifact.
func (r *AnalysisResult) Title() string {
	if r.FilterSummary == "" {
		return r.Kind.Title() + " - Entire Collection"
	}
	return r.Kind.Title() + " - Filtered (" + r.FilterSummary + ")"
}
