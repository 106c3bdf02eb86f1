package plot

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

// colorSchemes maps the scheme identifiers the UI offers to echarts
// palettes. Unknown identifiers fall back to viridis.
var colorSchemes = map[string][]string{
	"viridis":  {"#440154", "#414487", "#2a788e", "#22a884", "#7ad151", "#fde725"},
	"plasma":   {"#0d0887", "#6a00a8", "#b12a90", "#e16462", "#fca636", "#f0f921"},
	"inferno":  {"#000004", "#420a68", "#932667", "#dd513a", "#fca50a", "#fcffa4"},
	"magma":    {"#000004", "#3b0f70", "#8c2981", "#de4968", "#fe9f6d", "#fcfdbf"},
	"cividis":  {"#00224e", "#35456c", "#666970", "#948e77", "#c8b866", "#fee838"},
	"twilight": {"#e2d9e2", "#9ebbc9", "#4c6fa9", "#5a3764", "#a85362", "#d5bfa9"},
	"rainbow":  {"#6e40aa", "#417de0", "#23abd8", "#2ee5ae", "#aff05b", "#ff704e"},
}

// SchemeColors resolves a color-scheme identifier to its palette.
func SchemeColors(scheme string) []string {
	if colors, ok := colorSchemes[scheme]; ok {
		return colors
	}
	return colorSchemes["viridis"]
}

// ValidScheme reports whether a scheme identifier is known.
func ValidScheme(scheme string) bool {
	_, ok := colorSchemes[scheme]
	return ok
}

// SchemeNames lists the known scheme identifiers.
func SchemeNames() []string {
	names := make([]string, 0, len(colorSchemes))
	for name := range colorSchemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenderWordCloud draws the ranked terms as a word cloud and returns a
// self-contained HTML document. Terms beyond maxTerms are dropped, the rest
// scale with their accumulated weight.
func RenderWordCloud(terms models.FrequencyTable, title, metricLabel, scheme string, maxTerms int) ([]byte, error) {
	terms = terms.TopN(maxTerms)
	if len(terms) == 0 {
		return nil, fmt.Errorf("no terms to draw")
	}

	data := make([]opts.WordCloudData, 0, len(terms))
	for _, wt := range terms {
		data = append(data, opts.WordCloudData{Name: wt.Term, Value: wt.Weight})
	}

	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Subject Terms - " + title,
			Subtitle: "Weighted by " + metricLabel,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Subject Word Cloud",
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithColorsOpts(opts.Colors(SchemeColors(scheme))),
	)
	wc.AddSeries("subjects", data).SetSeriesOptions(
		charts.WithWorldCloudChartOpts(opts.WordCloudChart{
			SizeRange: []float32{12, 80},
			Shape:     "circle",
		}),
	)

	buf := bytes.NewBuffer(nil)
	if err := wc.Render(buf); err != nil {
		return nil, fmt.Errorf("error rendering word cloud: %v", err)
	}
	return buf.Bytes(), nil
}
