package plot

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

// DrawTermBars renders the top terms as a PNG bar chart, one bar per term,
// heights scaled by accumulated weight.
func DrawTermBars(terms models.FrequencyTable, title, metricLabel string) ([]byte, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("no terms to draw")
	}

	var bars []chart.Value
	for _, wt := range terms {
		bars = append(bars, chart.Value{
			Value: wt.Weight,
			Label: wt.Term,
		})
	}

	graph := chart.BarChart{
		Title: title,
		Background: chart.Style{
			FillColor:   drawing.ColorWhite,
			StrokeColor: drawing.ColorBlue,
		},
		Height:   1024,
		Width:    barChartWidth(len(bars)),
		BarWidth: 30,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name: fmt.Sprintf("Weighted Count (%s)", metricLabel),
		},
	}
	graph.Background.StrokeWidth = 1
	graph.Background.StrokeColor = drawing.ColorFromHex("efefef")

	buffer := bytes.NewBuffer([]byte{})
	err := graph.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// barChartWidth keeps bars readable for small term counts while capping the
// image for large ones.
func barChartWidth(bars int) int {
	width := bars*80 + 200
	if width < 800 {
		width = 800
	}
	if width > 2800 {
		width = 2800
	}
	return width
}
