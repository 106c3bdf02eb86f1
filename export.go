package main

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mozillazg/go-unidecode"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

// GenerateFrequencyTable renders the ranked terms as a text table for chat
// output.
func GenerateFrequencyTable(terms models.FrequencyTable) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Rank", "Subject Term", "Weighted Count"})
	for _, wt := range terms {
		t.AppendRows([]table.Row{
			{wt.Rank, wt.Term, formatWeight(wt.Weight)},
		})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateFrequencyCSV is the downloadable form of the same table.
func GenerateFrequencyCSV(terms models.FrequencyTable) string {
	buf := &strings.Builder{}
	w := csv.NewWriter(buf)
	w.Write([]string{"Rank", "Subject Term", "Weighted Count"})
	for _, wt := range terms {
		w.Write([]string{strconv.Itoa(wt.Rank), wt.Term, formatWeight(wt.Weight)})
	}
	w.Flush()
	return buf.String()
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// GenerateSummaryMsg builds the post-run summary message: data overview
// plus the frequency statistics the original analyzer printed under the
// table.
func GenerateSummaryMsg(result *models.AnalysisResult) string {
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "%s\n\n", result.Title())
	fmt.Fprintf(buf, "Data overview:\n")
	fmt.Fprintf(buf, "- Total records: %d\n", result.RecordCount)
	if result.FilteredCount != result.RecordCount {
		fmt.Fprintf(buf, "- Records after filtering: %d\n", result.FilteredCount)
	}
	fmt.Fprintf(buf, "- Total usage (%s): %s\n\n", result.MetricLabel, formatWeight(result.TotalWeight))

	top := result.Table[0]
	fmt.Fprintf(buf, "Subject terms (weighted by %s):\n", result.MetricLabel)
	fmt.Fprintf(buf, "- Unique terms: %d\n", len(result.Table))
	fmt.Fprintf(buf, "- Total weighted occurrences: %s\n", formatWeight(result.Table.TotalWeight()))
	fmt.Fprintf(buf, "- Most common term: %q (%s)\n", top.Term, formatWeight(top.Weight))
	fmt.Fprintf(buf, "- Average occurrences per term: %.1f", result.Table.TotalWeight()/float64(len(result.Table)))

	for _, notice := range result.Notices {
		fmt.Fprintf(buf, "\n\n%s", notice)
	}
	return buf.String()
}

var unsafeFileChars = regexp.MustCompile(`[^\w\-. ]`)

// SafeFileName transliterates a title to ASCII and strips everything a
// filesystem could object to, spaces becoming underscores.
func SafeFileName(title string) string {
	name := unidecode.Unidecode(title)
	name = unsafeFileChars.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, " ", "_")
}

// ZipArchive bundles named artifacts into one zip blob for a single chat
// attachment.
func ZipArchive(files map[string][]byte) []byte {
	buf := bytes.NewBuffer(nil)
	w := zip.NewWriter(buf)
	for name, data := range files {
		f, err := w.Create(name)
		if err != nil {
			continue
		}
		f.Write(data)
	}
	w.Close()
	return buf.Bytes()
}
