package main

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

func sampleTable() models.FrequencyTable {
	return models.FrequencyTable{
		{Term: "Poetry", Weight: 8, Rank: 1},
		{Term: "Fiction", Weight: 5.5, Rank: 2},
	}
}

func TestGenerateFrequencyTable(t *testing.T) {
	out := GenerateFrequencyTable(sampleTable())
	assert.Contains(t, out, "Subject Term")
	assert.Contains(t, out, "Poetry")
	assert.Contains(t, out, "8")
	assert.Contains(t, out, "5.5")
}

func TestGenerateFrequencyCSV(t *testing.T) {
	out := GenerateFrequencyCSV(sampleTable())
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Rank,Subject Term,Weighted Count", lines[0])
	assert.Equal(t, "1,Poetry,8", lines[1])
	assert.Equal(t, "2,Fiction,5.5", lines[2])
}

func TestGenerateSummaryMsg(t *testing.T) {
	result := &models.AnalysisResult{
		Kind:          models.ReportPhysical,
		MetricLabel:   "Loans",
		RecordCount:   10,
		FilteredCount: 4,
		TotalWeight:   13.5,
		Table:         sampleTable(),
		FilterSummary: "Location: Main Library (1 selected)",
	}

	msg := GenerateSummaryMsg(result)
	assert.Contains(t, msg, "Physical Collections - Filtered (Location: Main Library (1 selected))")
	assert.Contains(t, msg, "Total records: 10")
	assert.Contains(t, msg, "Records after filtering: 4")
	assert.Contains(t, msg, "Total usage (Loans): 13.5")
	assert.Contains(t, msg, "Unique terms: 2")
	assert.Contains(t, msg, `Most common term: "Poetry" (8)`)
}

func TestGenerateSummaryMsgNotice(t *testing.T) {
	result := &models.AnalysisResult{
		Kind:          models.ReportERes,
		MetricLabel:   "Records",
		RecordCount:   2,
		FilteredCount: 2,
		TotalWeight:   2,
		Table:         sampleTable(),
		Notices:       []string{"No standard usage column found for COUNTER Reports (e-resources). Treating all items as having 1 unit of usage."},
	}

	msg := GenerateSummaryMsg(result)
	assert.Contains(t, msg, "Entire Collection")
	assert.NotContains(t, msg, "after filtering")
	assert.Contains(t, msg, "Treating all items as having 1 unit of usage.")
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Physical Collections - Entire Collection", "Physical_Collections_-_Entire_Collection"},
		{"Poésie / música", "Poesie__musica"},
		{"a(b)c", "abc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeFileName(tt.input), tt.input)
	}
}

func TestZipArchive(t *testing.T) {
	blob := ZipArchive(map[string][]byte{
		"table.csv":     []byte("Rank,Term\n"),
		"wordcloud.htm": []byte("<html></html>"),
	})

	r, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	require.Len(t, r.File, 2)

	contents := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		contents[f.Name] = string(data)
	}
	assert.Equal(t, "Rank,Term\n", contents["table.csv"])
	assert.Equal(t, "<html></html>", contents["wordcloud.htm"])
}
