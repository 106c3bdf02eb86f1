package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeUploadBytes accepts UTF-8 (with or without BOM) and falls back to
// Latin-1 when the bytes are not valid UTF-8, the same tolerant order the
// exports in the wild require.
func decodeUploadBytes(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("cannot decode file: %v", err)
	}
	return decoded, nil
}

// dedupeHeaders appends _1, _2... to repeated header names so every column
// keeps its own cell in the row map.
func dedupeHeaders(headers []string) []string {
	seen := map[string]int{}
	out := make([]string, len(headers))
	for i, h := range headers {
		name := h
		for n := 1; ; n++ {
			if _, exists := seen[name]; !exists {
				break
			}
			name = fmt.Sprintf("%s_%d", h, n)
		}
		seen[name] = 1
		out[i] = name
	}
	return out
}

// ReadUsageReport parses one uploaded CSV into headers and records.
// Column names are whitespace-trimmed; the literal Subjects column must be
// present or the run fails validation before any processing.
func ReadUsageReport(filePath string) (*models.UsageReport, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %v", err)
	}
	return ParseUsageReport(data)
}

// ParseUsageReport is ReadUsageReport over in-memory bytes.
func ParseUsageReport(data []byte) (*models.UsageReport, error) {
	data, err := decodeUploadBytes(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ','
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read csv header: %v", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	headers = dedupeHeaders(headers)

	hasSubjects := false
	for _, h := range headers {
		if h == models.SubjectsColumn {
			hasSubjects = true
			break
		}
	}
	if !hasSubjects {
		return nil, models.ErrSubjectsColumnMissing
	}

	report := &models.UsageReport{Headers: headers}
	for i := 0; ; i++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read csv row %d: %v", i+2, err)
		}
		values := make(map[string]string, len(headers))
		for n, h := range headers {
			if n < len(row) {
				values[h] = row[n]
			}
		}
		report.Records = append(report.Records, models.Record{Index: i, Values: values})
	}
	return report, nil
}
