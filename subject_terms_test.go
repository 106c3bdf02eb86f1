package main

import (
	"reflect"
	"testing"
)

func TestCleanSubjectTerm(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOk bool
	}{
		{"Simple term", "Poetry", "Poetry", true},
		{"Surrounding whitespace", "  Fiction  ", "Fiction", true},
		{"Trailing period", "History.", "History", true},
		{"Trailing semicolon run", "History.;;", "History", true},
		{"Date range with period", "World History (1990-2000).", "World History", true},
		{"Date range mid-term", "Mexico (1821-1910) politics", "Mexico politics", true},
		{"Subdivision separator", "Mexico--Antiquities", "Mexico - Antiquities", true},
		{"Double subdivision", "France--History--Revolution", "France - History - Revolution", true},
		{"Empty", "", "", false},
		{"Only whitespace", "   ", "", false},
		{"Only punctuation", ".;", "", false},
		{"Parenthetical words kept", "Jazz (Music)", "Jazz (Music)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanSubjectTerm(tt.input)
			if ok != tt.wantOk {
				t.Fatalf("CleanSubjectTerm(%q) ok = %v, want %v", tt.input, ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("CleanSubjectTerm(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitSubjects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "Multiple terms",
			input: "Poetry; Fiction; Latin American literature",
			want:  []string{"Poetry", "Fiction", "Latin American literature"},
		},
		{
			name:  "Duplicates kept",
			input: "Poetry; Poetry",
			want:  []string{"Poetry", "Poetry"},
		},
		{
			name:  "Empty segments dropped",
			input: "Poetry;; ;Fiction",
			want:  []string{"Poetry", "Fiction"},
		},
		{
			name:  "Blank cell",
			input: "   ",
			want:  nil,
		},
		{
			name:  "Cleaning applied per segment",
			input: "History (1900-1950).; Mexico--Antiquities",
			want:  []string{"History", "Mexico - Antiquities"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSubjects(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSubjects(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
