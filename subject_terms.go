package main

import (
	"regexp"
	"strings"
)

// Parenthesized date ranges like "(1990-2000)", with whatever whitespace
// precedes them.
var dateRangeRe = regexp.MustCompile(`\s*\([0-9\-]+\)`)

// CleanSubjectTerm turns one raw subject segment into its canonical form:
// surrounding whitespace trimmed, trailing '.'/';' runs stripped, bracketed
// date ranges removed, and "--" subdivision separators rewritten as " - ".
// The second return is false when nothing usable remains.
func CleanSubjectTerm(raw string) (string, bool) {
	term := strings.TrimSpace(raw)
	if term == "" {
		return "", false
	}
	term = strings.TrimRight(term, ".;")
	term = dateRangeRe.ReplaceAllString(term, "")
	term = strings.ReplaceAll(term, "--", " - ")
	if term == "" {
		return "", false
	}
	return term, true
}

// SplitSubjects splits a ';'-separated subjects cell and cleans every
// segment. Segments that clean to nothing are dropped; duplicates are kept,
// each occurrence counts on its own during aggregation.
func SplitSubjects(subjects string) []string {
	if strings.TrimSpace(subjects) == "" {
		return nil
	}
	var terms []string
	for _, segment := range strings.Split(subjects, ";") {
		if term, ok := CleanSubjectTerm(segment); ok {
			terms = append(terms, term)
		}
	}
	return terms
}
