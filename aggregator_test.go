package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

func weightedRec(subjects string, weight float64) models.Record {
	return models.Record{
		Values: map[string]string{models.SubjectsColumn: subjects},
		Weight: weight,
	}
}

func TestAggregateSubjectsRanking(t *testing.T) {
	records := []models.Record{
		weightedRec("Poetry; Fiction", 3),
		weightedRec("Fiction; History", 2),
		weightedRec("Poetry", 5),
	}

	table := AggregateSubjects(records, models.SubjectsColumn)
	require.Len(t, table, 3)

	assert.Equal(t, models.WeightedTerm{Term: "Poetry", Weight: 8, Rank: 1}, table[0])
	assert.Equal(t, models.WeightedTerm{Term: "Fiction", Weight: 5, Rank: 2}, table[1])
	assert.Equal(t, models.WeightedTerm{Term: "History", Weight: 2, Rank: 3}, table[2])
}

func TestAggregateSubjectsDuplicateTermsInOneRecord(t *testing.T) {
	table := AggregateSubjects([]models.Record{weightedRec("Poetry; Poetry", 2)}, models.SubjectsColumn)
	require.Len(t, table, 1)
	assert.Equal(t, 4.0, table[0].Weight)
}

func TestAggregateSubjectsAdditive(t *testing.T) {
	a := []models.Record{weightedRec("Poetry; Fiction", 3)}
	b := []models.Record{weightedRec("Fiction; History", 2)}

	separate := map[string]float64{}
	for _, table := range []models.FrequencyTable{
		AggregateSubjects(a, models.SubjectsColumn),
		AggregateSubjects(b, models.SubjectsColumn),
	} {
		for _, wt := range table {
			separate[wt.Term] += wt.Weight
		}
	}

	combined := AggregateSubjects(append(append([]models.Record{}, a...), b...), models.SubjectsColumn)
	require.Len(t, combined, len(separate))
	for _, wt := range combined {
		assert.Equal(t, separate[wt.Term], wt.Weight, wt.Term)
	}
}

func TestAggregateSubjectsTieBreakFirstSeen(t *testing.T) {
	records := []models.Record{
		weightedRec("Alpha", 2),
		weightedRec("Beta", 2),
		weightedRec("Gamma", 3),
	}
	table := AggregateSubjects(records, models.SubjectsColumn)
	require.Len(t, table, 3)
	assert.Equal(t, "Gamma", table[0].Term)
	assert.Equal(t, "Alpha", table[1].Term)
	assert.Equal(t, "Beta", table[2].Term)
}

func TestAggregateSubjectsSkipsMissing(t *testing.T) {
	records := []models.Record{
		{Values: map[string]string{}, Weight: 5},
		weightedRec("  ", 5),
		weightedRec(".;", 5),
		weightedRec("Poetry", 1),
	}
	table := AggregateSubjects(records, models.SubjectsColumn)
	require.Len(t, table, 1)
	assert.Equal(t, "Poetry", table[0].Term)
}

func TestFrequencyTableWithMinLength(t *testing.T) {
	records := []models.Record{
		weightedRec("Art; Law; Poetry", 2),
		weightedRec("Poetry", 1),
	}
	table := AggregateSubjects(records, models.SubjectsColumn)

	projected := table.WithMinLength(4)
	require.Len(t, projected, 1)
	assert.Equal(t, "Poetry", projected[0].Term)
	assert.Equal(t, 1, projected[0].Rank)
	assert.Equal(t, 3.0, projected[0].Weight)

	// original table is untouched, the projection can be redone
	assert.Len(t, table, 3)
	assert.Len(t, table.WithMinLength(1), 3)
}

func TestFrequencyTableTopN(t *testing.T) {
	table := models.FrequencyTable{
		{Term: "a", Weight: 3, Rank: 1},
		{Term: "b", Weight: 2, Rank: 2},
		{Term: "c", Weight: 1, Rank: 3},
	}
	assert.Len(t, table.TopN(2), 2)
	assert.Len(t, table.TopN(0), 3)
	assert.Len(t, table.TopN(10), 3)
	assert.Equal(t, 6.0, table.TotalWeight())
}
