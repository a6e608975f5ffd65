package kmerdb

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearch serves a fixed, ordered set of records and logs the page
// offsets and detail batch sizes it was asked for.
type fakeSearch struct {
	records []RunRecord

	offsets    []int
	batchSizes []int
}

func (f *fakeSearch) Count(term string) (int, error) {
	return len(f.records), nil
}

func (f *fakeSearch) UIDs(term string, retstart, retmax int) ([]string, error) {
	f.offsets = append(f.offsets, retstart)
	var ids []string
	for i := retstart; i < retstart+retmax && i < len(f.records); i++ {
		ids = append(ids, fmt.Sprintf("%d", i))
	}
	return ids, nil
}

func (f *fakeSearch) RunInfo(uids []string) ([]RunRecord, error) {
	f.batchSizes = append(f.batchSizes, len(uids))
	var records []RunRecord
	for _, id := range uids {
		var i int
		fmt.Sscanf(id, "%d", &i)
		records = append(records, f.records[i])
	}
	return records, nil
}

// goodRecord builds a record that passes every default filter.
func goodRecord(i int) RunRecord {
	return RunRecord{
		Run:      fmt.Sprintf("SRR%07d", i),
		Sample:   fmt.Sprintf("SRS%07d", i),
		Organism: "Gulo gulo",
		TaxID:    48420 + i,
		Bases:    5_000_000_000,
	}
}

func emptyTable(t *testing.T) *ResultTable {
	t.Helper()
	table, err := InitResultTable(filepath.Join(t.TempDir(), "database.csv"))
	require.NoError(t, err)
	return table
}

func drain(t *testing.T, sel *Selector) []RunRecord {
	t.Helper()
	var got []RunRecord
	for {
		rec, err := sel.Next()
		if err == ErrExhausted {
			return got
		}
		require.NoError(t, err)
		got = append(got, *rec)
	}
}

func TestSelectorPaging(t *testing.T) {
	fake := &fakeSearch{}
	for i := 0; i < 45; i++ {
		fake.records = append(fake.records, goodRecord(i))
	}

	sel := NewSelector(fake, Terms["mammals"], emptyTable(t))
	got := drain(t, sel)

	// 45 matches at page size 20: offsets 0, 20, 40; last page holds 5.
	assert.Equal(t, []int{0, 20, 40}, fake.offsets)
	for _, n := range fake.batchSizes {
		assert.LessOrEqual(t, n, RunInfoBatch)
	}

	require.Len(t, got, 45)
	for i, rec := range got {
		assert.Equal(t, goodRecord(i), rec, "records must come back in API order")
	}
}

func TestSelectorExhaustedIsSticky(t *testing.T) {
	fake := &fakeSearch{records: []RunRecord{goodRecord(0)}}
	sel := NewSelector(fake, Terms["mammals"], emptyTable(t))

	drain(t, sel)
	for i := 0; i < 3; i++ {
		_, err := sel.Next()
		assert.ErrorIs(t, err, ErrExhausted)
	}
}

func TestSelectorMinBases(t *testing.T) {
	small := goodRecord(0)
	small.Bases = DefaultMinBases - 1
	fake := &fakeSearch{records: []RunRecord{small, goodRecord(1)}}

	sel := NewSelector(fake, Terms["mammals"], emptyTable(t))
	got := drain(t, sel)

	require.Len(t, got, 1)
	assert.Equal(t, goodRecord(1).Run, got[0].Run)
}

func TestSelectorExcludesDefaults(t *testing.T) {
	human := goodRecord(0)
	human.TaxID = 9606
	human.Bases = 900_000_000_000 // size never overrides the exclusion
	fake := &fakeSearch{records: []RunRecord{human, goodRecord(1)}}

	sel := NewSelector(fake, Terms["mammals"], emptyTable(t))
	got := drain(t, sel)

	require.Len(t, got, 1)
	assert.NotEqual(t, 9606, got[0].TaxID)
}

func TestSelectorExtendedExclusions(t *testing.T) {
	fake := &fakeSearch{records: []RunRecord{goodRecord(0), goodRecord(1)}}

	sel := NewSelector(fake, Terms["mammals"], emptyTable(t), goodRecord(0).TaxID)
	got := drain(t, sel)

	// The extra id is excluded and the defaults still hold.
	require.Len(t, got, 1)
	assert.Equal(t, goodRecord(1).Run, got[0].Run)

	mouse := goodRecord(2)
	mouse.TaxID = 10090
	fake2 := &fakeSearch{records: []RunRecord{mouse}}
	sel2 := NewSelector(fake2, Terms["mammals"], emptyTable(t), goodRecord(0).TaxID)
	assert.Empty(t, drain(t, sel2))
}

func TestSelectorSkipsSeenRecords(t *testing.T) {
	table := emptyTable(t)
	require.NoError(t, table.Append(ResultRow{Record: goodRecord(0), Kmer: 17}))

	byRun := goodRecord(3)
	byRun.Run = goodRecord(0).Run
	bySample := goodRecord(4)
	bySample.Sample = goodRecord(0).Sample
	byTaxID := goodRecord(5)
	byTaxID.TaxID = goodRecord(0).TaxID

	fake := &fakeSearch{records: []RunRecord{byRun, bySample, byTaxID, goodRecord(6)}}
	sel := NewSelector(fake, Terms["mammals"], table)
	got := drain(t, sel)

	require.Len(t, got, 1)
	assert.Equal(t, goodRecord(6).Run, got[0].Run)
}

func TestSelectorIdempotent(t *testing.T) {
	build := func() *fakeSearch {
		fake := &fakeSearch{}
		for i := 0; i < 30; i++ {
			rec := goodRecord(i)
			if i%3 == 0 {
				rec.Bases = 1 // filtered
			}
			fake.records = append(fake.records, rec)
		}
		return fake
	}

	table := emptyTable(t)
	first := drain(t, NewSelector(build(), Terms["birds"], table))
	second := drain(t, NewSelector(build(), Terms["birds"], table))

	assert.Equal(t, first, second)
}

// shrinkingSearch reports more matches than it can page: the remote
// result set shrank after the count was taken.
type shrinkingSearch struct {
	fakeSearch
	claimed int
}

func (s *shrinkingSearch) Count(term string) (int, error) {
	return s.claimed, nil
}

func TestSelectorUnderrunIsExhaustion(t *testing.T) {
	fake := &shrinkingSearch{claimed: 100}
	fake.records = []RunRecord{goodRecord(0)}

	sel := NewSelector(fake, Terms["mammals"], emptyTable(t))
	got := drain(t, sel)

	require.Len(t, got, 1)
	// Page at offset 1 comes back empty and ends the session quietly.
	_, err := sel.Next()
	assert.ErrorIs(t, err, ErrExhausted)
}
