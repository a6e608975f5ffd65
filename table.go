package kmerdb

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// resultHeader is the column layout of a database.csv file. The first
// five columns identify the run; the rest are derived by the pipeline.
var resultHeader = []string{
	"Run", "Biosample", "TaxID", "Organism", "Bases",
	"Kmer", "GenomeSize", "Coverage", "Heterozygosity",
}

// ResultRow is one completed pipeline result.
type ResultRow struct {
	Record         RunRecord
	Kmer           int     // k-mer size used for counting.
	GenomeSize     float64 // estimated genome size in bases.
	Coverage       float64 // estimated coverage depth.
	Heterozygosity float64 // estimated heterozygosity rate.
}

func (r ResultRow) fields() []string {
	return []string{
		r.Record.Run,
		r.Record.Sample,
		strconv.Itoa(r.Record.TaxID),
		r.Record.Organism,
		strconv.FormatInt(r.Record.Bases, 10),
		strconv.Itoa(r.Kmer),
		strconv.FormatFloat(r.GenomeSize, 'g', -1, 64),
		strconv.FormatFloat(r.Coverage, 'g', -1, 64),
		strconv.FormatFloat(r.Heterozygosity, 'g', -1, 64),
	}
}

// ResultTable is the local record of runs already processed. Rows are
// append-only and never mutated; membership is keyed independently by
// run accession, sample accession, and taxonomy id. Access is
// single-threaded; concurrent modification by another process during a
// session is not handled.
type ResultTable struct {
	Path string

	rows    [][]string
	runs    map[string]bool
	samples map[string]bool
	taxids  map[int]bool
}

// InitResultTable creates an empty table file with the standard header.
// It refuses to overwrite an existing file.
func InitResultTable(path string) (*ResultTable, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("result table already exists: %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(resultHeader); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return OpenResultTable(path)
}

// OpenResultTable reads a database.csv file and indexes its rows. A
// missing file is an error: the path is expected to point into an
// existing results repository.
func OpenResultTable(path string) (*ResultTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open result table: %w", err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	rows, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse result table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("result table %s has no header row", path)
	}

	t := &ResultTable{
		Path:    path,
		runs:    make(map[string]bool),
		samples: make(map[string]bool),
		taxids:  make(map[int]bool),
	}
	for _, row := range rows[1:] {
		t.index(row)
		t.rows = append(t.rows, row)
	}

	return t, nil
}

func (t *ResultTable) index(row []string) {
	if len(row) < 3 {
		return
	}
	t.runs[row[0]] = true
	t.samples[row[1]] = true
	if id, err := strconv.Atoi(row[2]); err == nil {
		t.taxids[id] = true
	}
}

// Len returns the number of result rows (excluding the header).
func (t *ResultTable) Len() int { return len(t.rows) }

// HasRun reports whether a run accession is already recorded.
func (t *ResultTable) HasRun(run string) bool { return t.runs[run] }

// HasSample reports whether a sample accession is already recorded.
func (t *ResultTable) HasSample(sample string) bool { return t.samples[sample] }

// HasTaxID reports whether a taxonomy id is already recorded.
func (t *ResultTable) HasTaxID(id int) bool { return t.taxids[id] }

// Contains reports whether any of the record's three keys is already
// present in the table.
func (t *ResultTable) Contains(rec RunRecord) bool {
	return t.runs[rec.Run] || t.samples[rec.Sample] || t.taxids[rec.TaxID]
}

// Append writes one result row to the end of the table file and
// indexes it. Existing rows are never touched.
func (t *ResultTable) Append(row ResultRow) error {
	f, err := os.OpenFile(t.Path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("cannot append to result table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	fields := row.fields()
	if err := w.Write(fields); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	t.index(fields)
	t.rows = append(t.rows, fields)
	return nil
}
