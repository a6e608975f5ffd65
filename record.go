package kmerdb

import (
	"encoding/xml"
	"strconv"
)

// RunRecord is one sequencing run discovered in the SRA.
type RunRecord struct {
	Run      string // run accession, e.g. SRR7811753.
	Sample   string // sample accession, e.g. SRS3758609.
	Organism string // organism name.
	TaxID    int    // NCBI taxonomy id.
	Bases    int64  // total sequenced bases of the run.
}

// Gb returns the run's data volume in gigabases.
func (r RunRecord) Gb() float64 {
	return float64(r.Bases) / 1e9
}

// efetch runinfo document. Only the elements and attributes the
// pipeline needs are mapped; everything else is ignored by the decoder.
type experimentPackageSet struct {
	XMLName  xml.Name            `xml:"EXPERIMENT_PACKAGE_SET"`
	Packages []experimentPackage `xml:"EXPERIMENT_PACKAGE"`
}

type experimentPackage struct {
	Runs []runElement `xml:"RUN_SET>RUN"`
}

type runElement struct {
	Accession  string       `xml:"accession,attr"`
	TotalBases string       `xml:"total_bases,attr"`
	Members    []poolMember `xml:"Pool>Member"`
}

type poolMember struct {
	Accession string `xml:"accession,attr"`
	Organism  string `xml:"organism,attr"`
	TaxID     string `xml:"tax_id,attr"`
}

// decodeRunInfo extracts run records from an efetch runinfo document.
// Runs with missing or unparsable attributes are skipped: upstream
// submissions are occasionally incomplete and such runs are simply not
// candidates. A document that does not parse at all is an error.
func decodeRunInfo(data []byte) ([]RunRecord, error) {
	var doc experimentPackageSet
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &SearchError{Op: "efetch", Msg: "cannot parse runinfo document: " + err.Error()}
	}

	var records []RunRecord
	for _, pkg := range doc.Packages {
		for _, run := range pkg.Runs {
			rec, ok := run.record()
			if !ok {
				continue
			}
			records = append(records, rec)
		}
	}

	return records, nil
}

// record converts one RUN element, reporting whether all expected
// attributes were present.
func (r runElement) record() (RunRecord, bool) {
	if r.Accession == "" || r.TotalBases == "" || len(r.Members) == 0 {
		return RunRecord{}, false
	}

	bases, err := strconv.ParseInt(r.TotalBases, 10, 64)
	if err != nil || bases < 0 {
		return RunRecord{}, false
	}

	m := r.Members[0]
	if m.Accession == "" || m.TaxID == "" {
		return RunRecord{}, false
	}
	taxid, err := strconv.Atoi(m.TaxID)
	if err != nil {
		return RunRecord{}, false
	}

	return RunRecord{
		Run:      r.Accession,
		Sample:   m.Accession,
		Organism: m.Organism,
		TaxID:    taxid,
		Bases:    bases,
	}, true
}
