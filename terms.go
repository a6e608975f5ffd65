package kmerdb

import "fmt"

// SearchTerm is a prebuilt boolean Entrez query bound to a named
// database. Terms are immutable; a selector is constructed with one.
type SearchTerm struct {
	Name  string
	Query string
}

// wgsQuery wraps an organism clause with the filters that restrict a
// search to public Illumina whole-genome-sequencing fastq runs.
func wgsQuery(organism string) string {
	return fmt.Sprintf(`(((((((%s[Organism])`+
		`AND "public"[Access])`+
		`AND "illumina"[Platform])`+
		`AND "wgs"[Strategy])`+
		`AND "genomic"[Source])`+
		`AND "filetype fastq"[Filter])`+
		`AND "sra nuccore wgs"[Filter])`+
		`AND "strategy whole genome sequencing"[Filter]`, organism)
}

// Terms maps database names to their search terms.
var Terms = map[string]SearchTerm{
	"mammals": {Name: "mammals", Query: wgsQuery("Mammalia")},
	"birds":   {Name: "birds", Query: wgsQuery("Aves")},
	"plants":  {Name: "plants", Query: wgsQuery("Viridiplantae")},
}

// TermByName looks up the search term for a named database.
func TermByName(db string) (SearchTerm, bool) {
	t, ok := Terms[db]
	return t, ok
}

// DefaultExcludeTaxIDs lists taxonomy ids never sampled by a selector:
// human, house mouse, and dog. Callers may extend the set per session;
// the defaults apply unless explicitly overridden.
var DefaultExcludeTaxIDs = []int{9606, 10090, 9615}
