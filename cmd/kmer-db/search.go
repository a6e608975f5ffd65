package main

import (
	"errors"
	"flag"

	kmerdb "github.com/eaton-lab/kmer-db"
)

// Command to preview the next eligible runs without processing any.
type cmdSearch struct {
	cmdConfig // embed shared config.

	limit *int
}

func (cmd *cmdSearch) Flags(fs *flag.FlagSet) *flag.FlagSet {
	cmd.cmdConfig.Flags(fs)
	cmd.limit = fs.Int("n", 5, "number of candidates to list.")
	return fs
}

func (cmd *cmdSearch) Run(args []string) {
	cmd.ParseConfig()

	table, err := kmerdb.OpenResultTable(cmd.tablePath())
	if err != nil {
		ERROR.Fatalln(err)
	}

	sel := cmd.newSelector(table)
	for i := 0; i < *cmd.limit; i++ {
		rec, err := sel.Next()
		if errors.Is(err, kmerdb.ErrExhausted) {
			WARN.Printf("search exhausted after %d candidates\n", i)
			return
		}
		if err != nil {
			ERROR.Fatalln(err)
		}
		INFO.Printf("%s\t%s\t%d\t%s\t%.2f Gb\n",
			rec.Run, rec.Sample, rec.TaxID, rec.Organism, rec.Gb())
	}
}
