package main

import (
	"errors"
	"flag"

	kmerdb "github.com/eaton-lab/kmer-db"
)

// Command to select the next run not yet in the database and process
// it end to end.
type cmdNext struct {
	cmdConfig // embed shared config.
}

func (cmd *cmdNext) Flags(fs *flag.FlagSet) *flag.FlagSet {
	return cmd.cmdConfig.Flags(fs)
}

func (cmd *cmdNext) Run(args []string) {
	cmd.ParseConfig()

	table, err := kmerdb.OpenResultTable(cmd.tablePath())
	if err != nil {
		ERROR.Fatalln(err)
	}

	sel := cmd.newSelector(table)
	rec, err := sel.Next()
	if errors.Is(err, kmerdb.ErrExhausted) {
		WARN.Printf("no new runs found in %s\n", *cmd.db)
		return
	}
	if err != nil {
		ERROR.Fatalln(err)
	}

	logFile := cmd.openRunLog(rec.Run)
	defer logFile.Close()

	WARN.Println("SELECTED RUN")
	INFO.Printf("database: %s\n", *cmd.db)
	INFO.Printf("organism: %s\n", rec.Organism)
	INFO.Printf("taxid: %d\n", rec.TaxID)
	INFO.Printf("biosample: %s\n", rec.Sample)
	INFO.Printf("run: %s\n", rec.Run)
	INFO.Printf("size (Gb): %.2f\n", rec.Gb())

	pipe := cmd.newPipeline(*rec, table)
	row, err := pipe.Execute()
	if err != nil {
		ERROR.Fatalln(err)
	}

	INFO.Printf("genome size: %.4g\n", row.GenomeSize)
	INFO.Printf("coverage: %.2f\n", row.Coverage)
	INFO.Printf("heterozygosity: %.4g\n", row.Heterozygosity)
}
