package main

import (
	"flag"

	kmerdb "github.com/eaton-lab/kmer-db"
)

// Command to process one named SRR accession.
type cmdRun struct {
	cmdConfig // embed shared config.

	srr *string
}

func (cmd *cmdRun) Flags(fs *flag.FlagSet) *flag.FlagSet {
	cmd.cmdConfig.Flags(fs)
	cmd.srr = fs.String("s", "", "SRR run accession to process.")
	return fs
}

func (cmd *cmdRun) Run(args []string) {
	cmd.ParseConfig()
	if *cmd.srr == "" {
		ERROR.Fatalln("run requires an SRR accession (-s).")
	}

	table, err := kmerdb.OpenResultTable(cmd.tablePath())
	if err != nil {
		ERROR.Fatalln(err)
	}

	logFile := cmd.openRunLog(*cmd.srr)
	defer logFile.Close()

	rec, err := lookupRun(cmd.newEntrez(), *cmd.srr)
	if err != nil {
		ERROR.Fatalln(err)
	}

	WARN.Println("NCBI QUERY")
	INFO.Printf("database: %s\n", *cmd.db)
	INFO.Printf("organism: %s\n", rec.Organism)
	INFO.Printf("taxid: %d\n", rec.TaxID)
	INFO.Printf("biosample: %s\n", rec.Sample)
	INFO.Printf("run: %s\n", rec.Run)
	INFO.Printf("size (Gb): %.2f\n", rec.Gb())

	if table.Contains(*rec) {
		WARN.Printf("%s is already in the database, results are in %s\n", rec.Run, table.Path)
		return
	}

	pipe := cmd.newPipeline(*rec, table)
	row, err := pipe.Execute()
	if err != nil {
		ERROR.Fatalln(err)
	}

	INFO.Printf("genome size: %.4g\n", row.GenomeSize)
	INFO.Printf("coverage: %.2f\n", row.Coverage)
	INFO.Printf("heterozygosity: %.4g\n", row.Heterozygosity)
}

// lookupRun fetches the record for one named accession. The accession
// itself is a valid search term returning the run's uids.
func lookupRun(client kmerdb.SearchClient, srr string) (*kmerdb.RunRecord, error) {
	uids, err := client.UIDs(srr, 0, kmerdb.RunInfoBatch)
	if err != nil {
		return nil, err
	}

	records, err := client.RunInfo(uids)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Run == srr {
			return &rec, nil
		}
	}
	return nil, &kmerdb.SearchError{Op: "efetch", Msg: "no run metadata found for " + srr}
}
