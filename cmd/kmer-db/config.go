package main

import (
	"flag"
	"path/filepath"

	"github.com/spf13/viper"

	kmerdb "github.com/eaton-lab/kmer-db"
)

// cmdConfig reads the shared flags and the optional workspace
// configure file. Flags name the workspace; everything tunable lives
// in the configure file with defaults that match the published result
// tables.
type cmdConfig struct {
	// Flags.
	workdir *string // working directory for downloaded data.
	repo    *string // results repository.
	db      *string // target database name.
	config  *string // configure file name.

	// Settings.
	minBases    int64 // minimum run size in bases.
	pageSize    int   // search page size.
	kmerSize    int   // kmerfreq -k.
	kmerThreads int   // kmerfreq -t.
	exclude     []int // extra excluded taxonomy ids.
	entrezTool  string
	entrezEmail string
	toolCache   string // download cache for external binaries.
}

func (cmd *cmdConfig) Flags(fs *flag.FlagSet) *flag.FlagSet {
	cmd.workdir = fs.String("w", "/tmp", "working directory with space for downloaded runs.")
	cmd.repo = fs.String("r", "./kmunity", "results repository path.")
	cmd.db = fs.String("d", "mammals", "target database (mammals, birds, plants).")
	cmd.config = fs.String("c", "config", "configure file name (YAML, optional).")
	return fs
}

// ParseConfig loads the configure file and registers the package
// loggers.
func (cmd *cmdConfig) ParseConfig() {
	viper.SetConfigName(*cmd.config)
	viper.AddConfigPath(*cmd.workdir)
	viper.AddConfigPath(".")

	viper.SetDefault("min_bases", kmerdb.DefaultMinBases)
	viper.SetDefault("page_size", kmerdb.DefaultPageSize)
	viper.SetDefault("kmer.size", kmerdb.DefaultKmerSize)
	viper.SetDefault("kmer.threads", kmerdb.DefaultThreads)
	viper.SetDefault("entrez.tool", kmerdb.DefaultTool)
	viper.SetDefault("entrez.email", kmerdb.DefaultEmail)
	viper.SetDefault("tools.cache", "")
	viper.ReadInConfig()

	cmd.minBases = viper.GetInt64("min_bases")
	cmd.pageSize = viper.GetInt("page_size")
	cmd.kmerSize = viper.GetInt("kmer.size")
	cmd.kmerThreads = viper.GetInt("kmer.threads")
	cmd.entrezTool = viper.GetString("entrez.tool")
	cmd.entrezEmail = viper.GetString("entrez.email")
	cmd.toolCache = viper.GetString("tools.cache")
	for _, id := range viper.GetIntSlice("exclude_taxids") {
		cmd.exclude = append(cmd.exclude, id)
	}

	registerLogger()
}

// tablePath returns the database.csv path inside the repository.
func (cmd *cmdConfig) tablePath() string {
	return filepath.Join(*cmd.repo, *cmd.db, "database.csv")
}

// logDir returns the per-run logfile directory inside the repository.
func (cmd *cmdConfig) logDir() string {
	return filepath.Join(*cmd.repo, *cmd.db, "logfiles")
}

// newEntrez builds the search client from the configured courtesy
// parameters.
func (cmd *cmdConfig) newEntrez() *kmerdb.Entrez {
	e := kmerdb.NewEntrez()
	e.Tool = cmd.entrezTool
	e.Email = cmd.entrezEmail
	return e
}

// newSelector builds a selector for the configured database against
// the opened result table.
func (cmd *cmdConfig) newSelector(table *kmerdb.ResultTable) *kmerdb.Selector {
	term, ok := kmerdb.TermByName(*cmd.db)
	if !ok {
		ERROR.Fatalf("unknown database %q (supported: mammals, birds, plants)\n", *cmd.db)
	}
	sel := kmerdb.NewSelector(cmd.newEntrez(), term, table, cmd.exclude...)
	sel.MinBases = cmd.minBases
	sel.PageSize = cmd.pageSize
	return sel
}

// newPipeline builds the pipeline for one selected record, resolving
// the external toolkit first.
func (cmd *cmdConfig) newPipeline(rec kmerdb.RunRecord, table *kmerdb.ResultTable) *kmerdb.Pipeline {
	tools, err := kmerdb.LocateToolkit(cmd.toolCache)
	if err != nil {
		ERROR.Fatalln(err)
	}

	WARN.Println("VERSIONS")
	for name, version := range tools.Versions() {
		INFO.Printf("%s: %s\n", name, version)
	}

	return &kmerdb.Pipeline{
		Record:   rec,
		Workdir:  *cmd.workdir,
		Tools:    tools,
		Table:    table,
		KmerSize: cmd.kmerSize,
		Threads:  cmd.kmerThreads,
	}
}
