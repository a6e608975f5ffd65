package main

import (
	"flag"

	kmerdb "github.com/eaton-lab/kmer-db"
)

// Command to locate (and if needed download) the external binaries and
// print their versions. Useful as a one-time setup check; sra-tools
// additionally requires an interactive `vdb-config -i` run, which this
// command reminds about.
type cmdTools struct {
	cmdConfig // embed shared config.
}

func (cmd *cmdTools) Flags(fs *flag.FlagSet) *flag.FlagSet {
	return cmd.cmdConfig.Flags(fs)
}

func (cmd *cmdTools) Run(args []string) {
	cmd.ParseConfig()

	tools, err := kmerdb.LocateToolkit(cmd.toolCache)
	if err != nil {
		ERROR.Fatalln(err)
	}

	WARN.Println("VERSIONS")
	for name, version := range tools.Versions() {
		INFO.Printf("%s: %s\n", name, version)
	}

	WARN.Println("CONFIG")
	INFO.Println("sra-tools requires running vdb-config once before first use.")
	INFO.Println("turning off 'enable local file caching' is recommended:")
	INFO.Printf("  %s -i\n", tools.Prefetch[:len(tools.Prefetch)-len("prefetch")]+"vdb-config")
}
