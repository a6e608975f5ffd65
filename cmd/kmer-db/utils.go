package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	kmerdb "github.com/eaton-lab/kmer-db"
)

func MakeDir(d string) {
	if err := os.MkdirAll(d, 0755); err != nil {
		ERROR.Fatalln(err)
	}
}

func registerLogger() {
	kmerdb.Info = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	kmerdb.Warn = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime)
}

// openRunLog creates the per-run logfile in the repository and tees
// all loggers to it. A logfile left behind by an unfinished run is
// truncated and started over.
func (cmd *cmdConfig) openRunLog(srr string) *os.File {
	MakeDir(cmd.logDir())
	path := filepath.Join(cmd.logDir(), srr+".log")

	if _, err := os.Stat(path); err == nil {
		INFO.Printf("clearing previous unfinished run of %s\n", srr)
	}
	f, err := os.Create(path)
	if err != nil {
		ERROR.Fatalln(err)
	}

	out := io.MultiWriter(os.Stdout, f)
	INFO = log.New(out, "INFO: ", log.Ldate|log.Ltime)
	WARN = log.New(out, "WARN: ", log.Ldate|log.Ltime)
	ERROR = log.New(io.MultiWriter(os.Stderr, f), "ERROR: ", log.Ldate|log.Ltime)
	kmerdb.Info = log.New(out, "INFO: ", log.Ldate|log.Ltime)
	kmerdb.Warn = log.New(out, "WARN: ", log.Ldate|log.Ltime)

	return f
}
