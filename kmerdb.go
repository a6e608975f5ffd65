// Package kmerdb discovers public whole-genome sequencing runs in the
// NCBI SRA and drives external tools (sra-tools, kmerfreq, gce) to
// estimate genome size, coverage depth and heterozygosity from their
// k-mer frequency spectra. Results are collected in a per-database CSV
// table inside a results repository.
package kmerdb

import (
	"io"
	"log"
)

// Package loggers. Commands replace them with real sinks; the defaults
// discard so that library use without a registered logger stays quiet.
var (
	Info = log.New(io.Discard, "INFO: ", log.Ldate|log.Ltime)
	Warn = log.New(io.Discard, "WARN: ", log.Ldate|log.Ltime)
)
