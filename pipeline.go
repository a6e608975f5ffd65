package kmerdb

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Pipeline defaults, matching the parameters the result tables were
// built with.
const (
	DefaultKmerSize = 17
	DefaultThreads  = 4
)

// Pipeline runs the download, k-mer counting and estimation stages for
// one sequencing run and appends the derived row to the result table.
// Stages execute strictly in sequence; any failing stage aborts the
// run and the per-run working directory is removed either way.
type Pipeline struct {
	Record  RunRecord    // the run to process; Record.Run is required.
	Workdir string       // parent of the per-run working directory.
	Tools   *Toolkit     // resolved external binaries.
	Table   *ResultTable // result table to append to; may be nil.

	KmerSize int  // k-mer size, DefaultKmerSize when zero.
	Threads  int  // kmerfreq threads, DefaultThreads when zero.
	KeepWork bool // retain the working directory for inspection.
}

// Execute runs all stages and returns the derived result row.
func (p *Pipeline) Execute() (*ResultRow, error) {
	srr := p.Record.Run
	if srr == "" {
		return nil, fmt.Errorf("pipeline: no run accession")
	}
	kmerSize := p.KmerSize
	if kmerSize == 0 {
		kmerSize = DefaultKmerSize
	}
	threads := p.Threads
	if threads == 0 {
		threads = DefaultThreads
	}

	runDir := filepath.Join(p.Workdir, srr)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, err
	}
	if !p.KeepWork {
		defer func() {
			Info.Printf("removing working directory %s\n", runDir)
			os.RemoveAll(runDir)
		}()
	}

	// Stage 1: download the run archive.
	if _, err := p.Tools.FetchSRA(srr, runDir); err != nil {
		return nil, err
	}

	// Stage 2: dump fastq reads and verify them.
	fastqs, err := p.Tools.DumpFastq(srr, runDir)
	if err != nil {
		return nil, err
	}
	for _, fq := range fastqs {
		stats, err := CountFastq(fq)
		if err != nil {
			return nil, err
		}
		Info.Printf("dumped %s: %d reads, %.2f Gb, mean length %.1f\n",
			filepath.Base(fq), stats.Reads, stats.Gb(), stats.MeanLen)
	}

	libFile := filepath.Join(runDir, srr+"_files.lib")
	if err := os.WriteFile(libFile, []byte(strings.Join(fastqs, "\n")+"\n"), 0644); err != nil {
		return nil, err
	}

	// Stage 3: count k-mers.
	prefix := filepath.Join(runDir, srr)
	statFile, err := p.Tools.CountKmers(libFile, prefix, kmerSize, threads)
	if err != nil {
		return nil, err
	}

	// Stage 4: parse the frequency spectrum and write gce's input.
	spectrum, err := ReadSpectrum(statFile)
	if err != nil {
		return nil, &ExternalToolError{Tool: "kmerfreq", Err: err}
	}
	Info.Printf("kmer individuals: %d, peak depth: %d, mean depth: %.1f\n",
		spectrum.KmerNum, spectrum.PeakDepth(3), spectrum.MeanDepth())

	twoColumn := statFile + TwoColumnSuffix
	if err := spectrum.WriteTwoColumn(twoColumn); err != nil {
		return nil, err
	}

	// Stage 5: homozygous gce run for the coverage depth.
	Info.Println("running gce in homozygous mode to estimate coverage")
	h0, err := p.Tools.EstimateGenome(spectrum.KmerNum, twoColumn)
	if err != nil {
		return nil, err
	}
	depth, err := h0.CoverageDepth()
	if err != nil {
		return nil, &ExternalToolError{Tool: "gce", Err: err}
	}
	Info.Printf("gce coverage depth: %.2f\n", depth)

	// Stage 6: heterozygous gce run seeded with the coverage depth.
	Info.Println("running gce in heterozygous mode")
	h1, err := p.Tools.EstimateHeterozygosity(spectrum.KmerNum, twoColumn, int(math.Round(depth)))
	if err != nil {
		return nil, err
	}

	genomeSize, err := h1.GenomeSize()
	if err != nil {
		return nil, &ExternalToolError{Tool: "gce", Err: err}
	}
	hetRate, err := h1.HetRate()
	if err != nil {
		return nil, &ExternalToolError{Tool: "gce", Err: err}
	}
	coverage, err := h1.CoverageDepth()
	if err != nil {
		return nil, &ExternalToolError{Tool: "gce", Err: err}
	}
	Info.Printf("gce genome size: %.4g\n", genomeSize)
	Info.Printf("gce heterozygosity: %.4g\n", hetRate)

	row := &ResultRow{
		Record:         p.Record,
		Kmer:           kmerSize,
		GenomeSize:     genomeSize,
		Coverage:       coverage,
		Heterozygosity: hetRate,
	}
	if p.Table != nil {
		if err := p.Table.Append(*row); err != nil {
			return nil, err
		}
		Info.Printf("recorded %s in %s\n", srr, p.Table.Path)
	}

	return row, nil
}
