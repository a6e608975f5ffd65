package kmerdb

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// FetchSRA runs prefetch for one accession, downloading its .sra
// archive into dir. The -X cap raises prefetch's default maximum file
// size, which is far below a whole-genome run.
func (t *Toolkit) FetchSRA(srr, dir string) (string, error) {
	cmd := exec.Command(t.Prefetch, srr, "-O", dir, "-X", "1000000000")
	Info.Printf("executing: prefetch %s -O %s -X 1000000000\n", srr, dir)
	if _, err := runTool("prefetch", cmd); err != nil {
		return "", err
	}

	sra := filepath.Join(dir, srr+".sra")
	fi, err := os.Stat(sra)
	if err != nil {
		// Newer sra-tools nest the archive in a per-accession directory.
		sra = filepath.Join(dir, srr, srr+".sra")
		fi, err = os.Stat(sra)
		if err != nil {
			return "", &ExternalToolError{
				Tool: "prefetch",
				Err:  fmt.Errorf("no sra file found for %s after prefetch", srr),
			}
		}
	}
	Info.Printf("downloaded %s.sra (%.2f Gb)\n", srr, float64(fi.Size())/1e9)

	return sra, nil
}

// DumpFastq runs fasterq-dump for one accession, writing its fastq
// files (paired runs produce two) into dir. The returned paths are
// sorted so mate 1 precedes mate 2.
func (t *Toolkit) DumpFastq(srr, dir string) ([]string, error) {
	cmd := exec.Command(t.FasterqDump, srr, "-O", dir, "-t", dir)
	Info.Printf("executing: fasterq-dump %s -O %s -t %s\n", srr, dir, dir)
	if _, err := runTool("fasterq-dump", cmd); err != nil {
		return nil, err
	}

	fastqs, err := filepath.Glob(filepath.Join(dir, srr+"*.fastq"))
	if err != nil {
		return nil, err
	}
	if len(fastqs) == 0 {
		return nil, &ExternalToolError{
			Tool: "fasterq-dump",
			Err:  fmt.Errorf("no fastq files found for %s after dump", srr),
		}
	}
	sort.Strings(fastqs)

	return fastqs, nil
}
