package kmerdb

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// StatSuffix is appended by kmerfreq to its output prefix.
const StatSuffix = ".kmer.freq.stat"

// CountKmers runs kmerfreq over the fastq files listed in libFile,
// writing results under prefix. It returns the path of the frequency
// stat file.
func (t *Toolkit) CountKmers(libFile, prefix string, kmerSize, threads int) (string, error) {
	cmd := exec.Command(t.Kmerfreq,
		"-k", strconv.Itoa(kmerSize),
		"-t", strconv.Itoa(threads),
		"-p", prefix,
		libFile,
	)
	Info.Printf("executing: %s\n", strings.Join(cmd.Args, " "))
	if _, err := runTool("kmerfreq", cmd); err != nil {
		return "", err
	}

	stat := prefix + StatSuffix
	if _, err := os.Stat(stat); err != nil {
		return "", &ExternalToolError{Tool: "kmerfreq", Err: err}
	}
	return stat, nil
}
