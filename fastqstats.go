package kmerdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	gzip "github.com/klauspost/pgzip"
	"github.com/mingzhi/gomath/stat/desc/meanvar"
)

// FastqStats summarizes one dumped fastq file.
type FastqStats struct {
	Path    string
	Reads   int64   // number of records.
	Bases   int64   // total sequence bases.
	MeanLen float64 // mean read length.
	VarLen  float64 // read length variance.
}

// Gb returns the sequence volume in gigabases.
func (s FastqStats) Gb() float64 {
	return float64(s.Bases) / 1e9
}

// CountFastq streams a fastq file (plain or gzipped) and counts its
// reads and bases. A file whose line count is not a multiple of four
// is reported as truncated: fasterq-dump writes complete records only,
// so a partial record means the dump did not finish.
func CountFastq(path string) (*FastqStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	stats := &FastqStats{Path: path}
	mv := meanvar.New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	lines := 0
	for scanner.Scan() {
		if lines%4 == 1 {
			n := len(scanner.Bytes())
			stats.Reads++
			stats.Bases += int64(n)
			mv.Increment(float64(n))
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if lines == 0 {
		return nil, fmt.Errorf("%s: empty fastq file", path)
	}
	if lines%4 != 0 {
		return nil, fmt.Errorf("%s: truncated fastq file (%d lines)", path, lines)
	}

	stats.MeanLen = mv.Mean.GetResult()
	stats.VarLen = mv.Var.GetResult()
	return stats, nil
}
