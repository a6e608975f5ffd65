package kmerdb

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// kmerNumHeader is the stat-file line carrying the total number of
// k-mer individuals. The spelling is kmerfreq's own.
const kmerNumHeader = "#Kmer indivdual number"

// TwoColumnSuffix is appended to a stat file's name for the two-column
// table gce consumes.
const TwoColumnSuffix = ".2colum"

// Spectrum is a parsed kmerfreq frequency table: for each depth, the
// number of distinct k-mer species observed at that depth.
type Spectrum struct {
	KmerNum int64   // total k-mer individuals counted.
	Depths  []int   // depth column, in file order.
	Counts  []int64 // k-mer species count per depth.
}

// ReadSpectrum parses a .kmer.freq.stat file written by kmerfreq.
func ReadSpectrum(path string) (*Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s := &Spectrum{KmerNum: -1}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, kmerNumHeader) {
			fields := strings.Fields(line)
			n, err := strconv.ParseInt(fields[len(fields)-1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad kmer number line: %q", path, line)
			}
			s.KmerNum = n
			continue
		}

		// Frequency rows start with the depth value; header and comment
		// lines do not.
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		depth, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		count, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad frequency row: %q", path, line)
		}
		s.Depths = append(s.Depths, depth)
		s.Counts = append(s.Counts, count)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if s.KmerNum < 0 {
		return nil, fmt.Errorf("%s: no %q line found", path, kmerNumHeader)
	}
	if len(s.Depths) == 0 {
		return nil, fmt.Errorf("%s: no frequency rows found", path)
	}
	return s, nil
}

// WriteTwoColumn writes the depth and species-count columns as the
// tab-separated two-column file gce expects.
func (s *Spectrum) WriteTwoColumn(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := range s.Depths {
		fmt.Fprintf(w, "%d\t%d\n", s.Depths[i], s.Counts[i])
	}
	return w.Flush()
}

// PeakDepth returns the modal depth of the spectrum, ignoring the
// low-depth error peak below minDepth.
func (s *Spectrum) PeakDepth(minDepth int) int {
	peak := 0
	var best int64 = -1
	for i, d := range s.Depths {
		if d < minDepth {
			continue
		}
		if s.Counts[i] > best {
			best = s.Counts[i]
			peak = d
		}
	}
	return peak
}

// MeanDepth returns the species-weighted mean depth of the spectrum.
func (s *Spectrum) MeanDepth() float64 {
	var sum, n float64
	for i, d := range s.Depths {
		sum += float64(d) * float64(s.Counts[i])
		n += float64(s.Counts[i])
	}
	if n == 0 {
		return 0
	}
	return sum / n
}
