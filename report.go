package kmerdb

import (
	"fmt"
	"strconv"
	"strings"
)

// estimationHeader marks the summary section of a gce report. The two
// lines following it hold tab-separated column names and values.
const estimationHeader = "Final estimation table:"

// Estimation is the parsed final table of one gce run.
type Estimation struct {
	fields map[string]string
}

// parseEstimation locates the final estimation table in gce's combined
// output and zips its header and value lines. A missing section or a
// truncated table is an error; gce exits zero even when its output is
// unusable, so the shape is checked explicitly here.
func parseEstimation(out string) (*Estimation, error) {
	_, rest, found := strings.Cut(out, estimationHeader)
	if !found {
		return nil, fmt.Errorf("gce output has no %q section", estimationHeader)
	}

	var lines []string
	for _, line := range strings.Split(rest, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
		if len(lines) == 2 {
			break
		}
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("gce estimation table is truncated")
	}

	headers := strings.Split(strings.TrimSpace(lines[0]), "\t")
	values := strings.Split(strings.TrimSpace(lines[1]), "\t")
	if len(values) < len(headers) {
		return nil, fmt.Errorf("gce estimation table has %d headers but %d values", len(headers), len(values))
	}

	est := &Estimation{fields: make(map[string]string)}
	for i, h := range headers {
		est.fields[strings.TrimSpace(h)] = strings.TrimSpace(values[i])
	}
	return est, nil
}

// Float returns a named column as a float64.
func (e *Estimation) Float(key string) (float64, error) {
	v, ok := e.fields[key]
	if !ok {
		return 0, fmt.Errorf("gce estimation table has no %q column", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("gce estimation %s: %w", key, err)
	}
	return f, nil
}

// GenomeSize returns the estimated genome size in bases.
func (e *Estimation) GenomeSize() (float64, error) {
	return e.Float("genome_size")
}

// CoverageDepth returns the estimated coverage depth.
func (e *Estimation) CoverageDepth() (float64, error) {
	return e.Float("coverage_depth")
}

// HetRate returns the estimated heterozygosity rate. Only present in
// heterozygous-mode output.
func (e *Estimation) HetRate() (float64, error) {
	return e.Float("het_rate")
}
