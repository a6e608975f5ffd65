package kmerdb

import (
	"os/exec"
	"strconv"
	"strings"
)

// EstimateGenome runs gce in homozygous mode over a two-column
// frequency table. Its coverage_depth estimate seeds the heterozygous
// run.
func (t *Toolkit) EstimateGenome(kmerNum int64, twoColumn string) (*Estimation, error) {
	cmd := exec.Command(t.Gce,
		"-g", strconv.FormatInt(kmerNum, 10),
		"-f", twoColumn,
	)
	Info.Printf("executing: %s\n", strings.Join(cmd.Args, " "))
	out, err := runTool("gce", cmd)
	if err != nil {
		return nil, err
	}

	est, err := parseEstimation(out)
	if err != nil {
		return nil, &ExternalToolError{Tool: "gce", Output: out, Err: err}
	}
	return est, nil
}

// EstimateHeterozygosity runs gce in heterozygous mode with the
// coverage depth obtained from a homozygous run.
func (t *Toolkit) EstimateHeterozygosity(kmerNum int64, twoColumn string, coverage int) (*Estimation, error) {
	cmd := exec.Command(t.Gce,
		"-g", strconv.FormatInt(kmerNum, 10),
		"-f", twoColumn,
		"-H", "1",
		"-c", strconv.Itoa(coverage),
	)
	Info.Printf("executing: %s\n", strings.Join(cmd.Args, " "))
	out, err := runTool("gce", cmd)
	if err != nil {
		return nil, err
	}

	est, err := parseEstimation(out)
	if err != nil {
		return nil, &ExternalToolError{Tool: "gce", Output: out, Err: err}
	}
	return est, nil
}
