package kmerdb

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExternalToolError reports a subprocess stage that exited non-zero or
// produced unusable output. It carries the tool's combined
// stdout/stderr as the only diagnostic; stages are never retried.
type ExternalToolError struct {
	Tool   string
	Output string
	Err    error
}

func (e *ExternalToolError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s: %v\n%s", e.Tool, e.Err, out)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// MissingDependencyError reports an external binary that could not be
// located on PATH or downloaded. Fatal at startup.
type MissingDependencyError struct {
	Tool string
}

func (e *MissingDependencyError) Error() string {
	return "missing dependency: " + e.Tool
}

// Pinned tool sources. Only this sra-tools release has been verified
// against the pipeline; kmerfreq and gce are distributed as raw
// binaries in the GCE repository.
const sraVersion = "3.0.5"

var (
	sraURL = fmt.Sprintf(
		"https://ftp-trace.ncbi.nlm.nih.gov/sra/sdk/%s/sratoolkit.%s-ubuntu64.tar.gz",
		sraVersion, sraVersion)
	gceURLs = map[string]string{
		"gce":      "https://github.com/fanagislab/GCE/raw/master/gce-1.0.2/gce",
		"kmerfreq": "https://github.com/fanagislab/GCE/raw/master/gce-1.0.2/kmerfreq",
	}
)

// Toolkit holds resolved paths to the external binaries the pipeline
// drives. The pipeline only ever talks to these four programs.
type Toolkit struct {
	Prefetch    string // sra-tools prefetch.
	FasterqDump string // sra-tools fasterq-dump.
	Kmerfreq    string // k-mer counter.
	Gce         string // genome characteristics estimator.
}

// LocateToolkit resolves each tool from PATH, falling back to a
// one-time download into cacheDir (the system temp dir when empty).
// Tools already present in the cache from a previous run are reused.
func LocateToolkit(cacheDir string) (*Toolkit, error) {
	if cacheDir == "" {
		cacheDir = os.TempDir()
	}

	t := &Toolkit{}
	sraBin := filepath.Join(cacheDir, fmt.Sprintf("sratoolkit.%s-ubuntu64", sraVersion), "bin")

	var err error
	if t.Prefetch, err = locate("prefetch", filepath.Join(sraBin, "prefetch"), func() error {
		return downloadSRATools(cacheDir)
	}); err != nil {
		return nil, err
	}
	if t.FasterqDump, err = locate("fasterq-dump", filepath.Join(sraBin, "fasterq-dump"), func() error {
		return downloadSRATools(cacheDir)
	}); err != nil {
		return nil, err
	}
	for _, name := range []string{"kmerfreq", "gce"} {
		name := name
		path, err := locate(name, filepath.Join(cacheDir, name), func() error {
			return downloadBinary(gceURLs[name], filepath.Join(cacheDir, name))
		})
		if err != nil {
			return nil, err
		}
		if name == "kmerfreq" {
			t.Kmerfreq = path
		} else {
			t.Gce = path
		}
	}

	return t, nil
}

// locate returns the tool path from PATH, then from the cache
// location, then after running the fetch fallback.
func locate(name, cached string, fetch func() error) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	if _, err := os.Stat(cached); err == nil {
		return cached, nil
	}

	Info.Printf("local %s not found, downloading\n", name)
	if err := fetch(); err != nil {
		Warn.Printf("%s download failed: %v\n", name, err)
		return "", &MissingDependencyError{Tool: name}
	}
	if _, err := os.Stat(cached); err != nil {
		return "", &MissingDependencyError{Tool: name}
	}
	return cached, nil
}

// downloadSRATools fetches and extracts the pinned sra-tools release.
func downloadSRATools(dir string) error {
	tarball := filepath.Join(dir, filepath.Base(sraURL))
	if _, err := os.Stat(tarball); err != nil {
		if err := downloadBinary(sraURL, tarball); err != nil {
			return err
		}
	}

	cmd := exec.Command("tar", "xzf", tarball, "-C", dir)
	if _, err := runTool("tar", cmd); err != nil {
		return err
	}
	return nil
}

// downloadBinary fetches a url to path and marks it executable.
func downloadBinary(url, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return err
	}
	return nil
}

// Versions probes each tool for its version string, for the log header
// of a run.
func (t *Toolkit) Versions() map[string]string {
	return map[string]string{
		"prefetch":     lastField(t.Prefetch, "-V"),
		"fasterq-dump": lastField(t.FasterqDump, "-V"),
		"kmerfreq":     versionLine(t.Kmerfreq, "-h"),
		"gce":          versionLine(t.Gce, "-V"),
	}
}

// lastField runs a version probe and returns the last whitespace field
// of its output.
func lastField(path string, args ...string) string {
	out, err := runTool(filepath.Base(path), exec.Command(path, args...))
	fields := strings.Fields(out)
	if err != nil || len(fields) == 0 {
		return "unknown"
	}
	return fields[len(fields)-1]
}

// versionLine runs a probe and returns the last field of the line
// containing "Version". Some tools print usage to stderr and exit
// non-zero on -h, so the error is ignored when output was produced.
func versionLine(path string, args ...string) string {
	out, _ := runTool(filepath.Base(path), exec.Command(path, args...))
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Version") {
			fields := strings.Fields(line)
			return fields[len(fields)-1]
		}
	}
	return "unknown"
}

// runTool executes a prepared command, capturing combined output. A
// non-zero exit wraps the output in an ExternalToolError.
func runTool(name string, cmd *exec.Cmd) (string, error) {
	buf := new(bytes.Buffer)
	cmd.Stdout = buf
	cmd.Stderr = buf
	if err := cmd.Run(); err != nil {
		return buf.String(), &ExternalToolError{Tool: name, Output: buf.String(), Err: err}
	}
	return buf.String(), nil
}
