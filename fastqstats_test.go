package kmerdb

import (
	"os"
	"path/filepath"
	"testing"

	gzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fastq = `@read1
ACGTACGTAC
+
IIIIIIIIII
@read2
ACGTAC
+
IIIIII
`

func TestCountFastq(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SRR_1.fastq")
	require.NoError(t, os.WriteFile(path, []byte(fastq), 0644))

	stats, err := CountFastq(path)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Reads)
	assert.Equal(t, int64(16), stats.Bases)
	assert.InDelta(t, 8.0, stats.MeanLen, 1e-9)
	assert.InDelta(t, 8.0, stats.VarLen, 1e-9)
}

func TestCountFastqGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SRR_1.fastq.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(fastq))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	stats, err := CountFastq(path)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Reads)
	assert.Equal(t, int64(16), stats.Bases)
}

func TestCountFastqTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SRR_1.fastq")
	require.NoError(t, os.WriteFile(path, []byte("@read1\nACGT\n+\n"), 0644))

	_, err := CountFastq(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestCountFastqEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SRR_1.fastq")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := CountFastq(path)
	require.Error(t, err)
}
