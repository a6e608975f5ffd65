package kmerdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statFile = `#This file is generated by kmerfreq
#Kmer size	17
#Kmer indivdual number	47896211092
#Kmer species number	2417582984
#Read num	487291022
#Base num	48729102200
#Depth	SpeciesNum	SpeciesRatio	IndividualNum	IndividualRatio
1	91244012	0.037742	91244012	0.001905
2	14018221	0.005798	28036442	0.000585
3	5021312	0.002077	15063936	0.000315
25	61233101	0.025328	1530827525	0.031961
26	59108221	0.024449	1536813746	0.032086
255	1022134	0.000423	260644170	0.005442
`

func writeStat(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "SRR0000001.kmer.freq.stat")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestReadSpectrum(t *testing.T) {
	s, err := ReadSpectrum(writeStat(t, statFile))
	require.NoError(t, err)

	assert.Equal(t, int64(47896211092), s.KmerNum)
	assert.Equal(t, []int{1, 2, 3, 25, 26, 255}, s.Depths)
	assert.Equal(t, int64(91244012), s.Counts[0])
	assert.Equal(t, int64(1022134), s.Counts[5])
}

func TestSpectrumPeakDepth(t *testing.T) {
	s, err := ReadSpectrum(writeStat(t, statFile))
	require.NoError(t, err)

	// Depth 1 dominates in raw species counts but is the error peak.
	assert.Equal(t, 1, s.PeakDepth(0))
	assert.Equal(t, 25, s.PeakDepth(3))
}

func TestSpectrumMeanDepth(t *testing.T) {
	s := &Spectrum{
		Depths: []int{10, 20},
		Counts: []int64{1, 3},
	}
	assert.InDelta(t, 17.5, s.MeanDepth(), 1e-9)
}

func TestWriteTwoColumn(t *testing.T) {
	s, err := ReadSpectrum(writeStat(t, statFile))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "stat"+TwoColumnSuffix)
	require.NoError(t, s.WriteTwoColumn(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"1\t91244012\n2\t14018221\n3\t5021312\n25\t61233101\n26\t59108221\n255\t1022134\n",
		string(data))
}

func TestReadSpectrumMissingKmerNum(t *testing.T) {
	_, err := ReadSpectrum(writeStat(t, "#no totals here\n1\t100\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), kmerNumHeader)
}

func TestReadSpectrumNoRows(t *testing.T) {
	_, err := ReadSpectrum(writeStat(t, "#Kmer indivdual number\t100\n"))
	require.Error(t, err)
}
