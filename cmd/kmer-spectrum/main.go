// Standalone helper to inspect a kmerfreq frequency table: prints
// summary statistics, optionally writes the two-column file gce
// consumes, and optionally saves a depth histogram plot.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kingpin"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	kmerdb "github.com/eaton-lab/kmer-db"
)

func main() {
	app := kingpin.New("kmer-spectrum", "Summarize and plot a kmerfreq k-mer frequency table")
	app.Version("v0.1")

	statArg := app.Arg("stat-file", "kmerfreq .kmer.freq.stat file").Required().String()
	twoColFlag := app.Flag("two-column", "write the two-column gce input file to this path").Default("").String()
	plotFlag := app.Flag("plot", "save a depth histogram (PDF/PNG by extension) to this path").Default("").String()
	maxDepth := app.Flag("max-depth", "truncate the histogram at this depth").Default("255").Int()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	spectrum, err := kmerdb.ReadSpectrum(*statArg)
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Printf("kmer individuals:\t%d\n", spectrum.KmerNum)
	fmt.Printf("depth classes:\t%d\n", len(spectrum.Depths))
	fmt.Printf("peak depth:\t%d\n", spectrum.PeakDepth(3))
	fmt.Printf("mean depth:\t%.2f\n", spectrum.MeanDepth())

	if *twoColFlag != "" {
		if err := spectrum.WriteTwoColumn(*twoColFlag); err != nil {
			log.Fatalln(err)
		}
		fmt.Printf("wrote two-column table to %s\n", *twoColFlag)
	}

	if *plotFlag != "" {
		if err := savePlot(spectrum, *maxDepth, *plotFlag); err != nil {
			log.Fatalln(err)
		}
		fmt.Printf("wrote depth histogram to %s\n", *plotFlag)
	}
}

// savePlot draws k-mer species counts against depth.
func savePlot(spectrum *kmerdb.Spectrum, maxDepth int, path string) error {
	pts := make(plotter.XYs, 0, len(spectrum.Depths))
	for i, d := range spectrum.Depths {
		if d > maxDepth {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(d), Y: float64(spectrum.Counts[i])})
	}

	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = "k-mer frequency spectrum"
	p.X.Label.Text = "depth"
	p.Y.Label.Text = "k-mer species"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
