// Diagnostic tool for inspecting an in-memory nddata.Dataset.
package main

import (
	"fmt"
	"os"

	"github.com/scatterlab/nddata/dataset"
)

func main() {
	fmt.Println("=== ndinfo: synthetic Tof-vs-Spectrum workspace ===")
	fmt.Println()

	d, err := buildSample()
	if err != nil {
		fmt.Printf("ERROR: failed to build sample dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Registry: %s\n", d.Dims())
	fmt.Println()
	walkDataset(d, "", 0)
}

// buildSample constructs a small Dataset representative of a
// time-of-flight spectrum: a Tof bin-edge coordinate and per-spectrum
// counts.
func buildSample() (*dataset.Dataset, error) {
	tofEdges, err := dataset.NewFloat64Variable(
		dataset.CoordTof, "", mustDims(dataset.D(dataset.Tof, 4)),
		dataset.Dimensionless, []float64{1000, 2000, 3000, 4000})
	if err != nil {
		return nil, err
	}
	values, err := dataset.NewFloat64Variable(
		dataset.DataValue, "counts",
		mustDims(dataset.D(dataset.Spectrum, 2), dataset.D(dataset.Tof, 3)),
		dataset.Counts, []float64{10, 20, 30, 40, 50, 60})
	if err != nil {
		return nil, err
	}
	d := dataset.New()
	if err := d.Insert(tofEdges); err != nil {
		return nil, err
	}
	if err := d.Insert(values); err != nil {
		return nil, err
	}
	return d, nil
}

func mustDims(pairs ...dataset.DimExtent) dataset.Dimensions {
	d, err := dataset.NewDimensions(pairs...)
	if err != nil {
		panic(err)
	}
	return d
}

func walkDataset(d *dataset.Dataset, indent string, depth int) {
	if depth > 20 {
		fmt.Printf("%s[MAX DEPTH REACHED]\n", indent)
		return
	}
	fmt.Printf("%sDataset (%d variables):\n", indent, d.Len())
	for _, v := range d.Variables() {
		fmt.Printf("%s  %s %q: dims=%s unit=%s kind=%s\n", indent, v.Tag(), v.Name(), v.Dims(), v.Unit(), v.Kind())
		if v.Tag() == dataset.DataEvents || v.Tag() == dataset.DataTable || v.Tag() == dataset.AttrExperimentLog {
			fmt.Printf("%s    [nested dataset variable, %d elements]\n", indent, v.Dims().Volume())
		}
	}
}
