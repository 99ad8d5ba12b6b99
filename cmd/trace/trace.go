// Command trace plots the positions recorded by bounce.
//
// # Usage
//
//	trace input output.png
//
// The input is either a text recording written with Fields = "position",
// or an HDF5 recording (extension .h5 or .hdf5). The figure shows the
// position of every particle against time together with the collision
// ceiling and floor.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PrincetonUniversity/vibroplate/figure"
	"github.com/PrincetonUniversity/vibroplate/hdf5"
	"github.com/PrincetonUniversity/vibroplate/text"
)

const usage = `Usage: trace input output.png

The input is a text or HDF5 recording made by bounce.
`

func main() {
	if len(os.Args) != 3 {
		Fatal(fmt.Errorf("%d arguments provided (2 required)\n\n%s", len(os.Args)-1, usage))
	}

	var rows [][]float64
	var err error
	switch filepath.Ext(os.Args[1]) {
	case ".h5", ".hdf5":
		rows, err = loadHDF5(os.Args[1])
	default:
		rows, err = loadText(os.Args[1])
	}
	if err != nil {
		Fatal(err)
	}
	if len(rows) == 0 {
		Fatal(fmt.Errorf("%s: no records", os.Args[1]))
	}

	p, err := figure.Trace(rows, len(rows[0])-3)
	if err != nil {
		Fatal(err)
	}
	if err := figure.SavePNG(p, os.Args[2]); err != nil {
		Fatal(err)
	}
}

// Fatal prints an error on the standard error and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

// loadText reads a text recording.
func loadText(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return text.ReadRecords(f)
}

// loadHDF5 reads an HDF5 recording into rows laid out like a text recording.
func loadHDF5(path string) (rows [][]float64, err error) {
	var loaders [3]*hdf5.Loader
	for i, name := range []string{"time", "position", "bounds"} {
		l, lerr := hdf5.NewLoader(path, name)
		if lerr != nil {
			return nil, fmt.Errorf("%s: %w", name, lerr)
		}
		defer func() {
			if cerr := l.Close(); err == nil {
				err = cerr
			}
		}()
		loaders[i] = l
	}

	n := loaders[0].Len()
	rows = make([][]float64, 0, n)
	for k := 0; k < n; k++ {
		var row []float64
		for _, l := range loaders {
			data, err := l.Load()
			if err != nil {
				return nil, err
			}
			row = append(row, data...)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
