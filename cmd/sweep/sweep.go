// Command sweep maps the synchronization of particles between vibrating plates
// over a grid of gaps and amplitudes.
//
// # Usage
//
//	sweep [config_file]
//
// The argument is the optional path to a TOML config file.
//
// For every gap H in Hs and amplitude Amp in Amps, a simulation starts from
// the same particles, runs Warmup discarded steps, then averages the order
// parameter over Window steps. The order parameter is the modulus of the
// mean phasor of the particle positions; it is 1 when particles move in
// lockstep.
//
// The output file has one line per gap and one tab terminated column per
// amplitude. If Figure is set, a heat map of the grid is saved there too.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/PrincetonUniversity/vibroplate"
	"github.com/PrincetonUniversity/vibroplate/figure"
)

const usage = `Usage: sweep [config_file]

The first argument is optional and is the path to a TOML config file.
If no config file is specified, default parameters are used.
`

func main() {
	var conf *Config
	var err error
	switch len(os.Args) {
	case 1:
		conf = DefaultConf
	case 2:
		conf, err = ParseConfig(os.Args[1])
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}
	if err != nil {
		Fatal(err)
	}
	if err := conf.Validate(); err != nil {
		Fatal(err)
	}

	grid := Sweep(conf, os.Stdout)
	if err := save(conf.Output, grid); err != nil {
		Fatal(err)
	}
	if conf.Figure != "" {
		p, err := figure.HeatMap(grid, "Order parameter", "amplitude", "gap")
		if err == nil {
			err = figure.SavePNG(p, conf.Figure)
		}
		if err != nil {
			Fatal(err)
		}
	}
	fmt.Println("done")
}

// Fatal prints an error on the standard error and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

// A cell is the position of one simulation in the grid.
type cell struct{ i, j int }

// Sweep runs one simulation per grid cell on conf.Workers goroutines and
// returns the mean order parameters. Each simulation is owned by a single
// goroutine. Progress is printed to progress if it is not nil.
func Sweep(conf *Config, progress io.Writer) *figure.Grid {
	grid := figure.NewGrid(conf.Amps, conf.Hs)
	policy, _ := vibroplate.PolicyByName(conf.Policy)
	total := len(conf.Hs) * len(conf.Amps)

	cells := make(chan cell)
	var mu sync.Mutex
	var wg sync.WaitGroup
	done := 0
	for range conf.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range cells {
				s := vibroplate.New(conf.Plate(conf.Hs[c.i], conf.Amps[c.j]), conf.Particles(), conf.Dt, policy)
				s.Skip(conf.Warmup)
				v := vibroplate.MeanOrder(s, conf.Window, conf.Radius)

				mu.Lock()
				grid.Z.Set(c.i, c.j, v)
				done++
				if progress != nil {
					fmt.Fprintf(progress, "\r% 3d%%", 100*done/total)
				}
				mu.Unlock()
			}
		}()
	}
	for i := range conf.Hs {
		for j := range conf.Amps {
			cells <- cell{i, j}
		}
	}
	close(cells)
	wg.Wait()
	if progress != nil {
		fmt.Fprintln(progress)
	}
	return grid
}

// save writes the grid to path, one line per row, each value followed by a tab.
func save(path string, grid *figure.Grid) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer checkClose(&err, f)
	return writeGrid(f, grid)
}

// writeGrid writes the grid to w, one line per row, each value followed by a tab.
func writeGrid(w io.Writer, grid *figure.Grid) error {
	bw := bufio.NewWriter(w)
	r, c := grid.Z.Dims()
	var buf []byte
	for i := 0; i < r; i++ {
		buf = buf[:0]
		for j := 0; j < c; j++ {
			buf = strconv.AppendFloat(buf, grid.Z.At(i, j), 'g', -1, 64)
			buf = append(buf, '\t')
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
