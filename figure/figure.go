// Package figure draws PNG figures of vibroplate recordings and sweeps.
package figure

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Size of saved figures.
const (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
)

// Trace returns a plot of a text recording with n particle columns:
// one line per particle position against time, plus the collision ceiling
// and floor held in the last two columns.
func Trace(rows [][]float64, n int) (*plot.Plot, error) {
	if len(rows) == 0 {
		return nil, errors.New("figure: no records")
	}
	if len(rows[0]) != n+3 {
		return nil, fmt.Errorf("figure: %d columns for %d particles, want %d", len(rows[0]), n, n+3)
	}

	p := plot.New()
	p.Title.Text = "Particles between vibrating plates"
	p.X.Label.Text = "t"
	p.Y.Label.Text = "z"

	column := func(j int) plotter.XYs {
		pts := make(plotter.XYs, len(rows))
		for i, row := range rows {
			pts[i].X = row[0]
			pts[i].Y = row[j]
		}
		return pts
	}

	for j := 1; j <= n+2; j++ {
		line, err := plotter.NewLine(column(j))
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(j - 1)
		if j > n {
			// bounds
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
	}
	return p, nil
}

// A Grid holds values sampled on a rectangular grid of parameters.
// Z.At(i, j) is the value for X[j] and Y[i].
type Grid struct {
	X, Y []float64
	Z    *mat.Dense
}

// NewGrid returns a grid of zeros for the given axes, which must not be empty.
func NewGrid(x, y []float64) *Grid {
	return &Grid{X: x, Y: y, Z: mat.NewDense(len(y), len(x), nil)}
}

// gridXYZ adapts a Grid to plotter.GridXYZ.
type gridXYZ struct{ g *Grid }

func (g gridXYZ) Dims() (c, r int)   { return len(g.g.X), len(g.g.Y) }
func (g gridXYZ) Z(c, r int) float64 { return g.g.Z.At(r, c) }
func (g gridXYZ) X(c int) float64    { return g.g.X[c] }
func (g gridXYZ) Y(r int) float64    { return g.g.Y[r] }

// HeatMap returns a heat map of g.
func HeatMap(g *Grid, title, xlabel, ylabel string) (*plot.Plot, error) {
	if len(g.X) < 2 || len(g.Y) < 2 {
		return nil, errors.New("figure: heat map needs at least 2 values per axis")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewHeatMap(gridXYZ{g}, palette.Heat(12, 1)))
	return p, nil
}

// SavePNG draws p and writes it as a PNG file, creating parent directories.
func SavePNG(p *plot.Plot, filename string) (err error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer checkClose(&err, f)
	return WritePNG(p, f)
}

// WritePNG draws p on a PNG canvas and writes it to w.
func WritePNG(p *plot.Plot, w io.Writer) error {
	c := vgimg.New(Width, Height)
	p.Draw(draw.New(c))
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("figure: png: %w", err)
	}
	return nil
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
