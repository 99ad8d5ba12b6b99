// Package text records vibroplate simulations as plain text, one line per
// record, fields separated by single spaces.
//
// A line holds the time, the recorded fields of every particle in order,
// then the collision ceiling and the collision floor of the first particle.
package text

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/PrincetonUniversity/vibroplate"
)

// Fields selects which particle fields are written.
type Fields int

const (
	Position Fields = 1 << iota
	Velocity

	Both = Position | Velocity
)

// ParseFields parses "position", "velocity" or "both".
func ParseFields(s string) (Fields, error) {
	switch s {
	case "position":
		return Position, nil
	case "velocity":
		return Velocity, nil
	case "both":
		return Both, nil
	}
	return 0, fmt.Errorf("text: bad fields %q", s)
}

// Config holds the parameters of the text driver.
type Config struct {
	Output   string    // path of output file, "-" for standard output
	Warmup   int       // number of steps run before recording
	Steps    int       // number of records
	Stride   int       // steps between two records, 1 if zero
	Fields   Fields    // particle fields to write
	Progress io.Writer // progress percentage is printed here if not nil
}

// Run runs a simulation and saves records to a text file.
// A broken pipe on standard output ends the run without error.
func Run(s *vibroplate.Simulation, conf *Config) (err error) {
	var w io.Writer
	if conf.Output == "-" {
		w = os.Stdout
	} else {
		if err := os.MkdirAll(filepath.Dir(conf.Output), 0755); err != nil {
			return err
		}
		var f *os.File
		f, err = os.Create(conf.Output)
		if err != nil {
			return err
		}
		defer checkClose(&err, f)
		w = f
	}

	err = Write(w, s, conf)
	if conf.Output == "-" && IsBrokenPipe(err) {
		return nil
	}
	return err
}

// Write runs the warm-up of s then writes conf.Steps records to w.
func Write(w io.Writer, s *vibroplate.Simulation, conf *Config) error {
	if len(s.Particles) == 0 {
		return errors.New("text: no particles")
	}
	bw := bufio.NewWriter(w)
	stride := max(conf.Stride, 1)
	first := s.Particles[0]

	s.Skip(conf.Warmup)
	var buf []byte
	for k := 0; k < conf.Steps; k++ {
		if conf.Progress != nil {
			fmt.Fprintf(conf.Progress, "\r% 3d%%", 100*k/conf.Steps)
		}
		s.Skip(stride - 1)
		snap := s.Advance()
		buf = AppendRecord(buf[:0], snap, conf.Fields,
			s.Plate.CollisionCeiling(first, snap.T), s.Plate.CollisionFloor(first, snap.T))
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("text: record %d: %w", k, err)
		}
	}
	if conf.Progress != nil {
		fmt.Fprintf(conf.Progress, "\r100%%\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("text: flush: %w", err)
	}
	return nil
}

// AppendRecord appends the line for snap, newline included, to dst.
func AppendRecord(dst []byte, snap vibroplate.Snapshot, f Fields, ceil, floor float64) []byte {
	dst = strconv.AppendFloat(dst, snap.T, 'g', -1, 64)
	if f&Position != 0 {
		for _, z := range snap.Z {
			dst = append(dst, ' ')
			dst = strconv.AppendFloat(dst, z, 'g', -1, 64)
		}
	}
	if f&Velocity != 0 {
		for _, v := range snap.V {
			dst = append(dst, ' ')
			dst = strconv.AppendFloat(dst, v, 'g', -1, 64)
		}
	}
	dst = append(dst, ' ')
	dst = strconv.AppendFloat(dst, ceil, 'g', -1, 64)
	dst = append(dst, ' ')
	dst = strconv.AppendFloat(dst, floor, 'g', -1, 64)
	return append(dst, '\n')
}

// ReadRecords parses a file written by Run. Every line must have the same
// number of fields.
func ReadRecords(r io.Reader) ([][]float64, error) {
	var rows [][]float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, s := range fields {
			x, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("text: line %d: %w", line, err)
			}
			row[i] = x
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("text: line %d: %d fields, want %d", line, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
