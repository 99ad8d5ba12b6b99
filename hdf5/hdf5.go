// Package hdf5 records vibroplate simulations in HDF5 files.
package hdf5

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/PrincetonUniversity/vibroplate"
	"gonum.org/v1/hdf5"
)

// A Dataset stipulates how to generate data and where to store them in the HDF5 file.
type Dataset struct {
	// Name the name of the dataset in the HDF5 file.
	Name string

	// Val is a value of the same concrete type as the underlying type of the data.
	Val interface{}

	// Dims are the dimensions of the data for a single record.
	Dims []int

	// Data is a function that produces the data of a snapshot
	// as a pointer to a value or to a slice of row-major concrete values.
	Data func(s vibroplate.Snapshot) interface{}

	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// Config holds the parameters of the HDF5 driver.
type Config struct {
	Output   string      // path of output file
	Warmup   int         // number of steps run before recording
	Steps    int         // number of records
	Stride   int         // steps between two records, 1 if zero
	Attrs    interface{} // pointer to a struct saved as attributes of the "config" dataset
	Datasets []*Dataset  // list of datasets
	Progress io.Writer   // progress percentage is printed here if not nil
}

// Datasets returns the usual datasets for n particles: "time",
// "position", "velocity", and "bounds" which holds the collision ceiling
// and floor of particle q.
func Datasets(n int, p vibroplate.Plate, q vibroplate.Particle) []*Dataset {
	return []*Dataset{
		{
			Name: "time",
			Val:  0.0,
			Data: func(s vibroplate.Snapshot) interface{} { return &s.T },
		},
		{
			Name: "position",
			Val:  0.0,
			Dims: []int{n},
			Data: func(s vibroplate.Snapshot) interface{} { return &s.Z },
		},
		{
			Name: "velocity",
			Val:  0.0,
			Dims: []int{n},
			Data: func(s vibroplate.Snapshot) interface{} { return &s.V },
		},
		{
			Name: "bounds",
			Val:  0.0,
			Dims: []int{2},
			Data: func(s vibroplate.Snapshot) interface{} {
				b := []float64{p.CollisionCeiling(q, s.T), p.CollisionFloor(q, s.T)}
				return &b
			},
		},
	}
}

// Run runs a simulation and saves data to an HDF5 file.
func Run(s *vibroplate.Simulation, conf *Config) (err error) {
	if err := os.MkdirAll(filepath.Dir(conf.Output), 0755); err != nil {
		return err
	}

	file, err := hdf5.CreateFile(conf.Output, hdf5.F_ACC_TRUNC)
	if err != nil {
		return err
	}
	defer checkClose(&err, file)

	if err := saveConfig(file, conf); err != nil {
		return err
	}

	for _, d := range conf.Datasets {
		if err := d.init(file, conf); err != nil {
			return fmt.Errorf("hdf5: dataset %q: %w", d.Name, err)
		}
		defer checkClose(&err, d)
	}

	stride := max(conf.Stride, 1)
	s.Skip(conf.Warmup)
	for k := uint(0); k < uint(conf.Steps); k++ {
		// show progress as percentage
		if conf.Progress != nil {
			fmt.Fprintf(conf.Progress, "\r% 3d%%", 100*k/uint(conf.Steps))
		}

		s.Skip(stride - 1)
		snap := s.Advance()
		for _, d := range conf.Datasets {
			start := make([]uint, len(d.Dims)+1)
			start[0] = k
			if err := d.fspace.SetOffset(start); err != nil {
				return err
			}
			if err := d.dset.WriteSubset(d.Data(snap), d.mspace, d.fspace); err != nil {
				return fmt.Errorf("hdf5: write %q at record %d: %w", d.Name, k, err)
			}
		}
	}
	if conf.Progress != nil {
		fmt.Fprintf(conf.Progress, "\r100%%\n")
	}
	return nil
}

// saveConfig creates a "config" dataset with a null dataspace whose attributes
// reflect the whole configuration plus some other appropriate metadata.
func saveConfig(file *hdf5.File, conf *Config) (err error) {
	null, err := hdf5.CreateDataspace(hdf5.S_NULL)
	if err != nil {
		return err
	}
	defer checkClose(&err, null)

	anytype, err := hdf5.NewDatatypeFromValue(0)
	if err != nil {
		return err
	}
	defer checkClose(&err, anytype)

	dset, err := file.CreateDataset("config", anytype, null)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	dtype, err := hdf5.NewDatatypeFromValue("")
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	scalar, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	defer checkClose(&err, scalar)

	attr, err := dset.CreateAttribute("Time", dtype, scalar)
	if err != nil {
		return err
	}
	defer checkClose(&err, attr)

	now := time.Now().String()
	if err := attr.Write(&now, dtype); err != nil {
		return err
	}

	if conf.Attrs == nil {
		return nil
	}
	v := reflect.ValueOf(conf.Attrs).Elem()
	for i := 0; i < v.NumField(); i++ {
		// only scalars fit in a scalar dataspace
		switch v.Field(i).Kind() {
		case reflect.Slice, reflect.Map, reflect.Struct, reflect.Ptr, reflect.Interface:
			continue
		}
		err := func() (err error) {
			dtype, err := hdf5.NewDatatypeFromValue(v.Field(i).Interface())
			if err != nil {
				return err
			}
			defer checkClose(&err, dtype)

			attr, err := dset.CreateAttribute(v.Type().Field(i).Name, dtype, scalar)
			if err != nil {
				return err
			}
			defer checkClose(&err, attr)

			return attr.Write(v.Field(i).Addr().Interface(), dtype)
		}()
		if err != nil {
			return fmt.Errorf("hdf5: attribute %s: %w", v.Type().Field(i).Name, err)
		}
	}
	return nil
}

// init creates the dataset and its dataspaces.
func (d *Dataset) init(file *hdf5.File, conf *Config) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(d.Val)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	udims := make([]uint, len(d.Dims)+1)
	udims[0] = uint(conf.Steps)
	for i, n := range d.Dims {
		udims[i+1] = uint(n)
	}

	d.fspace, err = hdf5.CreateSimpleDataspace(udims, nil)
	if err != nil {
		return err
	}

	start := make([]uint, len(udims))
	count := make([]uint, len(udims))
	copy(count, udims)
	count[0] = 1

	if err := d.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	if len(d.Dims) == 0 {
		d.mspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
	} else {
		d.mspace, err = hdf5.CreateSimpleDataspace(udims[1:], nil)
	}
	if err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	d.dset, err = file.CreateDataset(d.Name, dtype, d.fspace)
	if err != nil {
		checkClose(&err, d.fspace)
		checkClose(&err, d.mspace)
	}

	return err
}

// Close closes the HDF5 dataset and Dataspaces.
func (d *Dataset) Close() error {
	if err := d.dset.Close(); err != nil {
		return err
	}
	if err := d.mspace.Close(); err != nil {
		return err
	}
	if err := d.fspace.Close(); err != nil {
		return err
	}
	return nil
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
