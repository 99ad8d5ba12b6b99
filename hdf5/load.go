package hdf5

import (
	"errors"
	"fmt"

	"gonum.org/v1/hdf5"
)

// A Loader sequentially loads records from a 1D or 2D float64 dataset
// written by Run.
type Loader struct {
	i    uint // index of current record
	n    uint // total number of records
	rank int  // rank of the dataset

	data []float64 // data buffer

	file   *hdf5.File
	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// NewLoader opens a dataset in an HDF5 file and returns an initialized loader.
func NewLoader(filepath, dataset string) (*Loader, error) {
	l := new(Loader)
	var err error
	l.file, err = hdf5.OpenFile(filepath, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	l.dset, err = l.file.OpenDataset(dataset)
	if err != nil {
		checkClose(&err, l.file)
		return nil, err
	}
	l.fspace = l.dset.Space()
	dims, _, err := l.fspace.SimpleExtentDims()
	if err != nil {
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}
	if len(dims) != 1 && len(dims) != 2 {
		err = fmt.Errorf("hdf5: loader: expected 1 or 2 dimensions, got %d", len(dims))
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}
	l.n = dims[0]
	l.rank = len(dims)

	start := make([]uint, len(dims))
	count := make([]uint, len(dims))
	copy(count, dims)
	count[0] = 1
	if len(dims) == 1 {
		l.mspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
		l.data = make([]float64, 1)
	} else {
		l.mspace, err = hdf5.CreateSimpleDataspace(dims[1:], nil)
		l.data = make([]float64, dims[1])
	}
	if err != nil {
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}

	if err := l.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		l.Close()
		return nil, err
	}

	return l, nil
}

// Len returns the number of records in the dataset.
func (l *Loader) Len() int { return int(l.n) }

// Load loads the next record and cycles when everything has already been loaded.
// The returned slice is reused by the next call.
func (l *Loader) Load() ([]float64, error) {
	if l.n == 0 {
		return nil, errors.New("hdf5: loader: no records")
	}
	start := make([]uint, l.rank)
	start[0] = l.i
	if err := l.fspace.SetOffset(start); err != nil {
		return nil, err
	}
	l.i = (l.i + 1) % l.n

	if l.rank == 1 {
		if err := l.dset.ReadSubset(&l.data[0], l.mspace, l.fspace); err != nil {
			return nil, err
		}
		return l.data, nil
	}
	if err := l.dset.ReadSubset(&l.data, l.mspace, l.fspace); err != nil {
		return nil, err
	}
	return l.data, nil
}

// Close releases the dataset and the file.
func (l *Loader) Close() (err error) {
	checkClose(&err, l.mspace)
	checkClose(&err, l.fspace)
	checkClose(&err, l.dset)
	checkClose(&err, l.file)
	return err
}
