// Package dataset provides the aligned data triple consumed by the fairness
// metrics: a feature matrix, a binary label vector and an advantaged-group
// mask, all indexed by sample.
//
// The mask partitions every batch into an advantaged and a disadvantaged
// subset by whether the sample's sensitive attribute equals a configured
// advantaged value. The partition is strict: the mask has exactly one entry
// per sample, so every sample belongs to exactly one subset.
package dataset

import (
	"github.com/YuminosukeSato/fairgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dataset holds features X (n×d), binary labels Y (n) and the advantaged
// mask (n), aligned by sample index. It performs no I/O; loading and
// preprocessing happen upstream.
type Dataset struct {
	x       *mat.Dense
	y       *mat.VecDense
	advMask []bool
}

// New creates a Dataset from an already-computed advantaged mask.
// Row counts of X, Y and the mask must match, and labels must be binary.
func New(x *mat.Dense, y *mat.VecDense, advMask []bool) (*Dataset, error) {
	if x == nil {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.New")
	}
	rows, _ := x.Dims()
	if rows == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.New")
	}

	if y == nil || y.Len() != rows {
		got := 0
		if y != nil {
			got = y.Len()
		}
		return nil, errors.NewDimensionError("dataset.New", rows, got, 0)
	}
	if len(advMask) != rows {
		return nil, errors.NewDimensionError("dataset.New", rows, len(advMask), 0)
	}

	for i := 0; i < rows; i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return nil, errors.NewValueError("dataset.New", "labels must contain only binary values (0 or 1)")
		}
	}

	mask := make([]bool, rows)
	copy(mask, advMask)

	return &Dataset{x: x, y: y, advMask: mask}, nil
}

// FromSensitiveAttribute creates a Dataset deriving the advantaged mask from
// the features themselves: a sample is advantaged when its sensitive
// attribute column equals advantagedValue.
func FromSensitiveAttribute(x *mat.Dense, y *mat.VecDense, sensitiveIdx int, advantagedValue float64) (*Dataset, error) {
	if x == nil {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.FromSensitiveAttribute")
	}
	rows, cols := x.Dims()
	if sensitiveIdx < 0 || sensitiveIdx >= cols {
		return nil, errors.NewValidationError("sensitiveIdx", "must address a column of X", sensitiveIdx)
	}

	mask := make([]bool, rows)
	for i := 0; i < rows; i++ {
		mask[i] = x.At(i, sensitiveIdx) == advantagedValue
	}

	return New(x, y, mask)
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	rows, _ := d.x.Dims()
	return rows
}

// Features returns the number of feature columns.
func (d *Dataset) Features() int {
	_, cols := d.x.Dims()
	return cols
}

// X returns the feature matrix.
func (d *Dataset) X() *mat.Dense {
	return d.x
}

// Y returns the label vector.
func (d *Dataset) Y() *mat.VecDense {
	return d.y
}

// AdvantagedMask returns a copy of the advantaged mask, so callers cannot
// break the partition invariant of a live Dataset.
func (d *Dataset) AdvantagedMask() []bool {
	mask := make([]bool, len(d.advMask))
	copy(mask, d.advMask)
	return mask
}

// AdvantagedSubset returns the feature rows of the advantaged group.
// Returns nil when the group is empty.
func (d *Dataset) AdvantagedSubset() *mat.Dense {
	return d.subset(true)
}

// DisadvantagedSubset returns the feature rows of the disadvantaged group.
// Returns nil when the group is empty.
func (d *Dataset) DisadvantagedSubset() *mat.Dense {
	return d.subset(false)
}

func (d *Dataset) subset(advantaged bool) *mat.Dense {
	rows, cols := d.x.Dims()

	count := 0
	for i := 0; i < rows; i++ {
		if d.advMask[i] == advantaged {
			count++
		}
	}
	if count == 0 {
		return nil
	}

	out := mat.NewDense(count, cols, nil)
	row := 0
	for i := 0; i < rows; i++ {
		if d.advMask[i] == advantaged {
			out.SetRow(row, mat.Row(nil, i, d.x))
			row++
		}
	}
	return out
}

// Slice returns the half-open sample range [i, j) as a Dataset sharing the
// underlying data. Used to cut contiguous shards for parallel evaluation.
func (d *Dataset) Slice(i, j int) (*Dataset, error) {
	rows, cols := d.x.Dims()
	if i < 0 || j > rows || i >= j {
		return nil, errors.NewValidationError("range", "invalid sample range", []int{i, j})
	}

	return &Dataset{
		x:       d.x.Slice(i, j, 0, cols).(*mat.Dense),
		y:       d.y.SliceVec(i, j).(*mat.VecDense),
		advMask: d.advMask[i:j],
	}, nil
}

// Batches splits the dataset into consecutive batches of at most size
// samples. The final batch may be smaller.
func (d *Dataset) Batches(size int) ([]*Dataset, error) {
	if size <= 0 {
		return nil, errors.NewValidationError("size", "batch size must be positive", size)
	}

	n := d.Len()
	batches := make([]*Dataset, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		b, err := d.Slice(start, end)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}
