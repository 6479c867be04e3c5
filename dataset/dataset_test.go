package dataset

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestFromSensitiveAttribute(t *testing.T) {
	tests := []struct {
		name            string
		x               *mat.Dense
		y               *mat.VecDense
		sensitiveIdx    int
		advantagedValue float64
		wantMask        []bool
		wantErr         bool
	}{
		{
			name: "mask derived from sensitive column",
			x: mat.NewDense(4, 2, []float64{
				1, 0.5,
				0, 0.7,
				1, 0.1,
				0, 0.9,
			}),
			y:               mat.NewVecDense(4, []float64{1, 0, 1, 0}),
			sensitiveIdx:    0,
			advantagedValue: 1,
			wantMask:        []bool{true, false, true, false},
		},
		{
			name: "non-zero advantaged value",
			x: mat.NewDense(3, 2, []float64{
				2, 0,
				3, 0,
				2, 0,
			}),
			y:               mat.NewVecDense(3, []float64{0, 1, 1}),
			sensitiveIdx:    0,
			advantagedValue: 2,
			wantMask:        []bool{true, false, true},
		},
		{
			name:            "sensitive index out of range",
			x:               mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
			y:               mat.NewVecDense(2, []float64{0, 1}),
			sensitiveIdx:    7,
			advantagedValue: 1,
			wantErr:         true,
		},
		{
			name:            "label length mismatch",
			x:               mat.NewDense(3, 1, []float64{1, 0, 1}),
			y:               mat.NewVecDense(2, []float64{0, 1}),
			sensitiveIdx:    0,
			advantagedValue: 1,
			wantErr:         true,
		},
		{
			name:            "non-binary labels",
			x:               mat.NewDense(2, 1, []float64{1, 0}),
			y:               mat.NewVecDense(2, []float64{1, 3}),
			sensitiveIdx:    0,
			advantagedValue: 1,
			wantErr:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := FromSensitiveAttribute(tt.x, tt.y, tt.sensitiveIdx, tt.advantagedValue)
			if (err != nil) != tt.wantErr {
				t.Errorf("FromSensitiveAttribute() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			got := ds.AdvantagedMask()
			if len(got) != len(tt.wantMask) {
				t.Fatalf("AdvantagedMask() length = %d, want %d", len(got), len(tt.wantMask))
			}
			for i := range got {
				if got[i] != tt.wantMask[i] {
					t.Errorf("AdvantagedMask()[%d] = %v, want %v", i, got[i], tt.wantMask[i])
				}
			}
		})
	}
}

func TestNewMaskLengthMismatch(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{1, 0, 1})
	y := mat.NewVecDense(3, []float64{1, 0, 1})

	if _, err := New(x, y, []bool{true, false}); err == nil {
		t.Error("New() with short mask should error")
	}
}

func TestAdvantagedMaskIsACopy(t *testing.T) {
	x := mat.NewDense(2, 1, []float64{1, 0})
	y := mat.NewVecDense(2, []float64{1, 0})
	ds, err := New(x, y, []bool{true, false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	mask := ds.AdvantagedMask()
	mask[0] = false

	if got := ds.AdvantagedMask(); !got[0] {
		t.Error("mutating the returned mask must not affect the dataset")
	}
}

func TestSubsets(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		1, 10,
		0, 20,
		1, 30,
		0, 40,
	})
	y := mat.NewVecDense(4, []float64{1, 0, 1, 0})
	ds, err := FromSensitiveAttribute(x, y, 0, 1)
	if err != nil {
		t.Fatalf("FromSensitiveAttribute() error = %v", err)
	}

	adv := ds.AdvantagedSubset()
	if r, _ := adv.Dims(); r != 2 {
		t.Errorf("AdvantagedSubset() rows = %d, want 2", r)
	}
	if adv.At(0, 1) != 10 || adv.At(1, 1) != 30 {
		t.Errorf("AdvantagedSubset() rows = %v, %v; want 10, 30", adv.At(0, 1), adv.At(1, 1))
	}

	dis := ds.DisadvantagedSubset()
	if r, _ := dis.Dims(); r != 2 {
		t.Errorf("DisadvantagedSubset() rows = %d, want 2", r)
	}
	if dis.At(0, 1) != 20 || dis.At(1, 1) != 40 {
		t.Errorf("DisadvantagedSubset() rows = %v, %v; want 20, 40", dis.At(0, 1), dis.At(1, 1))
	}
}

func TestSubsetEmptyGroup(t *testing.T) {
	x := mat.NewDense(2, 1, []float64{0, 0})
	y := mat.NewVecDense(2, []float64{1, 0})
	ds, err := FromSensitiveAttribute(x, y, 0, 1)
	if err != nil {
		t.Fatalf("FromSensitiveAttribute() error = %v", err)
	}

	if got := ds.AdvantagedSubset(); got != nil {
		t.Errorf("AdvantagedSubset() = %v, want nil for empty group", got)
	}
	if got := ds.DisadvantagedSubset(); got == nil {
		t.Error("DisadvantagedSubset() = nil, want all rows")
	}
}

func TestBatches(t *testing.T) {
	n := 7
	data := make([]float64, n)
	labels := make([]float64, n)
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		data[i] = float64(i)
		labels[i] = float64(i % 2)
		mask[i] = i%2 == 0
	}
	ds, err := New(mat.NewDense(n, 1, data), mat.NewVecDense(n, labels), mask)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	batches, err := ds.Batches(3)
	if err != nil {
		t.Fatalf("Batches() error = %v", err)
	}

	wantSizes := []int{3, 3, 1}
	if len(batches) != len(wantSizes) {
		t.Fatalf("Batches() count = %d, want %d", len(batches), len(wantSizes))
	}
	for i, b := range batches {
		if b.Len() != wantSizes[i] {
			t.Errorf("batch %d size = %d, want %d", i, b.Len(), wantSizes[i])
		}
	}

	// batches stay aligned with the source
	last := batches[2]
	if last.X().At(0, 0) != 6 || last.Y().AtVec(0) != 0 || !last.AdvantagedMask()[0] {
		t.Errorf("last batch misaligned: x=%v y=%v mask=%v",
			last.X().At(0, 0), last.Y().AtVec(0), last.AdvantagedMask()[0])
	}

	if _, err := ds.Batches(0); err == nil {
		t.Error("Batches(0) should error")
	}
}

func TestSliceInvalidRange(t *testing.T) {
	x := mat.NewDense(2, 1, []float64{1, 0})
	y := mat.NewVecDense(2, []float64{1, 0})
	ds, err := New(x, y, []bool{true, false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := ds.Slice(1, 1); err == nil {
		t.Error("Slice(1, 1) should error")
	}
	if _, err := ds.Slice(0, 3); err == nil {
		t.Error("Slice(0, 3) should error")
	}
}
