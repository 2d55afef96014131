package visualize

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/prayaggordy/bivarnet/dataset"
)

func smallPartition() *dataset.Partition {
	X := mat.NewDense(6, 2, []float64{
		1.0, 1.0,
		1.2, 0.9,
		0.8, 1.1,
		3.0, 3.0,
		3.1, 2.8,
		2.9, 3.2,
	})
	y := mat.NewVecDense(6, []float64{0, 0, 0, 1, 1, 1})
	return &dataset.Partition{X: X, Y: y}
}

func probabilityFixture(t *testing.T) (*dataset.Grid, *mat.Dense) {
	t.Helper()

	grid, err := dataset.NewGrid(0.5, 3.5, 0.5, 3.5, 10)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	// A smooth probability surface rising along the diagonal.
	r, _ := grid.X.Dims()
	probas := mat.NewDense(r, 2, nil)
	for i := 0; i < r; i++ {
		s := grid.X.At(i, 0) + grid.X.At(i, 1)
		pOne := 1 / (1 + math.Exp(-(s - 4)))
		probas.Set(i, 0, 1-pOne)
		probas.Set(i, 1, pOne)
	}
	return grid, probas
}

func TestProbabilityGridImplementsGridXYZ(t *testing.T) {
	grid, probas := probabilityFixture(t)

	pg, err := NewProbabilityGrid(grid, probas, 1)
	if err != nil {
		t.Fatalf("NewProbabilityGrid() error = %v", err)
	}

	c, r := pg.Dims()
	if c != 10 || r != 10 {
		t.Fatalf("Dims() = (%d, %d), want (10, 10)", c, r)
	}
	if pg.X(0) != 0.5 || pg.X(c-1) != 3.5 {
		t.Errorf("X endpoints = (%v, %v), want (0.5, 3.5)", pg.X(0), pg.X(c-1))
	}

	// Z must match the source probabilities in row-major order.
	for ci := 0; ci < c; ci++ {
		for ri := 0; ri < r; ri++ {
			want := probas.At(ci*r+ri, 1)
			if got := pg.Z(ci, ri); got != want {
				t.Fatalf("Z(%d, %d) = %v, want %v", ci, ri, got, want)
			}
		}
	}
}

func TestNewProbabilityGridErrors(t *testing.T) {
	grid, probas := probabilityFixture(t)

	if _, err := NewProbabilityGrid(grid, probas, 5); err == nil {
		t.Error("expected an error for out-of-range class column")
	}

	short := mat.NewDense(3, 2, nil)
	if _, err := NewProbabilityGrid(grid, short, 1); err == nil {
		t.Error("expected an error for row count mismatch")
	}
}

func TestScatterWritesPNG(t *testing.T) {
	p, err := Scatter(smallPartition(), "training data")
	if err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "scatter.png")
	if err := SavePNG(p, path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	assertPNG(t, path)
}

func TestBoundaryWritesPNG(t *testing.T) {
	grid, probas := probabilityFixture(t)
	pg, err := NewProbabilityGrid(grid, probas, 1)
	if err != nil {
		t.Fatalf("NewProbabilityGrid() error = %v", err)
	}

	p, err := Boundary(smallPartition(), pg, "decision boundary")
	if err != nil {
		t.Fatalf("Boundary() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "boundary.png")
	if err := SavePNG(p, path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	assertPNG(t, path)
}

func assertPNG(t *testing.T, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if len(data) < 8 {
		t.Fatalf("%s is too small to be a PNG (%d bytes)", path, len(data))
	}
	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	for i, b := range sig {
		if data[i] != b {
			t.Fatalf("%s does not start with a PNG signature", path)
		}
	}
}
