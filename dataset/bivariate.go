// Package dataset ships the fixed, pre-split bivariate classification data
// used throughout bivarnet: two continuous, right-skewed predictors (A, B)
// and a binary class label (One/Two). The three partitions are embedded in
// the binary and never recomputed, so row membership is stable across runs.
package dataset

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/prayaggordy/bivarnet/pkg/errors"
)

//go:embed data/bivariate_train.csv data/bivariate_validation.csv data/bivariate_test.csv
var dataFS embed.FS

// Integer encodings of the class labels. ClassOne is the positive class for
// ROC-AUC and probability plots.
const (
	ClassTwo = 0
	ClassOne = 1
)

// ClassName returns the label name for an encoded class.
func ClassName(label int) string {
	if label == ClassOne {
		return "One"
	}
	return "Two"
}

// Partition is one split of the bivariate dataset.
type Partition struct {
	// X holds one row per observation with columns A and B.
	X *mat.Dense

	// Y holds the encoded class label per observation (ClassOne/ClassTwo).
	Y *mat.VecDense
}

// NumRows returns the number of observations in the partition.
func (p *Partition) NumRows() int {
	r, _ := p.X.Dims()
	return r
}

// Bivariate bundles the three fixed partitions.
type Bivariate struct {
	Train      *Partition
	Validation *Partition
	Test       *Partition
}

// LoadBivariate reads the embedded train/validation/test partitions.
func LoadBivariate() (*Bivariate, error) {
	train, err := loadPartition("data/bivariate_train.csv")
	if err != nil {
		return nil, errors.Wrap(err, "LoadBivariate: train")
	}
	val, err := loadPartition("data/bivariate_validation.csv")
	if err != nil {
		return nil, errors.Wrap(err, "LoadBivariate: validation")
	}
	test, err := loadPartition("data/bivariate_test.csv")
	if err != nil {
		return nil, errors.Wrap(err, "LoadBivariate: test")
	}
	return &Bivariate{Train: train, Validation: val, Test: test}, nil
}

// loadPartition parses one embedded CSV with header A,B,Class.
func loadPartition(path string) (*Partition, error) {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parsePartition(bytes.NewReader(raw))
}

func parsePartition(r io.Reader) (*Partition, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	if len(header) != 3 || header[0] != "A" || header[1] != "B" || header[2] != "Class" {
		return nil, errors.Newf("unexpected header %v, want [A B Class]", header)
	}

	var xs []float64
	var ys []float64
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading row %d", row)
		}

		a, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d: column A", row)
		}
		b, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d: column B", row)
		}

		var label float64
		switch record[2] {
		case "One":
			label = ClassOne
		case "Two":
			label = ClassTwo
		default:
			return nil, errors.Newf("row %d: unknown class %q", row, record[2])
		}

		xs = append(xs, a, b)
		ys = append(ys, label)
		row++
	}

	if len(ys) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "partition has no rows")
	}

	return &Partition{
		X: mat.NewDense(len(ys), 2, xs),
		Y: mat.NewVecDense(len(ys), ys),
	}, nil
}

// YColumn returns the labels as an n x 1 matrix, the shape classifiers take.
func (p *Partition) YColumn() *mat.Dense {
	n := p.Y.Len()
	out := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, p.Y.AtVec(i))
	}
	return out
}

// Range returns the observed minimum and maximum of a predictor column.
func (p *Partition) Range(col int) (min, max float64, err error) {
	r, c := p.X.Dims()
	if col < 0 || col >= c {
		return 0, 0, errors.NewValueError("Partition.Range", fmt.Sprintf("column %d out of range", col))
	}
	min, max = p.X.At(0, col), p.X.At(0, col)
	for i := 1; i < r; i++ {
		v := p.X.At(i, col)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, nil
}
