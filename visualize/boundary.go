// Package visualize renders the two plots the bivariate walkthrough
// produces: a class-colored scatter of the raw predictors and a decision
// boundary, drawn as the p = 0.5 contour of the fitted model's ClassOne
// probability over a dense grid.
package visualize

import (
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/prayaggordy/bivarnet/dataset"
	"github.com/prayaggordy/bivarnet/pkg/errors"
)

var (
	colorOne = color.RGBA{R: 217, G: 95, B: 2, A: 255}
	colorTwo = color.RGBA{R: 27, G: 158, B: 119, A: 255}
)

// ProbabilityGrid adapts per-grid-point class probabilities to
// plotter.GridXYZ. Grid rows are ordered with the first predictor varying
// slowest, matching dataset.NewGrid.
type ProbabilityGrid struct {
	aValues []float64
	bValues []float64
	probs   []float64 // len(aValues) * len(bValues), ClassOne probability
}

// NewProbabilityGrid pairs a visualization grid with the probability column
// for class ClassOne from a PredictProba result.
func NewProbabilityGrid(grid *dataset.Grid, probas mat.Matrix, classCol int) (*ProbabilityGrid, error) {
	rows, cols := probas.Dims()
	want := len(grid.AValues) * len(grid.BValues)
	if rows != want {
		return nil, errors.NewDimensionError("NewProbabilityGrid", want, rows, 0)
	}
	if classCol < 0 || classCol >= cols {
		return nil, errors.NewValueError("NewProbabilityGrid", "class column out of range")
	}

	probs := make([]float64, rows)
	for i := 0; i < rows; i++ {
		probs[i] = probas.At(i, classCol)
	}

	return &ProbabilityGrid{
		aValues: grid.AValues,
		bValues: grid.BValues,
		probs:   probs,
	}, nil
}

// Dims implements plotter.GridXYZ.
func (g *ProbabilityGrid) Dims() (c, r int) {
	return len(g.aValues), len(g.bValues)
}

// Z implements plotter.GridXYZ.
func (g *ProbabilityGrid) Z(c, r int) float64 {
	return g.probs[c*len(g.bValues)+r]
}

// X implements plotter.GridXYZ.
func (g *ProbabilityGrid) X(c int) float64 {
	return g.aValues[c]
}

// Y implements plotter.GridXYZ.
func (g *ProbabilityGrid) Y(r int) float64 {
	return g.bValues[r]
}

// classPoints splits a partition into per-class XY point sets.
func classPoints(part *dataset.Partition) (one, two plotter.XYs) {
	r, _ := part.X.Dims()
	for i := 0; i < r; i++ {
		pt := plotter.XY{X: part.X.At(i, 0), Y: part.X.At(i, 1)}
		if int(part.Y.AtVec(i)) == dataset.ClassOne {
			one = append(one, pt)
		} else {
			two = append(two, pt)
		}
	}
	return one, two
}

// addClassScatter adds one scatter per class to the plot, with a legend.
func addClassScatter(p *plot.Plot, part *dataset.Partition) error {
	one, two := classPoints(part)

	scatterOne, err := plotter.NewScatter(one)
	if err != nil {
		return errors.Wrap(err, "scatter for class One")
	}
	scatterOne.GlyphStyle.Color = colorOne
	scatterOne.GlyphStyle.Radius = vg.Points(1.5)

	scatterTwo, err := plotter.NewScatter(two)
	if err != nil {
		return errors.Wrap(err, "scatter for class Two")
	}
	scatterTwo.GlyphStyle.Color = colorTwo
	scatterTwo.GlyphStyle.Radius = vg.Points(1.5)

	p.Add(scatterOne, scatterTwo)
	p.Legend.Add(dataset.ClassName(dataset.ClassOne), scatterOne)
	p.Legend.Add(dataset.ClassName(dataset.ClassTwo), scatterTwo)
	p.Legend.Top = true
	return nil
}

// Scatter renders the raw predictors of a partition colored by class.
func Scatter(part *dataset.Partition, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "A"
	p.Y.Label.Text = "B"

	if err := addClassScatter(p, part); err != nil {
		return nil, err
	}
	return p, nil
}

// Boundary renders a partition's scatter with the model's decision boundary:
// the contour where the ClassOne probability crosses 0.5.
func Boundary(part *dataset.Partition, grid *ProbabilityGrid, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "A"
	p.Y.Label.Text = "B"

	contour := plotter.NewContour(grid, []float64{0.5}, palette.Heat(1, 1))
	p.Add(contour)

	if err := addClassScatter(p, part); err != nil {
		return nil, err
	}
	return p, nil
}

// SavePNG writes a plot to disk as a PNG.
func SavePNG(p *plot.Plot, path string) error {
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving plot to %s", path)
	}
	return nil
}
