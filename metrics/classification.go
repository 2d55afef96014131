// Package metrics provides classification evaluation metrics on gonum
// vectors and matrices: accuracy, ROC-AUC, log loss and confusion matrices.
package metrics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/prayaggordy/bivarnet/pkg/errors"
)

// AUC computes the area under the ROC curve for binary labels (0/1) and
// continuous scores. Ties in the scores contribute half a pair. When only one
// class is present the metric is undefined; an UndefinedMetricWarning is
// raised and 0.5 is returned.
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("AUC", "nil input vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("AUC", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("AUC", n, yPred.Len(), 0)
	}

	var nPos, nNeg int
	for i := 0; i < n; i++ {
		switch yTrue.AtVec(i) {
		case 1:
			nPos++
		case 0:
			nNeg++
		default:
			return 0, errors.NewValueError("AUC",
				fmt.Sprintf("labels must be binary (0 or 1), got %g", yTrue.AtVec(i)))
		}
	}

	if nPos == 0 || nNeg == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("roc_auc", "only one class present in y_true", 0.5))
		return 0.5, nil
	}

	// Pair counting with tie correction.
	var sum float64
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != 1 {
			continue
		}
		for j := 0; j < n; j++ {
			if yTrue.AtVec(j) != 0 {
				continue
			}
			switch {
			case yPred.AtVec(i) > yPred.AtVec(j):
				sum += 1
			case yPred.AtVec(i) == yPred.AtVec(j):
				sum += 0.5
			}
		}
	}
	return sum / (float64(nPos) * float64(nNeg)), nil
}

// AUCMatrix computes AUC from column-vector matrices. Only the first column
// of each input is used.
func AUCMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	yTrueVec, err := firstColumn("AUCMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	yPredVec, err := firstColumn("AUCMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return AUC(yTrueVec, yPredVec)
}

// BinaryLogLoss computes the binary cross-entropy between 0/1 labels and
// predicted probabilities. Probabilities are clipped to [eps, 1-eps] to avoid
// log(0).
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("BinaryLogLoss", "nil input vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("BinaryLogLoss", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("BinaryLogLoss", n, yPred.Len(), 0)
	}

	const eps = 1e-15
	var sum float64
	for i := 0; i < n; i++ {
		label := yTrue.AtVec(i)
		if label != 0 && label != 1 {
			return 0, errors.NewValueError("BinaryLogLoss",
				fmt.Sprintf("labels must be binary (0 or 1), got %g", label))
		}
		p := errors.ClipValue(yPred.AtVec(i), eps, 1-eps)
		if label == 1 {
			sum += -math.Log(p)
		} else {
			sum += -math.Log(1 - p)
		}
	}
	return sum / float64(n), nil
}

// Accuracy computes the fraction of exact label matches.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("Accuracy", "nil input vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError computes the fraction of mismatched labels, i.e.
// 1 - Accuracy.
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// ROCPoint is one point of the ROC curve.
type ROCPoint struct {
	Threshold float64
	FPR       float64
	TPR       float64
}

// ROCCurve computes the ROC curve for binary labels and continuous scores by
// sweeping a threshold over every distinct score, highest first. The returned
// points start at (0, 0) and end at (1, 1).
func ROCCurve(yTrue, yPred *mat.VecDense) ([]ROCPoint, error) {
	if yTrue == nil || yPred == nil {
		return nil, errors.NewValueError("ROCCurve", "nil input vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError("ROCCurve", "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError("ROCCurve", n, yPred.Len(), 0)
	}

	var nPos, nNeg int
	idx := make([]int, n)
	for i := 0; i < n; i++ {
		idx[i] = i
		switch yTrue.AtVec(i) {
		case 1:
			nPos++
		case 0:
			nNeg++
		default:
			return nil, errors.NewValueError("ROCCurve",
				fmt.Sprintf("labels must be binary (0 or 1), got %g", yTrue.AtVec(i)))
		}
	}
	if nPos == 0 || nNeg == 0 {
		return nil, errors.NewValueError("ROCCurve", "only one class present in y_true")
	}

	sort.Slice(idx, func(a, b int) bool {
		return yPred.AtVec(idx[a]) > yPred.AtVec(idx[b])
	})

	points := []ROCPoint{{Threshold: math.Inf(1), FPR: 0, TPR: 0}}
	tp, fp := 0, 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(idx[i]) == 1 {
			tp++
		} else {
			fp++
		}
		// Emit a point only after consuming all rows tied at this score.
		if i+1 < n && yPred.AtVec(idx[i+1]) == yPred.AtVec(idx[i]) {
			continue
		}
		points = append(points, ROCPoint{
			Threshold: yPred.AtVec(idx[i]),
			FPR:       float64(fp) / float64(nNeg),
			TPR:       float64(tp) / float64(nPos),
		})
	}
	return points, nil
}

// ConfusionMatrix is a cross-tabulation of true vs predicted labels.
type ConfusionMatrix struct {
	// Labels holds the sorted distinct labels across both inputs.
	Labels []int

	// Counts[i][j] is the number of rows with true label Labels[i] and
	// predicted label Labels[j].
	Counts [][]int
}

// NewConfusionMatrix tabulates predictions against ground truth.
func NewConfusionMatrix(yTrue, yPred *mat.VecDense) (*ConfusionMatrix, error) {
	if yTrue == nil || yPred == nil {
		return nil, errors.NewValueError("NewConfusionMatrix", "nil input vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError("NewConfusionMatrix", "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError("NewConfusionMatrix", n, yPred.Len(), 0)
	}

	seen := make(map[int]bool)
	for i := 0; i < n; i++ {
		seen[int(yTrue.AtVec(i))] = true
		seen[int(yPred.AtVec(i))] = true
	}
	labels := make([]int, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Ints(labels)

	pos := make(map[int]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}

	counts := make([][]int, len(labels))
	for i := range counts {
		counts[i] = make([]int, len(labels))
	}
	for i := 0; i < n; i++ {
		counts[pos[int(yTrue.AtVec(i))]][pos[int(yPred.AtVec(i))]]++
	}

	return &ConfusionMatrix{Labels: labels, Counts: counts}, nil
}

// At returns the count of rows with the given true and predicted labels.
func (c *ConfusionMatrix) At(trueLabel, predLabel int) int {
	ti, pi := -1, -1
	for i, l := range c.Labels {
		if l == trueLabel {
			ti = i
		}
		if l == predLabel {
			pi = i
		}
	}
	if ti < 0 || pi < 0 {
		return 0
	}
	return c.Counts[ti][pi]
}

// Total returns the number of tabulated rows.
func (c *ConfusionMatrix) Total() int {
	total := 0
	for _, row := range c.Counts {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Accuracy returns the fraction of rows on the diagonal.
func (c *ConfusionMatrix) Accuracy() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	diag := 0
	for i := range c.Counts {
		diag += c.Counts[i][i]
	}
	return float64(diag) / float64(total)
}

// String renders the matrix as a table with true labels as rows and
// predicted labels as columns.
func (c *ConfusionMatrix) String() string {
	var sb strings.Builder
	sb.WriteString("truth\\pred")
	for _, l := range c.Labels {
		fmt.Fprintf(&sb, "\t%d", l)
	}
	sb.WriteByte('\n')
	for i, l := range c.Labels {
		fmt.Fprintf(&sb, "%d", l)
		for j := range c.Labels {
			fmt.Fprintf(&sb, "\t%d", c.Counts[i][j])
		}
		if i < len(c.Labels)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// firstColumn extracts the first column of a matrix as a VecDense.
func firstColumn(op string, m mat.Matrix) (*mat.VecDense, error) {
	if m == nil {
		return nil, errors.NewValueError(op, "nil input matrix")
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError(op, "empty matrix")
	}
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}
