// Package neural_network provides a single-hidden-layer feedforward
// classifier compatible with scikit-learn's MLPClassifier surface:
// Fit, Predict, PredictProba, Score.
package neural_network

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/prayaggordy/bivarnet/core/model"
	"github.com/prayaggordy/bivarnet/core/parallel"
	"github.com/prayaggordy/bivarnet/pkg/errors"
)

// MLPClassifier is a feedforward neural network with one tanh hidden layer
// and a softmax output layer, trained with mini-batch SGD on cross-entropy
// loss. Inverted dropout can be applied to the hidden activations during
// training.
type MLPClassifier struct {
	state *model.StateManager

	// Hyperparameters
	hiddenUnits  int
	epochs       int
	dropout      float64 // fraction of hidden units dropped per step
	learningRate float64
	batchSize    int
	randomState  int64
	tol          float64 // epoch-to-epoch loss change below which training stops

	// Model parameters
	w1 [][]float64 // hidden x features
	b1 []float64
	w2 [][]float64 // classes x hidden
	b2 []float64

	classes_   []int
	nClasses_  int
	nFeatures_ int
	nEpochs_   int       // epochs actually run
	lossCurve_ []float64 // training loss per epoch

	rand *rand.Rand
}

// MLPOption is a functional option for MLPClassifier.
type MLPOption func(*MLPClassifier)

// NewMLPClassifier creates an MLPClassifier with tutorial-friendly defaults:
// 5 hidden units, 100 epochs, no dropout, learning rate 0.01, batch size 32.
func NewMLPClassifier(opts ...MLPOption) *MLPClassifier {
	m := &MLPClassifier{
		state:        model.NewStateManager(),
		hiddenUnits:  5,
		epochs:       100,
		dropout:      0.0,
		learningRate: 0.01,
		batchSize:    32,
		randomState:  -1,
		tol:          1e-6,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.randomState >= 0 {
		m.rand = rand.New(rand.NewSource(m.randomState))
	} else {
		m.rand = rand.New(rand.NewSource(rand.Int63()))
	}

	return m
}

// WithHiddenUnits sets the number of hidden units.
func WithHiddenUnits(n int) MLPOption {
	return func(m *MLPClassifier) { m.hiddenUnits = n }
}

// WithEpochs sets the number of training epochs.
func WithEpochs(n int) MLPOption {
	return func(m *MLPClassifier) { m.epochs = n }
}

// WithDropout sets the dropout rate applied to hidden activations during
// training. Must be in [0, 1).
func WithDropout(rate float64) MLPOption {
	return func(m *MLPClassifier) { m.dropout = rate }
}

// WithLearningRate sets the SGD learning rate.
func WithLearningRate(lr float64) MLPOption {
	return func(m *MLPClassifier) { m.learningRate = lr }
}

// WithBatchSize sets the mini-batch size.
func WithBatchSize(n int) MLPOption {
	return func(m *MLPClassifier) { m.batchSize = n }
}

// WithSeed sets the random seed for weight initialization, shuffling and
// dropout. The same seed with the same data yields identical fits.
func WithSeed(seed int64) MLPOption {
	return func(m *MLPClassifier) {
		m.randomState = seed
		if seed >= 0 {
			m.rand = rand.New(rand.NewSource(seed))
		}
	}
}

// WithTol sets the early-stopping tolerance on the epoch loss change.
func WithTol(tol float64) MLPOption {
	return func(m *MLPClassifier) { m.tol = tol }
}

// validateParams checks hyperparameters before training.
func (m *MLPClassifier) validateParams() error {
	if m.hiddenUnits <= 0 {
		return errors.NewValidationError("hidden_units", "must be positive", m.hiddenUnits)
	}
	if m.epochs <= 0 {
		return errors.NewValidationError("epochs", "must be positive", m.epochs)
	}
	if m.dropout < 0 || m.dropout >= 1 {
		return errors.NewValidationError("dropout", "must be in [0, 1)", m.dropout)
	}
	if m.learningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be positive", m.learningRate)
	}
	if m.batchSize <= 0 {
		return errors.NewValidationError("batch_size", "must be positive", m.batchSize)
	}
	return nil
}

// Fit trains the network on X and integer class labels y (a column vector).
func (m *MLPClassifier) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "MLPClassifier.Fit")

	if err := m.validateParams(); err != nil {
		return err
	}

	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return errors.Wrap(errors.ErrEmptyData, "MLPClassifier.Fit")
	}
	if yRows != nSamples {
		return errors.NewDimensionError("MLPClassifier.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("MLPClassifier.Fit", 1, yCols, 1)
	}

	m.extractClasses(y)
	if m.nClasses_ < 2 {
		return errors.NewValueError("MLPClassifier.Fit", "need at least two classes in y")
	}
	m.nFeatures_ = nFeatures
	m.initializeWeights(nFeatures)

	// Index of each sample's class in classes_.
	target := make([]int, nSamples)
	classIdx := make(map[int]int, m.nClasses_)
	for i, c := range m.classes_ {
		classIdx[c] = i
	}
	for i := 0; i < nSamples; i++ {
		target[i] = classIdx[int(y.At(i, 0))]
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}

	m.lossCurve_ = make([]float64, 0, m.epochs)
	prevLoss := math.Inf(1)
	converged := false

	hidden := make([]float64, m.hiddenUnits)
	act := make([]float64, m.hiddenUnits) // tanh activations before dropout
	mask := make([]float64, m.hiddenUnits)
	probs := make([]float64, m.nClasses_)
	deltaOut := make([]float64, m.nClasses_)
	deltaHidden := make([]float64, m.hiddenUnits)

	for epoch := 0; epoch < m.epochs; epoch++ {
		// Fisher-Yates shuffle from the seeded source.
		for i := nSamples - 1; i > 0; i-- {
			j := m.rand.Intn(i + 1)
			indices[i], indices[j] = indices[j], indices[i]
		}

		var epochLoss float64
		for start := 0; start < nSamples; start += m.batchSize {
			end := start + m.batchSize
			if end > nSamples {
				end = nSamples
			}

			for _, idx := range indices[start:end] {
				m.forward(X, idx, hidden, probs)
				copy(act, hidden)

				// Inverted dropout on hidden activations.
				if m.dropout > 0 {
					keep := 1 - m.dropout
					for h := range hidden {
						if m.rand.Float64() < m.dropout {
							mask[h] = 0
						} else {
							mask[h] = 1 / keep
						}
						hidden[h] *= mask[h]
					}
					m.outputFromHidden(hidden, probs)
				}

				p := probs[target[idx]]
				epochLoss += -math.Log(math.Max(p, 1e-15))

				// Output layer gradient: softmax + cross-entropy.
				for k := 0; k < m.nClasses_; k++ {
					deltaOut[k] = probs[k]
					if k == target[idx] {
						deltaOut[k] -= 1
					}
				}

				// Hidden layer gradient through dropout and tanh.
				for h := 0; h < m.hiddenUnits; h++ {
					var g float64
					for k := 0; k < m.nClasses_; k++ {
						g += deltaOut[k] * m.w2[k][h]
					}
					if m.dropout > 0 {
						g *= mask[h]
					}
					deltaHidden[h] = g * (1 - act[h]*act[h])
				}

				// SGD update.
				lr := m.learningRate
				for k := 0; k < m.nClasses_; k++ {
					for h := 0; h < m.hiddenUnits; h++ {
						m.w2[k][h] -= lr * deltaOut[k] * hidden[h]
					}
					m.b2[k] -= lr * deltaOut[k]
				}
				for h := 0; h < m.hiddenUnits; h++ {
					for j := 0; j < nFeatures; j++ {
						m.w1[h][j] -= lr * deltaHidden[h] * X.At(idx, j)
					}
					m.b1[h] -= lr * deltaHidden[h]
				}
			}
		}

		epochLoss /= float64(nSamples)
		if err := errors.CheckScalar("MLPClassifier.Fit loss", epochLoss, epoch); err != nil {
			return err
		}
		m.lossCurve_ = append(m.lossCurve_, epochLoss)
		m.nEpochs_ = epoch + 1

		if math.Abs(prevLoss-epochLoss) < m.tol {
			converged = true
			break
		}
		prevLoss = epochLoss
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("MLPClassifier", m.nEpochs_,
			"training loss was still changing when the epoch budget ran out"))
	}

	m.state.SetDimensions(nFeatures, nSamples)
	m.state.SetFitted()
	return nil
}

// extractClasses records the sorted unique labels in y.
func (m *MLPClassifier) extractClasses(y mat.Matrix) {
	rows, _ := y.Dims()
	seen := make(map[int]bool)
	for i := 0; i < rows; i++ {
		seen[int(y.At(i, 0))] = true
	}

	m.classes_ = make([]int, 0, len(seen))
	for c := range seen {
		m.classes_ = append(m.classes_, c)
	}
	sort.Ints(m.classes_)
	m.nClasses_ = len(m.classes_)
}

// initializeWeights draws small random initial weights scaled by fan-in.
func (m *MLPClassifier) initializeWeights(nFeatures int) {
	scale1 := math.Sqrt(1.0 / float64(nFeatures))
	m.w1 = make([][]float64, m.hiddenUnits)
	m.b1 = make([]float64, m.hiddenUnits)
	for h := range m.w1 {
		m.w1[h] = make([]float64, nFeatures)
		for j := range m.w1[h] {
			m.w1[h][j] = m.rand.NormFloat64() * scale1
		}
	}

	scale2 := math.Sqrt(1.0 / float64(m.hiddenUnits))
	m.w2 = make([][]float64, m.nClasses_)
	m.b2 = make([]float64, m.nClasses_)
	for k := range m.w2 {
		m.w2[k] = make([]float64, m.hiddenUnits)
		for h := range m.w2[k] {
			m.w2[k][h] = m.rand.NormFloat64() * scale2
		}
	}
}

// forward computes hidden activations and class probabilities for row idx.
func (m *MLPClassifier) forward(X mat.Matrix, idx int, hidden, probs []float64) {
	for h := 0; h < m.hiddenUnits; h++ {
		z := m.b1[h]
		for j := 0; j < m.nFeatures_; j++ {
			z += m.w1[h][j] * X.At(idx, j)
		}
		hidden[h] = math.Tanh(z)
	}
	m.outputFromHidden(hidden, probs)
}

// outputFromHidden computes softmax probabilities from hidden activations.
func (m *MLPClassifier) outputFromHidden(hidden, probs []float64) {
	maxScore := math.Inf(-1)
	for k := 0; k < m.nClasses_; k++ {
		z := m.b2[k]
		for h := 0; h < m.hiddenUnits; h++ {
			z += m.w2[k][h] * hidden[h]
		}
		probs[k] = z
		if z > maxScore {
			maxScore = z
		}
	}

	var sum float64
	for k := range probs {
		probs[k] = math.Exp(probs[k] - maxScore)
		sum += probs[k]
	}
	for k := range probs {
		probs[k] /= sum
	}
}

// Predict returns the most probable class label for each row of X.
func (m *MLPClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	probas, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}

	nSamples, _ := probas.Dims()
	predictions := mat.NewDense(nSamples, 1, nil)
	for i := 0; i < nSamples; i++ {
		best, bestP := 0, probas.At(i, 0)
		for k := 1; k < m.nClasses_; k++ {
			if p := probas.At(i, k); p > bestP {
				best, bestP = k, p
			}
		}
		predictions.Set(i, 0, float64(m.classes_[best]))
	}
	return predictions, nil
}

// PredictProba returns one probability per class per row of X. Columns follow
// the order of Classes() and each row sums to 1.
func (m *MLPClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !m.state.IsFitted() {
		return nil, errors.NewNotFittedError("MLPClassifier", "PredictProba")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != m.nFeatures_ {
		return nil, errors.NewDimensionError("MLPClassifier.PredictProba", m.nFeatures_, nFeatures, 1)
	}

	// Visualization grids push tens of thousands of rows through here, so
	// large batches are split across cores.
	probas := mat.NewDense(nSamples, m.nClasses_, nil)
	parallel.ParallelizeWithThreshold(nSamples, 256, func(start, end int) {
		hidden := make([]float64, m.hiddenUnits)
		probs := make([]float64, m.nClasses_)
		for i := start; i < end; i++ {
			m.forward(X, i, hidden, probs)
			for k := 0; k < m.nClasses_; k++ {
				probas.Set(i, k, probs[k])
			}
		}
	})
	return probas, nil
}

// Score returns the mean accuracy of Predict on X against labels y.
func (m *MLPClassifier) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := m.Predict(X)
	if err != nil {
		return 0, err
	}

	nSamples, _ := X.Dims()
	yRows, _ := y.Dims()
	if yRows != nSamples {
		return 0, errors.NewDimensionError("MLPClassifier.Score", nSamples, yRows, 0)
	}

	correct := 0
	for i := 0; i < nSamples; i++ {
		if predictions.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(nSamples), nil
}

// Classes returns the sorted class labels seen during fitting.
func (m *MLPClassifier) Classes() []int {
	out := make([]int, len(m.classes_))
	copy(out, m.classes_)
	return out
}

// LossCurve returns the training loss recorded at each epoch.
func (m *MLPClassifier) LossCurve() []float64 {
	out := make([]float64, len(m.lossCurve_))
	copy(out, m.lossCurve_)
	return out
}

// NEpochs returns the number of epochs actually run.
func (m *MLPClassifier) NEpochs() int {
	return m.nEpochs_
}

// IsFitted reports whether Fit has completed.
func (m *MLPClassifier) IsFitted() bool {
	return m.state.IsFitted()
}

// GetParams returns the hyperparameters.
func (m *MLPClassifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"hidden_units":  m.hiddenUnits,
		"epochs":        m.epochs,
		"dropout":       m.dropout,
		"learning_rate": m.learningRate,
		"batch_size":    m.batchSize,
		"random_state":  m.randomState,
		"tol":           m.tol,
	}
}

// SetParams updates hyperparameters by name.
func (m *MLPClassifier) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		switch key {
		case "hidden_units":
			m.hiddenUnits = value.(int)
		case "epochs":
			m.epochs = value.(int)
		case "dropout":
			m.dropout = value.(float64)
		case "learning_rate":
			m.learningRate = value.(float64)
		case "batch_size":
			m.batchSize = value.(int)
		case "random_state":
			m.randomState = value.(int64)
			if m.randomState >= 0 {
				m.rand = rand.New(rand.NewSource(m.randomState))
			}
		case "tol":
			m.tol = value.(float64)
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	return nil
}
