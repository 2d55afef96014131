package neural_network

import (
	"bytes"
	"encoding/gob"
	"math/rand"

	"github.com/prayaggordy/bivarnet/core/model"
)

// mlpSnapshot is the gob wire form of a fitted MLPClassifier.
type mlpSnapshot struct {
	HiddenUnits  int
	Epochs       int
	Dropout      float64
	LearningRate float64
	BatchSize    int
	RandomState  int64
	Tol          float64

	W1 [][]float64
	B1 []float64
	W2 [][]float64
	B2 []float64

	Classes   []int
	NFeatures int
	NEpochs   int
	LossCurve []float64
	Fitted    bool
}

// GobEncode implements gob.GobEncoder.
func (m *MLPClassifier) GobEncode() ([]byte, error) {
	snap := mlpSnapshot{
		HiddenUnits:  m.hiddenUnits,
		Epochs:       m.epochs,
		Dropout:      m.dropout,
		LearningRate: m.learningRate,
		BatchSize:    m.batchSize,
		RandomState:  m.randomState,
		Tol:          m.tol,
		W1:           m.w1,
		B1:           m.b1,
		W2:           m.w2,
		B2:           m.b2,
		Classes:      m.classes_,
		NFeatures:    m.nFeatures_,
		NEpochs:      m.nEpochs_,
		LossCurve:    m.lossCurve_,
		Fitted:       m.state.IsFitted(),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (m *MLPClassifier) GobDecode(data []byte) error {
	var snap mlpSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return err
	}

	m.state = model.NewStateManager()
	m.hiddenUnits = snap.HiddenUnits
	m.epochs = snap.Epochs
	m.dropout = snap.Dropout
	m.learningRate = snap.LearningRate
	m.batchSize = snap.BatchSize
	m.randomState = snap.RandomState
	m.tol = snap.Tol
	m.w1 = snap.W1
	m.b1 = snap.B1
	m.w2 = snap.W2
	m.b2 = snap.B2
	m.classes_ = snap.Classes
	m.nClasses_ = len(snap.Classes)
	m.nFeatures_ = snap.NFeatures
	m.nEpochs_ = snap.NEpochs
	m.lossCurve_ = snap.LossCurve

	// Restore the RNG so a loaded model can be refitted.
	if m.randomState >= 0 {
		m.rand = rand.New(rand.NewSource(m.randomState))
	} else {
		m.rand = rand.New(rand.NewSource(rand.Int63()))
	}

	if snap.Fitted {
		m.state.SetFitted()
	}
	return nil
}

// Save writes the fitted classifier to a file.
func (m *MLPClassifier) Save(path string) error {
	return model.SaveModel(m, path)
}

// Load reads a previously saved classifier from a file.
func (m *MLPClassifier) Load(path string) error {
	return model.LoadModel(m, path)
}
