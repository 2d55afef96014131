// Package model defines the shared estimator contracts and state management
// used by every transformer and classifier in bivarnet.
package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for anything that learns parameters from data.
type Fitter interface {
	// Fit learns parameters from the training matrix X and targets y.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for fitted models that produce predictions.
type Predictor interface {
	// Predict returns one prediction row per input row.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Transformer is the interface for preprocessing steps. A Transformer is
// fitted once (on training data only) and then applied to any partition.
type Transformer interface {
	// Fit learns the transform parameters from X.
	Fit(X mat.Matrix) error

	// Transform applies the fitted parameters to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// InverseTransform maps transformed values back to the original scale.
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}

// Classifier combines the interfaces a classification model must satisfy.
type Classifier interface {
	Fitter
	Predictor

	// PredictProba returns one probability per class per input row.
	// Each row sums to 1.
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes returns the sorted class labels seen during fitting.
	Classes() []int

	// Score returns the mean accuracy on the given data and labels.
	Score(X, y mat.Matrix) (float64, error)
}

// ParameterGetter is the interface for models that expose their hyperparameters.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow hyperparameter updates.
type ParameterSetter interface {
	SetParams(params map[string]interface{}) error
}

// Persistable is the interface for models that can be saved and loaded.
type Persistable interface {
	Save(path string) error
	Load(path string) error
}
