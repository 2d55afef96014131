package log

// Standard attribute keys for ML operations. Using these keys keeps logs
// filterable across packages.
const (
	// ModelNameKey identifies the estimator type, e.g. "MLPClassifier".
	ModelNameKey = "model.name"

	// OperationKey names the ML operation: "fit", "predict", "transform", "score".
	OperationKey = "ml.operation"

	// PhaseKey names the lifecycle phase: "training", "validation", "inference".
	PhaseKey = "ml.phase"

	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns being processed.
	FeaturesKey = "data.features"

	// EpochKey is the current training epoch.
	EpochKey = "training.epoch"

	// LossKey is the training loss at a given epoch.
	LossKey = "metrics.loss"

	// AccuracyKey is classification accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// ROCAUCKey is the area under the ROC curve in [0, 1].
	ROCAUCKey = "metrics.roc_auc"

	// DurationMsKey is the wall time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// RandomSeedKey is the seed used for any stochastic step.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"

	PhaseTraining      = "training"
	PhaseValidation    = "validation"
	PhaseTesting       = "testing"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
)
