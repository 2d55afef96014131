// Package bivarnet implements a neural-network classification workflow for a
// fixed bivariate dataset: two numeric predictors (A and B) and a two-level
// class outcome (One and Two), pre-split into training, validation, and test
// partitions.
//
// The workflow mirrors a common applied-modeling recipe: transform the skewed
// predictors with a Box-Cox power transformation, normalize them to zero mean
// and unit variance using statistics estimated from the training partition
// only, fit a single-hidden-layer neural network, and evaluate with accuracy,
// ROC-AUC, and a confusion matrix. A dense prediction grid over the predictor
// ranges renders the learned class boundary as a contour plot.
//
// # Packages
//
//   - dataset: the embedded bivariate partitions and prediction grids
//   - preprocessing: BoxCoxTransformer, StandardScaler, and the Recipe that
//     chains them with train-only fitting
//   - sklearn/neural_network: MLPClassifier, a single-hidden-layer network
//     with dropout regularization
//   - metrics: accuracy, ROC-AUC, ROC curves, and confusion matrices
//   - visualize: scatter and decision-boundary plots built on gonum/plot
//   - core/model: shared estimator interfaces and fitted-state tracking
//   - core/parallel: chunked parallel execution for batch inference
//   - pkg/errors: typed model errors and the warning mechanism
//   - pkg/log: structured slog setup with stack-trace extraction
//
// # Quick Start
//
//	data, err := dataset.LoadBivariate()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	recipe := preprocessing.NewRecipe(
//	    preprocessing.Step{Name: "boxcox", Transformer: preprocessing.NewBoxCoxTransformer()},
//	    preprocessing.Step{Name: "normalize", Transformer: preprocessing.NewStandardScaler()},
//	)
//	trainX, err := recipe.FitTransform(data.Train.X)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	clf := neural_network.NewMLPClassifier(
//	    neural_network.WithHiddenUnits(5),
//	    neural_network.WithEpochs(100),
//	    neural_network.WithDropout(0.1),
//	    neural_network.WithSeed(2026),
//	)
//	if err := clf.Fit(trainX, data.Train.YColumn()); err != nil {
//	    log.Fatal(err)
//	}
//
// The cmd/bivarnet command runs the full walkthrough and writes the metric
// report and both plots.
package bivarnet
