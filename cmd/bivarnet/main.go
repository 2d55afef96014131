// Command bivarnet runs the bivariate classification walkthrough end to end:
// it loads the fixed train/validation/test partitions, fits a Box-Cox +
// normalize recipe on the training data, trains a single-hidden-layer neural
// network, reports validation metrics, and renders the training scatter and
// the learned decision boundary as PNG files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/prayaggordy/bivarnet/core/model"
	"github.com/prayaggordy/bivarnet/dataset"
	"github.com/prayaggordy/bivarnet/metrics"
	"github.com/prayaggordy/bivarnet/pkg/errors"
	"github.com/prayaggordy/bivarnet/pkg/log"
	"github.com/prayaggordy/bivarnet/preprocessing"
	"github.com/prayaggordy/bivarnet/sklearn/neural_network"
	"github.com/prayaggordy/bivarnet/visualize"
)

func main() {
	var (
		epochs       = flag.Int("epochs", 100, "training epochs")
		hiddenUnits  = flag.Int("hidden-units", 5, "hidden layer size")
		dropout      = flag.Float64("dropout", 0.1, "dropout rate in [0, 1)")
		learningRate = flag.Float64("learning-rate", 0.05, "SGD learning rate")
		batchSize    = flag.Int("batch-size", 32, "mini-batch size")
		seed         = flag.Int64("seed", 2026, "random seed")
		gridSteps    = flag.Int("grid-steps", 100, "grid resolution per axis for the boundary plot")
		outDir       = flag.String("out", ".", "directory for generated PNG files")
		modelOut     = flag.String("model-out", "", "optional path to save the fitted model (gob)")
		logLevel     = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	log.SetupLogger(*logLevel)
	errors.SetWarningHandler(func(w error) {
		slog.Warn("model warning", log.ErrAttr(w))
	})

	if err := run(*epochs, *hiddenUnits, *dropout, *learningRate, *batchSize, *seed, *gridSteps, *outDir, *modelOut); err != nil {
		slog.Error("run failed", log.ErrAttr(err))
		os.Exit(1)
	}
}

func run(epochs, hiddenUnits int, dropout, learningRate float64, batchSize int, seed int64, gridSteps int, outDir, modelOut string) error {
	data, err := dataset.LoadBivariate()
	if err != nil {
		return err
	}
	slog.Info("loaded bivariate partitions",
		slog.Int("train", data.Train.NumRows()),
		slog.Int("validation", data.Validation.NumRows()),
		slog.Int("test", data.Test.NumRows()),
	)

	// The recipe is fitted on the training partition only; the same fitted
	// parameters are replayed on every other partition and on the grid.
	recipe := preprocessing.NewRecipe(
		preprocessing.Step{Name: "boxcox", Transformer: preprocessing.NewBoxCoxTransformer()},
		preprocessing.Step{Name: "normalize", Transformer: preprocessing.NewStandardScaler()},
	)
	trainX, err := recipe.FitTransform(data.Train.X)
	if err != nil {
		return err
	}
	valX, err := recipe.Transform(data.Validation.X)
	if err != nil {
		return err
	}
	if _, err := recipe.Transform(data.Test.X); err != nil {
		return err
	}

	clf := neural_network.NewMLPClassifier(
		neural_network.WithHiddenUnits(hiddenUnits),
		neural_network.WithEpochs(epochs),
		neural_network.WithDropout(dropout),
		neural_network.WithLearningRate(learningRate),
		neural_network.WithBatchSize(batchSize),
		neural_network.WithSeed(seed),
	)

	start := time.Now()
	if err := clf.Fit(trainX, data.Train.YColumn()); err != nil {
		return err
	}
	slog.Info("model fitted",
		slog.String(log.ModelNameKey, "MLPClassifier"),
		slog.String(log.OperationKey, log.OperationFit),
		slog.Int(log.EpochKey, clf.NEpochs()),
		slog.Int64(log.RandomSeedKey, seed),
		slog.Int64(log.DurationMsKey, time.Since(start).Milliseconds()),
	)

	if err := report(clf, valX, data.Validation); err != nil {
		return err
	}

	if err := render(clf, recipe, data, gridSteps, outDir); err != nil {
		return err
	}

	if modelOut != "" {
		if err := clf.Save(modelOut); err != nil {
			return err
		}
		slog.Info("model saved", slog.String("path", modelOut))
	}
	return nil
}

// report prints validation accuracy, ROC-AUC and the confusion matrix.
func report(clf model.Classifier, valX mat.Matrix, val *dataset.Partition) error {
	labels, err := clf.Predict(valX)
	if err != nil {
		return err
	}
	probas, err := clf.PredictProba(valX)
	if err != nil {
		return err
	}

	n := val.Y.Len()
	predVec := mat.NewVecDense(n, nil)
	scoreVec := mat.NewVecDense(n, nil)
	oneCol := classColumn(clf.Classes(), dataset.ClassOne)
	for i := 0; i < n; i++ {
		predVec.SetVec(i, labels.At(i, 0))
		scoreVec.SetVec(i, probas.At(i, oneCol))
	}

	acc, err := metrics.Accuracy(val.Y, predVec)
	if err != nil {
		return err
	}
	auc, err := metrics.AUC(val.Y, scoreVec)
	if err != nil {
		return err
	}
	cm, err := metrics.NewConfusionMatrix(val.Y, predVec)
	if err != nil {
		return err
	}

	slog.Info("validation metrics",
		slog.String(log.PhaseKey, log.PhaseValidation),
		slog.Float64(log.AccuracyKey, acc),
		slog.Float64(log.ROCAUCKey, auc),
	)

	fmt.Printf("validation accuracy: %.4f\n", acc)
	fmt.Printf("validation roc_auc:  %.4f\n", auc)
	fmt.Println("confusion matrix (truth x prediction):")
	fmt.Println(cm)
	return nil
}

// render draws the training scatter and the decision boundary over the
// validation partition.
func render(clf model.Classifier, recipe *preprocessing.Recipe, data *dataset.Bivariate, gridSteps int, outDir string) error {
	scatter, err := visualize.Scatter(data.Train, "bivariate training data")
	if err != nil {
		return err
	}
	scatterPath := filepath.Join(outDir, "scatter.png")
	if err := visualize.SavePNG(scatter, scatterPath); err != nil {
		return err
	}

	// Grid over the raw predictor ranges, transformed with the same fitted
	// recipe the model was trained on.
	aMin, aMax, err := data.Train.Range(0)
	if err != nil {
		return err
	}
	bMin, bMax, err := data.Train.Range(1)
	if err != nil {
		return err
	}
	grid, err := dataset.NewGrid(aMin, aMax, bMin, bMax, gridSteps)
	if err != nil {
		return err
	}

	gridX, err := recipe.Transform(grid.X)
	if err != nil {
		return err
	}
	gridProbas, err := clf.PredictProba(gridX)
	if err != nil {
		return err
	}

	pg, err := visualize.NewProbabilityGrid(grid, gridProbas, classColumn(clf.Classes(), dataset.ClassOne))
	if err != nil {
		return err
	}
	boundary, err := visualize.Boundary(data.Validation, pg, "decision boundary on validation data")
	if err != nil {
		return err
	}
	boundaryPath := filepath.Join(outDir, "boundary.png")
	if err := visualize.SavePNG(boundary, boundaryPath); err != nil {
		return err
	}

	slog.Info("plots written",
		slog.String("scatter", scatterPath),
		slog.String("boundary", boundaryPath),
	)
	return nil
}

// classColumn finds the PredictProba column for a class label.
func classColumn(classes []int, label int) int {
	for i, c := range classes {
		if c == label {
			return i
		}
	}
	return 0
}
