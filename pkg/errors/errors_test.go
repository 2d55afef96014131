package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("MLPClassifier", "Predict")

	var notFitted *NotFittedError
	if !As(err, &notFitted) {
		t.Fatal("As() failed to extract *NotFittedError")
	}
	if notFitted.ModelName != "MLPClassifier" || notFitted.Method != "Predict" {
		t.Errorf("fields = %+v", notFitted)
	}
	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("message = %q, want mention of not fitted", err.Error())
	}
}

func TestDimensionErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		axis int
		want string
	}{
		{name: "feature axis", axis: 1, want: "features"},
		{name: "row axis", axis: 0, want: "rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("Transform", 2, 3, tt.axis)
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("message = %q, want mention of %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("dropout", "must be in [0, 1)", 1.5)

	var vErr *ValidationError
	if !As(err, &vErr) {
		t.Fatal("As() failed to extract *ValidationError")
	}
	if vErr.ParamName != "dropout" {
		t.Errorf("ParamName = %q, want dropout", vErr.ParamName)
	}
	if !strings.Contains(err.Error(), "1.5") {
		t.Errorf("message %q does not include the offending value", err.Error())
	}
}

func TestNumericalInstabilityErrorTruncatesValues(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7}
	err := NewNumericalInstabilityError("softmax", values, 12)

	msg := err.Error()
	if !strings.Contains(msg, "...") {
		t.Errorf("message %q should truncate long value lists", msg)
	}
	if !strings.Contains(msg, "iteration 12") {
		t.Errorf("message %q should include the iteration", msg)
	}
}

func TestErrorChainPreservesSentinel(t *testing.T) {
	err := Wrapf(Wrap(ErrEmptyData, "loading partition"), "loading %s", "train")

	if !Is(err, ErrEmptyData) {
		t.Error("wrapped chain lost ErrEmptyData")
	}
	if !strings.Contains(err.Error(), "loading train") {
		t.Errorf("message = %q, want outermost wrap text", err.Error())
	}
}

func TestErrorsCarryStackTraces(t *testing.T) {
	err := NewValueError("BoxCox", "all values must be positive")

	// %+v rendering of a cockroachdb error includes the attached stack.
	detailed := fmt.Sprintf("%+v", err)
	if !strings.Contains(detailed, "errors_test.go") {
		t.Errorf("detailed rendering missing stack trace:\n%s", detailed)
	}
}

func TestWarningHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(func(w error) {})

	w := NewConvergenceWarning("MLPClassifier", 100, "")
	Warn(w)

	if captured == nil {
		t.Fatal("handler was not invoked")
	}
	var cw *ConvergenceWarning
	if !As(captured, &cw) || cw.Iterations != 100 {
		t.Errorf("captured = %v", captured)
	}
}

func TestUndefinedMetricWarningMessage(t *testing.T) {
	w := NewUndefinedMetricWarning("roc_auc", "only one class present in y_true", 0.5)
	if !strings.Contains(w.Error(), "roc_auc") || !strings.Contains(w.Error(), "0.5") {
		t.Errorf("message = %q", w.Error())
	}
}
