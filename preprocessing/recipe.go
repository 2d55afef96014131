package preprocessing

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/prayaggordy/bivarnet/core/model"
	"github.com/prayaggordy/bivarnet/pkg/errors"
)

// Step is one named transform inside a Recipe.
type Step struct {
	Name        string
	Transformer model.Transformer
}

// Recipe chains transform steps into a single leakage-safe preprocessing
// specification. Fit estimates each step's parameters in order, on the
// training partition only: step k is fitted on the output of steps 1..k-1.
// Transform then replays the fitted steps unchanged on any partition, so the
// exact parameters estimated from training data are reused for validation,
// test and visualization grids.
type Recipe struct {
	state *model.StateManager
	steps []Step
}

// NewRecipe creates a Recipe with the given steps, applied in order.
func NewRecipe(steps ...Step) *Recipe {
	return &Recipe{
		state: model.NewStateManager(),
		steps: steps,
	}
}

// Fit fits every step in sequence on the training matrix X.
func (r *Recipe) Fit(X mat.Matrix) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "Recipe.Fit")
	}
	if len(r.steps) == 0 {
		return errors.NewValueError("Recipe.Fit", "recipe has no steps")
	}

	current := X
	for _, step := range r.steps {
		if err := step.Transformer.Fit(current); err != nil {
			return errors.Wrapf(err, "Recipe.Fit: step %q", step.Name)
		}
		out, err := step.Transformer.Transform(current)
		if err != nil {
			return errors.Wrapf(err, "Recipe.Fit: step %q", step.Name)
		}
		current = out
	}

	r.state.SetDimensions(cols, rows)
	r.state.SetFitted()
	return nil
}

// Transform replays the fitted steps on X.
func (r *Recipe) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("Recipe", "Transform")
	}

	current := X
	for _, step := range r.steps {
		out, err := step.Transformer.Transform(current)
		if err != nil {
			return nil, errors.Wrapf(err, "Recipe.Transform: step %q", step.Name)
		}
		current = out
	}
	return current, nil
}

// FitTransform fits the recipe on X and returns the transformed X.
func (r *Recipe) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := r.Fit(X); err != nil {
		return nil, err
	}
	return r.Transform(X)
}

// InverseTransform replays the fitted steps in reverse on X.
func (r *Recipe) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("Recipe", "InverseTransform")
	}

	current := X
	for i := len(r.steps) - 1; i >= 0; i-- {
		out, err := r.steps[i].Transformer.InverseTransform(current)
		if err != nil {
			return nil, errors.Wrapf(err, "Recipe.InverseTransform: step %q", r.steps[i].Name)
		}
		current = out
	}
	return current, nil
}

// IsFitted reports whether Fit has been called.
func (r *Recipe) IsFitted() bool {
	return r.state.IsFitted()
}

// Steps returns the step names in application order.
func (r *Recipe) Steps() []string {
	names := make([]string, len(r.steps))
	for i, s := range r.steps {
		names[i] = s.Name
	}
	return names
}

// String returns a human-readable description of the recipe.
func (r *Recipe) String() string {
	return fmt.Sprintf("Recipe(steps=[%s])", strings.Join(r.Steps(), ", "))
}
