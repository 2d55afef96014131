package dataset

import (
	"strings"
	"testing"
)

func TestLoadBivariatePartitionSizes(t *testing.T) {
	data, err := LoadBivariate()
	if err != nil {
		t.Fatalf("LoadBivariate() error = %v", err)
	}

	tests := []struct {
		name string
		part *Partition
		want int
	}{
		{"Train", data.Train, 1009},
		{"Validation", data.Validation, 300},
		{"Test", data.Test, 710},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.part.NumRows(); got != tt.want {
				t.Errorf("NumRows() = %d, want %d", got, tt.want)
			}
			if got := tt.part.Y.Len(); got != tt.want {
				t.Errorf("Y.Len() = %d, want %d", got, tt.want)
			}
			if _, c := tt.part.X.Dims(); c != 2 {
				t.Errorf("X columns = %d, want 2", c)
			}
		})
	}
}

func TestBivariatePredictorsPositive(t *testing.T) {
	data, err := LoadBivariate()
	if err != nil {
		t.Fatalf("LoadBivariate() error = %v", err)
	}

	for _, part := range []*Partition{data.Train, data.Validation, data.Test} {
		r, c := part.X.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if part.X.At(i, j) <= 0 {
					t.Fatalf("predictor at (%d, %d) = %v, want > 0", i, j, part.X.At(i, j))
				}
			}
		}
	}
}

func TestBivariateLabelsAreBinaryAndBothPresent(t *testing.T) {
	data, err := LoadBivariate()
	if err != nil {
		t.Fatalf("LoadBivariate() error = %v", err)
	}

	for _, part := range []*Partition{data.Train, data.Validation, data.Test} {
		counts := map[float64]int{}
		for i := 0; i < part.Y.Len(); i++ {
			counts[part.Y.AtVec(i)]++
		}
		if len(counts) != 2 {
			t.Fatalf("labels %v, want exactly {0, 1}", counts)
		}
		if counts[ClassOne] == 0 || counts[ClassTwo] == 0 {
			t.Fatalf("both classes must be present, got %v", counts)
		}
	}
}

func TestLoadBivariateDeterministic(t *testing.T) {
	a, err := LoadBivariate()
	if err != nil {
		t.Fatalf("LoadBivariate() error = %v", err)
	}
	b, err := LoadBivariate()
	if err != nil {
		t.Fatalf("LoadBivariate() error = %v", err)
	}

	if a.Train.X.At(0, 0) != b.Train.X.At(0, 0) || a.Train.Y.AtVec(0) != b.Train.Y.AtVec(0) {
		t.Error("repeated loads disagree")
	}
}

func TestClassName(t *testing.T) {
	if got := ClassName(ClassOne); got != "One" {
		t.Errorf("ClassName(ClassOne) = %q, want One", got)
	}
	if got := ClassName(ClassTwo); got != "Two" {
		t.Errorf("ClassName(ClassTwo) = %q, want Two", got)
	}
}

func TestParsePartitionRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"Wrong header", "X,Y,Z\n1,2,One\n"},
		{"Unknown class", "A,B,Class\n1,2,Three\n"},
		{"Non-numeric predictor", "A,B,Class\nfoo,2,One\n"},
		{"No rows", "A,B,Class\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parsePartition(strings.NewReader(tt.csv)); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestPartitionRange(t *testing.T) {
	data, err := LoadBivariate()
	if err != nil {
		t.Fatalf("LoadBivariate() error = %v", err)
	}

	min, max, err := data.Train.Range(0)
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if min >= max {
		t.Errorf("Range() = (%v, %v), want min < max", min, max)
	}
	if min <= 0 {
		t.Errorf("min = %v, want > 0 for predictor A", min)
	}

	if _, _, err := data.Train.Range(5); err == nil {
		t.Error("expected an error for out-of-range column")
	}
}
