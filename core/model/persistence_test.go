package model

import (
	"bytes"
	"path/filepath"
	"testing"
)

type fakeModel struct {
	Weights []float64
	Classes []int
	Fitted  bool
}

func TestSaveLoadModelRoundTrip(t *testing.T) {
	original := &fakeModel{
		Weights: []float64{0.5, -1.25, 3.0},
		Classes: []int{0, 1},
		Fitted:  true,
	}

	path := filepath.Join(t.TempDir(), "model.gob")
	if err := SaveModel(original, path); err != nil {
		t.Fatalf("SaveModel() error = %v", err)
	}

	restored := &fakeModel{}
	if err := LoadModel(restored, path); err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}

	if !restored.Fitted || len(restored.Weights) != 3 || restored.Weights[1] != -1.25 {
		t.Errorf("restored model = %+v, want %+v", restored, original)
	}
}

func TestSaveLoadModelWriterReader(t *testing.T) {
	original := &fakeModel{Weights: []float64{1, 2}, Classes: []int{0, 1}}

	var buf bytes.Buffer
	if err := SaveModelToWriter(original, &buf); err != nil {
		t.Fatalf("SaveModelToWriter() error = %v", err)
	}

	restored := &fakeModel{}
	if err := LoadModelFromReader(restored, &buf); err != nil {
		t.Fatalf("LoadModelFromReader() error = %v", err)
	}
	if len(restored.Classes) != 2 || restored.Classes[1] != 1 {
		t.Errorf("restored classes = %v, want [0 1]", restored.Classes)
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	restored := &fakeModel{}
	if err := LoadModel(restored, filepath.Join(t.TempDir(), "missing.gob")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
