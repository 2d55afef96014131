package model

import (
	"sync"
	"testing"
)

func TestStateManagerLifecycle(t *testing.T) {
	sm := NewStateManager()

	if sm.IsFitted() {
		t.Error("new StateManager reports fitted")
	}
	if err := sm.RequireFitted(); err == nil {
		t.Error("RequireFitted() on unfitted state returned nil")
	}

	sm.SetDimensions(2, 100)
	sm.SetFitted()

	if !sm.IsFitted() {
		t.Error("IsFitted() = false after SetFitted()")
	}
	if err := sm.RequireFitted(); err != nil {
		t.Errorf("RequireFitted() after fit = %v", err)
	}
	nFeatures, nSamples := sm.GetDimensions()
	if nFeatures != 2 || nSamples != 100 {
		t.Errorf("GetDimensions() = (%d, %d), want (2, 100)", nFeatures, nSamples)
	}

	sm.Reset()
	if sm.IsFitted() {
		t.Error("IsFitted() = true after Reset()")
	}
	nFeatures, nSamples = sm.GetDimensions()
	if nFeatures != 0 || nSamples != 0 {
		t.Errorf("GetDimensions() after Reset() = (%d, %d), want (0, 0)", nFeatures, nSamples)
	}
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	sm := NewStateManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sm.SetFitted()
			sm.SetDimensions(2, 1009)
		}()
		go func() {
			defer wg.Done()
			_ = sm.IsFitted()
			_, _ = sm.GetDimensions()
		}()
	}
	wg.Wait()

	if !sm.IsFitted() {
		t.Error("IsFitted() = false after concurrent SetFitted calls")
	}
}
