package model

import (
	"sync"
	"testing"

	"github.com/LacombeLouis/MAPIE/pkg/errors"
)

func TestStateManagerLifecycle(t *testing.T) {
	s := NewStateManager()

	if s.IsFitted() {
		t.Error("new StateManager should not be fitted")
	}
	if err := s.RequireFitted("TimeSeriesRegressor", "Predict"); err == nil {
		t.Error("RequireFitted should fail before SetFitted")
	} else {
		var notFitted *errors.NotFittedError
		if !errors.As(err, &notFitted) {
			t.Errorf("expected *NotFittedError, got %T", err)
		}
	}

	s.SetFitted()
	s.SetDimensions(10, 500)

	if !s.IsFitted() {
		t.Error("StateManager should be fitted after SetFitted")
	}
	if err := s.RequireFitted("TimeSeriesRegressor", "Predict"); err != nil {
		t.Errorf("RequireFitted after SetFitted returned %v", err)
	}
	nFeatures, nSamples := s.GetDimensions()
	if nFeatures != 10 || nSamples != 500 {
		t.Errorf("GetDimensions() = (%d, %d), want (10, 500)", nFeatures, nSamples)
	}

	s.Reset()
	if s.IsFitted() {
		t.Error("StateManager should not be fitted after Reset")
	}
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	s := NewStateManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetFitted()
		}()
		go func() {
			defer wg.Done()
			_ = s.IsFitted()
		}()
	}
	wg.Wait()

	if !s.IsFitted() {
		t.Error("StateManager should be fitted after concurrent SetFitted calls")
	}
}
