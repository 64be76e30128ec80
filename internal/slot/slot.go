// Package slot holds one asynchronously loaded model.
//
// A Slot issues a single load per lifetime on a background goroutine and
// exposes the outcome as an explicit State. The render thread polls it once
// per frame; polling never blocks, so the frame loop keeps running while the
// asset is in flight.
package slot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/internal/logger"
)

// errNoScene is reported when a loader returns neither a scene nor an error.
var errNoScene = errors.New("loader returned no scene")

// Slot is not safe for concurrent use except for the internal load
// goroutine; Mount, Poll, Update and State belong to the render thread.
type Slot struct {
	ref    asset.Ref
	loader asset.Loader
	log    *zap.Logger

	once    sync.Once
	results chan State
	started time.Time

	state     State
	transform Transform
}

// New creates an unmounted slot.
func New(ref asset.Ref, loader asset.Loader, transform Transform) *Slot {
	return &Slot{
		ref:       ref,
		loader:    loader,
		log:       logger.Named("slot").With(zap.Stringer("ref", ref)),
		results:   make(chan State, 1),
		state:     LoadingState(),
		transform: transform,
	}
}

// Ref returns the slot's asset reference.
func (s *Slot) Ref() asset.Ref {
	return s.ref
}

// Mount starts the load. Only the first call has any effect.
func (s *Slot) Mount(ctx context.Context) {
	s.once.Do(func() {
		s.started = time.Now()
		s.log.Info("load requested")
		go s.load(ctx)
	})
}

func (s *Slot) load(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.results <- FailedState(fmt.Errorf("loader panicked: %v", r))
		}
	}()
	scene, err := s.loader.Load(ctx, s.ref)
	switch {
	case err != nil:
		s.results <- FailedState(err)
	case scene == nil:
		s.results <- FailedState(errNoScene)
	default:
		s.results <- ReadyState(scene)
	}
}

// Poll checks for a finished load without blocking. changed is true on the
// single call that observes the transition out of Loading.
func (s *Slot) Poll() (st State, changed bool) {
	if s.state.Settled() {
		return s.state, false
	}
	select {
	case r := <-s.results:
		s.state = r
		s.logSettled()
		return s.state, true
	default:
		return s.state, false
	}
}

// Wait blocks until the load settles or ctx is done.
func (s *Slot) Wait(ctx context.Context) (State, error) {
	if s.state.Settled() {
		return s.state, nil
	}
	select {
	case r := <-s.results:
		s.state = r
		s.logSettled()
		return s.state, nil
	case <-ctx.Done():
		return s.state, ctx.Err()
	}
}

func (s *Slot) logSettled() {
	elapsed := zap.Duration("elapsed", time.Since(s.started))
	if s.state.Phase == Failed {
		s.log.Error("load failed", zap.Error(s.state.Err), elapsed)
		return
	}
	s.log.Info("load finished", zap.Int("meshes", len(s.state.Scene.Meshes)), elapsed)
}

// State returns the last polled state.
func (s *Slot) State() State {
	return s.state
}

// Update runs the per-frame hook. The transform only advances once the
// model is on screen.
func (s *Slot) Update(dt float32) {
	if s.state.Phase != Ready {
		return
	}
	s.transform = s.transform.Advance(dt)
}

// Transform returns the model's current placement.
func (s *Slot) Transform() Transform {
	return s.transform
}
