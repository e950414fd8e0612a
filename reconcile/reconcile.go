// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reconcile brings the set of tracks loaded in a genome browser in line
// with a desired set.
//
// A reconciliation runs in three phases, each finishing before the next one
// starts:
//
//  1. every loaded track is removed;
//  2. every resource of every desired track is checked for existence, and the
//     first failed check cancels the others;
//  3. if all checks passed, every desired track is loaded.
//
// All phases share one Limiter.  The Registry is only touched by the goroutine
// calling Reconcile; workers report their results over channels.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/googlegenomics/samview/browser"
	"github.com/googlegenomics/samview/track"
)

var errNilRegistry = errors.New("nil registry")

// Checker confirms that a resource can be served.  Errors that implement
// StatusCode() int are classified by status; a 404 is reported as NotFound.
type Checker interface {
	Check(ctx context.Context, resource track.Resource) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, resource track.Resource) error

// Check calls f(ctx, resource).
func (f CheckerFunc) Check(ctx context.Context, resource track.Resource) error {
	return f(ctx, resource)
}

// Loader is the part of browser.Browser used during reconciliation.
type Loader interface {
	LoadTrack(ctx context.Context, spec track.Spec) (browser.Handle, error)
	RemoveTrack(ctx context.Context, handle browser.Handle) error
}

// Reconciler reconciles registries against desired track sets.  Must be
// created with New.
type Reconciler struct {
	checker Checker
	loader  Loader
	limiter *Limiter
}

// New returns a Reconciler that validates resources with checker, drives
// loader and bounds all of its concurrent work with limiter.  A nil limiter
// selects a new Limiter with DefaultConcurrency.
func New(checker Checker, loader Loader, limiter *Limiter) *Reconciler {
	if limiter == nil {
		limiter = NewLimiter(DefaultConcurrency)
	}
	return &Reconciler{checker, loader, limiter}
}

// Result summarizes a reconciliation that got past the existence checks.
type Result struct {
	// Loaded lists the specs that are now displayed.
	Loaded []track.Spec
	// LoadErrors holds one entry per track that failed to load.
	LoadErrors []*LoadError
	// Unloaded counts the tracks removed in the first phase.
	Unloaded int
}

// Reconcile replaces the tracks recorded in loaded with desired.
//
// The previously loaded tracks are always removed, even when validation later
// fails, so a failed reconciliation leaves the browser empty.  If an existence
// check fails the returned error is an *ExistenceError and nothing is loaded.
// Individual load failures are reported in Result.LoadErrors and do not stop
// the remaining loads.  Specs with duplicate IDs are loaded once.
//
// If ctx ends first, the tracks not yet removed stay in loaded and tracks
// already loaded are recorded in loaded, so loaded always matches the browser.
// The error then wraps ctx.Err(), and the Result, if any, covers the loads that
// were started.
func (r *Reconciler) Reconcile(ctx context.Context, desired []track.Spec, loaded *Registry) (*Result, error) {
	if loaded == nil {
		return nil, errNilRegistry
	}
	unloaded, err := r.unload(ctx, loaded)
	if err != nil {
		return nil, err
	}
	result := &Result{Unloaded: unloaded}

	desired = uniqueSpecs(desired)
	if err := r.validate(ctx, desired); err != nil {
		return nil, err
	}

	if err := r.load(ctx, desired, loaded, result); err != nil {
		return result, err
	}
	return result, nil
}

// unload removes every track in loaded and returns how many were removed.
// Entries are dropped from the registry once removal was attempted, whether or
// not the browser reports success.  Removals that never ran, or that failed
// because ctx ended, keep their entries.
func (r *Reconciler) unload(ctx context.Context, loaded *Registry) (int, error) {
	handles := loaded.Handles()
	if len(handles) == 0 {
		return 0, nil
	}

	type unloadResult struct {
		handle browser.Handle
		err    error
	}
	results := make(chan unloadResult, len(handles))
	var wg sync.WaitGroup
	for _, handle := range handles {
		if err := r.limiter.Acquire(ctx); err != nil {
			break
		}
		wg.Add(1)
		go func(handle browser.Handle) {
			defer wg.Done()
			defer r.limiter.Release()
			results <- unloadResult{handle, r.loader.RemoveTrack(ctx, handle)}
		}(handle)
	}
	wg.Wait()
	close(results)

	removed := 0
	for res := range results {
		if res.err != nil && ctx.Err() != nil {
			continue
		}
		spec, _ := loaded.Remove(res.handle)
		if res.err != nil {
			log.Printf("Failed to remove track %s: %v", spec.Name, res.err)
		}
		removed++
	}
	if err := ctx.Err(); err != nil && loaded.Len() > 0 {
		return removed, fmt.Errorf("removing tracks: %v", err)
	}
	return removed, nil
}

// validate checks every resource of desired.  The first failure cancels all
// outstanding checks and is returned; later failures are discarded.
func (r *Reconciler) validate(ctx context.Context, desired []track.Spec) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once  sync.Once
		first error
		wg    sync.WaitGroup
	)
	fail := func(err error) {
		once.Do(func() {
			first = err
			cancel()
		})
	}

dispatch:
	for _, spec := range desired {
		for _, resource := range spec.Resources() {
			if err := r.limiter.Acquire(ctx); err != nil {
				break dispatch
			}
			wg.Add(1)
			go func(resource track.Resource) {
				defer wg.Done()
				defer r.limiter.Release()
				if err := r.checker.Check(ctx, resource); err != nil {
					if ctx.Err() != nil {
						// Cancelled by an earlier failure or by the caller.
						return
					}
					fail(newExistenceError(resource, err))
				}
			}(resource)
		}
	}
	wg.Wait()

	if first != nil {
		log.Printf("Existence check failed: %v", first)
		return first
	}
	// The caller's context may have ended without any check failing.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("checking resources: %v", err)
	}
	return nil
}

// load displays every spec in desired and records the handles in loaded.  If
// ctx ends before every load has started, the remaining specs are skipped and
// the cancellation is returned.
func (r *Reconciler) load(ctx context.Context, desired []track.Spec, loaded *Registry, result *Result) error {
	type loadResult struct {
		spec   track.Spec
		handle browser.Handle
		err    error
	}
	results := make(chan loadResult, len(desired))
	var (
		wg        sync.WaitGroup
		cancelled error
	)
	for _, spec := range desired {
		if err := r.limiter.Acquire(ctx); err != nil {
			cancelled = err
			break
		}
		wg.Add(1)
		go func(spec track.Spec) {
			defer wg.Done()
			defer r.limiter.Release()
			handle, err := r.loader.LoadTrack(ctx, spec)
			results <- loadResult{spec, handle, err}
		}(spec)
	}
	wg.Wait()
	close(results)

	for res := range results {
		if res.err == nil {
			res.err = loaded.Add(res.handle, res.spec)
		}
		if res.err != nil {
			log.Printf("Failed to load track %s: %v", res.spec.Name, res.err)
			result.LoadErrors = append(result.LoadErrors, &LoadError{res.spec, res.err})
			continue
		}
		result.Loaded = append(result.Loaded, res.spec)
	}
	if cancelled != nil {
		return fmt.Errorf("loading tracks: %v", cancelled)
	}
	return nil
}

func uniqueSpecs(specs []track.Spec) []track.Spec {
	seen := make(map[string]bool, len(specs))
	unique := make([]track.Spec, 0, len(specs))
	for _, spec := range specs {
		if seen[spec.ID] {
			log.Printf("Ignoring duplicate track %q", spec.ID)
			continue
		}
		seen[spec.ID] = true
		unique = append(unique, spec)
	}
	return unique
}
