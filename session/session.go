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

// Package session keeps a genome browser in step with the user's track rows
// and searches.
package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/googlegenomics/samview/browser"
	"github.com/googlegenomics/samview/reconcile"
	"github.com/googlegenomics/samview/region"
	"github.com/googlegenomics/samview/track"
)

var (
	// ErrNoTracks is returned by Load when no row yields a track.
	ErrNoTracks = errors.New("no tracks to load")
	// ErrNothingLoaded is returned by Search before any successful Load.
	ErrNothingLoaded = errors.New("no tracks loaded")
)

// Session owns the registry of tracks shown in one browser.  Operations are
// serialized, so a Session is safe for concurrent use.  Must be created with
// New.
type Session struct {
	browser    browser.Browser
	reconciler *reconcile.Reconciler
	host       string

	mu     sync.Mutex
	loaded *reconcile.Registry
	base   []track.Spec
	query  *region.Query
}

// New returns a Session for b.  Resources are validated with checker and all
// browser and checker traffic shares limiter.  Tracks are served from host.
func New(b browser.Browser, checker reconcile.Checker, limiter *reconcile.Limiter, host string) *Session {
	return &Session{
		browser:    b,
		reconciler: reconcile.New(checker, b, limiter),
		host:       host,
		loaded:     reconcile.NewRegistry(),
	}
}

// LoadReport describes the outcome of Load.
type LoadReport struct {
	// RowErrors lists rows that were skipped.
	RowErrors []*track.RowError
	// Result is nil if the tracks were not loaded.
	Result *reconcile.Result
}

// Load expands rows into tracks and displays them in place of the current
// ones, clearing any active search.  Malformed rows are skipped and reported.
// If an existence check fails the browser is left empty and the
// *reconcile.ExistenceError is returned.
func (s *Session) Load(ctx context.Context, rows []track.Row) (*LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	specs, rowErrs := track.Expand(s.host, rows)
	report := &LoadReport{RowErrors: rowErrs}
	for _, err := range rowErrs {
		log.Printf("Skipping row: %v", err)
	}
	if len(specs) == 0 {
		return report, ErrNoTracks
	}

	s.query = nil
	result, err := s.reconciler.Reconcile(ctx, specs, s.loaded)
	if err != nil {
		s.base = nil
		return report, err
	}
	s.base = specs
	report.Result = result
	log.Printf("Loaded %d of %d tracks", len(result.Loaded), len(specs))
	return report, nil
}

// Search reloads the current tracks restricted to q and moves the browser to
// q's locus.
func (s *Session) Search(ctx context.Context, q *region.Query) (*reconcile.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.base) == 0 {
		return nil, ErrNothingLoaded
	}
	log.Printf("Searching for %s", q)

	s.query = nil
	result, err := s.reconciler.Reconcile(ctx, track.WithQuery(s.base, q.Filter()), s.loaded)
	if err != nil {
		return nil, err
	}
	if err := s.browser.Search(ctx, q.Locus()); err != nil {
		return result, err
	}
	s.query = q
	return result, nil
}

// Tracks returns the displayed tracks ordered by ID.
func (s *Session) Tracks() []track.Spec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded.Specs()
}

// Query returns the active search, or nil.
func (s *Session) Query() *region.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}
