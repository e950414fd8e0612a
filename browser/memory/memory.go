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

// Package memory provides an in-process browser.Browser that only records the
// tracks it was asked to display.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/googlegenomics/samview/browser"
	"github.com/googlegenomics/samview/track"
)

// Browser is a browser.Browser that keeps its tracks in memory.  It is safe
// for concurrent use.  The zero value is ready to use.
type Browser struct {
	mu     sync.Mutex
	tracks map[browser.Handle]track.Spec
	locus  string

	// FailLoad, if set, is consulted before each load; a non-nil result fails
	// that load.
	FailLoad func(track.Spec) error
}

// LoadTrack records spec under a fresh handle.
func (b *Browser) LoadTrack(ctx context.Context, spec track.Spec) (browser.Handle, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if b.FailLoad != nil {
		if err := b.FailLoad(spec); err != nil {
			return "", err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tracks == nil {
		b.tracks = make(map[browser.Handle]track.Spec)
	}
	handle := browser.Handle(uuid.New().String())
	b.tracks[handle] = spec
	return handle, nil
}

// RemoveTrack forgets the track behind handle.
func (b *Browser) RemoveTrack(_ context.Context, handle browser.Handle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.tracks[handle]; !ok {
		return fmt.Errorf("unknown track handle %q", handle)
	}
	delete(b.tracks, handle)
	return nil
}

// Search records locus as the current position.
func (b *Browser) Search(_ context.Context, locus string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.locus = locus
	return nil
}

// Tracks returns the displayed tracks ordered by ID.
func (b *Browser) Tracks() []track.Spec {
	b.mu.Lock()
	defer b.mu.Unlock()
	specs := make([]track.Spec, 0, len(b.tracks))
	for _, spec := range b.tracks {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}

// Locus returns the last searched locus.
func (b *Browser) Locus() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locus
}
