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

package reconcile

import (
	"fmt"
	"sort"

	"github.com/googlegenomics/samview/browser"
	"github.com/googlegenomics/samview/track"
)

// Registry records which tracks are currently loaded in a browser, keyed by the
// handle the browser returned.  A spec ID appears at most once.
//
// A Registry is owned by a single goroutine and is not safe for concurrent
// use.  The zero value is an empty registry.
type Registry struct {
	entries map[browser.Handle]track.Spec
	byID    map[string]browser.Handle
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add records that handle displays spec.
func (r *Registry) Add(handle browser.Handle, spec track.Spec) error {
	if r.entries == nil {
		r.entries = make(map[browser.Handle]track.Spec)
		r.byID = make(map[string]browser.Handle)
	}
	if _, ok := r.entries[handle]; ok {
		return fmt.Errorf("handle %q already registered", handle)
	}
	if other, ok := r.byID[spec.ID]; ok {
		return fmt.Errorf("track %q already loaded as %q", spec.ID, other)
	}
	r.entries[handle] = spec
	r.byID[spec.ID] = handle
	return nil
}

// Remove forgets handle and returns the spec it displayed.
func (r *Registry) Remove(handle browser.Handle) (track.Spec, bool) {
	spec, ok := r.entries[handle]
	if ok {
		delete(r.entries, handle)
		delete(r.byID, spec.ID)
	}
	return spec, ok
}

// Lookup returns the spec displayed by handle.
func (r *Registry) Lookup(handle browser.Handle) (track.Spec, bool) {
	spec, ok := r.entries[handle]
	return spec, ok
}

// Len returns the number of loaded tracks.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Handles returns every registered handle in unspecified order.
func (r *Registry) Handles() []browser.Handle {
	handles := make([]browser.Handle, 0, len(r.entries))
	for handle := range r.entries {
		handles = append(handles, handle)
	}
	return handles
}

// Specs returns the loaded specs ordered by ID.
func (r *Registry) Specs() []track.Spec {
	specs := make([]track.Spec, 0, len(r.entries))
	for _, spec := range r.entries {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}
