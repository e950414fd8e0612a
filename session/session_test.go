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

package session

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlegenomics/samview/browser/memory"
	"github.com/googlegenomics/samview/reconcile"
	"github.com/googlegenomics/samview/region"
	"github.com/googlegenomics/samview/track"
)

// fakeServer answers existence checks for a fixed set of missing paths and
// records every URL it was asked about.
type fakeServer struct {
	missing string

	mu   sync.Mutex
	urls []string
}

type notFound struct{}

func (notFound) Error() string   { return "not found" }
func (notFound) StatusCode() int { return 404 }

func (f *fakeServer) Check(_ context.Context, resource track.Resource) error {
	f.mu.Lock()
	f.urls = append(f.urls, resource.URL)
	f.mu.Unlock()
	if f.missing != "" && strings.Contains(resource.Path, f.missing) {
		return notFound{}
	}
	return nil
}

func newTestSession() (*Session, *memory.Browser, *fakeServer) {
	b := &memory.Browser{}
	server := &fakeServer{}
	return New(b, server, reconcile.NewLimiter(4), ""), b, server
}

func TestLoad(t *testing.T) {
	s, b, _ := newTestSession()
	report, err := s.Load(context.Background(), []track.Row{
		{Path: "2333:/data", Samples: "A;B"},
		{Path: "bad", Samples: "C"},
	})
	require.NoError(t, err)
	require.Len(t, report.RowErrors, 1)
	assert.Equal(t, 1, report.RowErrors[0].Row)
	assert.Len(t, report.Result.Loaded, 2)

	assert.Len(t, s.Tracks(), 2)
	assert.Equal(t, s.Tracks(), b.Tracks())
}

func TestLoad_NoValidRowsKeepsCurrentTracks(t *testing.T) {
	s, b, _ := newTestSession()
	ctx := context.Background()
	_, err := s.Load(ctx, []track.Row{{Path: "2333:/data", Samples: "A"}})
	require.NoError(t, err)

	report, err := s.Load(ctx, []track.Row{{Path: "nope", Samples: "B"}})
	assert.Equal(t, ErrNoTracks, err)
	assert.Len(t, report.RowErrors, 1)
	assert.Len(t, b.Tracks(), 1)
}

func TestLoad_MissingFileLeavesBrowserEmpty(t *testing.T) {
	s, b, server := newTestSession()
	ctx := context.Background()
	_, err := s.Load(ctx, []track.Row{{Path: "2333:/data", Samples: "A"}})
	require.NoError(t, err)

	server.missing = "/B/"
	_, err = s.Load(ctx, []track.Row{{Path: "2333:/data", Samples: "A B"}})
	require.Error(t, err)
	existence, ok := err.(*reconcile.ExistenceError)
	require.True(t, ok, "wrong error type %T", err)
	assert.Equal(t, reconcile.NotFound, existence.Kind)

	assert.Empty(t, s.Tracks())
	assert.Empty(t, b.Tracks())

	_, err = s.Search(ctx, &region.Query{Kind: region.Gene, Text: "TP53"})
	assert.Equal(t, ErrNothingLoaded, err)
}

func TestSearch(t *testing.T) {
	s, b, server := newTestSession()
	ctx := context.Background()

	_, err := s.Search(ctx, &region.Query{Kind: region.Gene, Text: "TP53"})
	assert.Equal(t, ErrNothingLoaded, err)

	_, err = s.Load(ctx, []track.Row{{Path: "2333:/data", Samples: "A B"}})
	require.NoError(t, err)

	q, err := region.ParseQuery(region.Coord, "chr1:1000", region.DefaultSearchPadding)
	require.NoError(t, err)
	result, err := s.Search(ctx, q)
	require.NoError(t, err)
	assert.Len(t, result.Loaded, 2)
	assert.Equal(t, 2, result.Unloaded)

	assert.Equal(t, "1:800-1200", b.Locus())
	assert.Equal(t, q, s.Query())
	for _, spec := range b.Tracks() {
		assert.True(t, strings.HasSuffix(spec.URL, ".bam?region=1:800-1200"), spec.URL)
		assert.True(t, strings.HasSuffix(spec.IndexURL, ".bam.bai?region=1:800-1200"), spec.IndexURL)
	}

	// Filtered resources are validated like any other.
	server.mu.Lock()
	last := server.urls[len(server.urls)-1]
	server.mu.Unlock()
	assert.Contains(t, last, "?region=1:800-1200")

	// A second search filters the original tracks, not the filtered ones.
	_, err = s.Search(ctx, &region.Query{Kind: region.Gene, Text: "BRCA2"})
	require.NoError(t, err)
	assert.Equal(t, "BRCA2", b.Locus())
	for _, spec := range b.Tracks() {
		assert.True(t, strings.HasSuffix(spec.URL, ".bam?gene=BRCA2"), spec.URL)
	}

	// Loading clears the search.
	_, err = s.Load(ctx, []track.Row{{Path: "2333:/data", Samples: "A"}})
	require.NoError(t, err)
	assert.Nil(t, s.Query())
	assert.False(t, strings.Contains(b.Tracks()[0].URL, "?"))
}
