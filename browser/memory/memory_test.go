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

package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlegenomics/samview/track"
)

func TestBrowser(t *testing.T) {
	ctx := context.Background()
	var b Browser

	h1, err := b.LoadTrack(ctx, track.Spec{ID: "b"})
	require.NoError(t, err)
	h2, err := b.LoadTrack(ctx, track.Spec{ID: "a"})
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	tracks := b.Tracks()
	require.Len(t, tracks, 2)
	assert.Equal(t, "a", tracks[0].ID)

	require.NoError(t, b.RemoveTrack(ctx, h1))
	assert.Error(t, b.RemoveTrack(ctx, h1))
	assert.Len(t, b.Tracks(), 1)

	require.NoError(t, b.Search(ctx, "TP53"))
	assert.Equal(t, "TP53", b.Locus())
}

func TestBrowser_FailLoad(t *testing.T) {
	b := Browser{FailLoad: func(spec track.Spec) error {
		if spec.ID == "bad" {
			return errors.New("corrupt index")
		}
		return nil
	}}
	_, err := b.LoadTrack(context.Background(), track.Spec{ID: "bad"})
	assert.EqualError(t, err, "corrupt index")
	assert.Empty(t, b.Tracks())
}
