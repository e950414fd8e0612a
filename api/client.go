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

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"
)

// ErrObjectNotExist is returned by ObjectHandle methods when the object does
// not exist.
var ErrObjectNotExist = errors.New("object does not exist")

// Client is an interface to the storage engine.
type Client interface {
	// NewObjectHandle returns a handle to the object at the absolute, slash
	// separated path name.
	NewObjectHandle(name string) ObjectHandle
}

// ObjectAttrs holds the metadata needed to serve an object.
type ObjectAttrs struct {
	Size    int64
	Updated time.Time
}

// ObjectHandle is an interface to the actual storage engine in use.
type ObjectHandle interface {
	// Attrs returns the object's metadata, or ErrObjectNotExist.
	Attrs(ctx context.Context) (*ObjectAttrs, error)
	// NewRangeReader returns a reader that reads from a specified
	// range. Length of -1 means to capture everything until the
	// end.
	NewRangeReader(ctx context.Context, offset, length int64) (io.ReadCloser, error)
}

// FileClient is a Client serving objects from a local directory.  Object names
// are resolved below Directory and can never escape it.
type FileClient struct {
	Directory string
}

// NewObjectHandle returns a handle to the file for name.
func (c FileClient) NewObjectHandle(name string) ObjectHandle {
	return fileObjectHandle{filepath.Join(c.Directory, filepath.FromSlash(path.Clean("/"+name)))}
}

// NewFileClient returns a function that always yields a FileClient for
// directory.
func NewFileClient(directory string) NewStorageClientFunc {
	client := FileClient{directory}
	return func(*http.Request) (Client, error) {
		return client, nil
	}
}

type fileObjectHandle struct {
	filename string
}

func (h fileObjectHandle) Attrs(context.Context) (*ObjectAttrs, error) {
	info, err := os.Stat(h.filename)
	if os.IsNotExist(err) || (err == nil && info.IsDir()) {
		return nil, ErrObjectNotExist
	}
	if err != nil {
		return nil, err
	}
	return &ObjectAttrs{Size: info.Size(), Updated: info.ModTime()}, nil
}

func (h fileObjectHandle) NewRangeReader(_ context.Context, offset, length int64) (io.ReadCloser, error) {
	f, err := os.Open(h.filename)
	if os.IsNotExist(err) {
		return nil, ErrObjectNotExist
	}
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}
	if length < 0 {
		return f, nil
	}
	return struct {
		io.Reader
		io.Closer
	}{io.LimitReader(f, length), f}, nil
}
