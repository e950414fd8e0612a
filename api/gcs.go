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
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GCSClient is Client for accessing a single Google Cloud Storage bucket.
// Object names map to object paths without the leading slash.
type GCSClient struct {
	Client *storage.Client
	Bucket string
}

// NewObjectHandle returns a handle to a specified object in the
// storage engine.
func (c GCSClient) NewObjectHandle(name string) ObjectHandle {
	return gcsObjectHandle{c.Client.Bucket(c.Bucket).Object(strings.TrimPrefix(name, "/"))}
}

type gcsObjectHandle struct {
	*storage.ObjectHandle
}

func (h gcsObjectHandle) Attrs(ctx context.Context) (*ObjectAttrs, error) {
	attrs, err := h.ObjectHandle.Attrs(ctx)
	if err == storage.ErrObjectNotExist {
		return nil, ErrObjectNotExist
	}
	if err != nil {
		return nil, err
	}
	return &ObjectAttrs{Size: attrs.Size, Updated: attrs.Updated}, nil
}

func (h gcsObjectHandle) NewRangeReader(ctx context.Context, offset, length int64) (io.ReadCloser, error) {
	r, err := h.ObjectHandle.NewRangeReader(ctx, offset, length)
	if err == storage.ErrObjectNotExist {
		return nil, ErrObjectNotExist
	}
	return r, err
}

// newClientWithOptions returns a function yielding clients for bucket that
// share one storage client, created with opts on first use.
func newClientWithOptions(bucket string, opts ...option.ClientOption) NewStorageClientFunc {
	var (
		once sync.Once
		gcs  *storage.Client
		err  error
	)
	return func(*http.Request) (Client, error) {
		once.Do(func() {
			gcs, err = storage.NewClient(context.Background(), opts...)
			if err != nil {
				log.Printf("Creating storage client: %v", err)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("creating storage client: %v", err)
		}
		return GCSClient{gcs, bucket}, nil
	}
}

// NewDefaultClient returns a function creating storage clients for bucket that
// use the application default credentials.  The storage client is cached for
// efficiency.
func NewDefaultClient(bucket string) NewStorageClientFunc {
	return newClientWithOptions(bucket)
}

// NewPublicClient returns a function creating storage clients for bucket that
// do not use any form of client authorization.  They can only be used to read
// publicly-readable objects.  The storage client is cached for efficiency.
func NewPublicClient(bucket string) NewStorageClientFunc {
	return newClientWithOptions(bucket, option.WithHTTPClient(http.DefaultClient))
}

// NewClientFromBearerToken returns a function constructing a storage client
// for bucket that uses the OAuth2 bearer token found in each request.  The
// returned clients implement io.Closer and must be closed after the request.
func NewClientFromBearerToken(bucket string) NewStorageClientFunc {
	return func(req *http.Request) (Client, error) {
		authorization := req.Header.Get("Authorization")

		fields := strings.Split(authorization, " ")
		if len(fields) != 2 || fields[0] != "Bearer" {
			return nil, errMissingOrInvalidToken
		}

		token := oauth2.Token{
			TokenType:   fields[0],
			AccessToken: fields[1],
		}
		client, err := storage.NewClient(req.Context(), option.WithTokenSource(oauth2.StaticTokenSource(&token)))
		if err != nil {
			return nil, fmt.Errorf("creating client with token source: %v", err)
		}

		return requestClient{GCSClient{client, bucket}}, nil
	}
}

// requestClient is a GCSClient owning its storage client.
type requestClient struct {
	GCSClient
}

func (c requestClient) Close() error {
	return c.Client.Close()
}

func newStorageError(context string, err error) error {
	if err == errMissingOrInvalidToken {
		return newPermissionDeniedError(context, err)
	}
	if err == ErrObjectNotExist {
		return newNotFoundError("object does not exist", err)
	}
	if err, ok := err.(*googleapi.Error); ok {
		switch err.Code {
		case http.StatusUnauthorized:
			return newInvalidAuthenticationError(context, err)
		case http.StatusForbidden:
			return newPermissionDeniedError(context, err)
		case http.StatusNotFound:
			return newNotFoundError(context, err)
		}
	}
	return err
}
