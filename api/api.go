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

// Package api implements the /sam file endpoint that genome browser tracks are
// loaded from.
//
// Files are addressed by absolute path below /sam, for example
// /sam/data/NA12878/_sam/NA12878.bqsr.hg38.bam.  HEAD requests report whether
// a file exists; GET requests serve it, honoring a single byte range.  The
// optional "region" and "gene" query parameters are validated and echoed back
// in the X-Sam-Region and X-Sam-Gene response headers.
package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/googlegenomics/samview/internal/analytics"
	"github.com/googlegenomics/samview/region"
)

const (
	samPath = "/sam"

	regionHeader = "X-Sam-Region"
	geneHeader   = "X-Sam-Gene"
)

var (
	errInvalidOrUnspecifiedPath = errors.New("invalid or unspecified path")
	errMissingOrInvalidToken    = errors.New("missing or invalid token")
)

// NewStorageClientFunc is the type of function that constructs the appropriate
// Client to satisfy the incoming request.  Clients that implement io.Closer are
// closed once the request has been served.
type NewStorageClientFunc func(*http.Request) (Client, error)

// Server provides the /sam endpoint.  Must be created with NewServer.
type Server struct {
	newStorageClient NewStorageClientFunc
	whitelist        []string
}

// NewServer returns a new Server that calls newStorageClient on each request
// to determine which storage client to use.
func NewServer(newStorageClient NewStorageClientFunc) *Server {
	return &Server{newStorageClient: newStorageClient}
}

// Whitelist adds directories below which the server is allowed to serve
// files.  If Whitelist is never called for a given Server then any path is
// allowed.
func (server *Server) Whitelist(roots []string) {
	for _, root := range roots {
		if root = strings.TrimSpace(root); root != "" {
			server.whitelist = append(server.whitelist, path.Clean("/"+root))
		}
	}
}

// Export registers the endpoint with router.
func (server *Server) Export(router gin.IRoutes) {
	router.GET(samPath+"/*path", server.serveSam)
	router.HEAD(samPath+"/*path", server.serveSam)
}

func (server *Server) serveSam(c *gin.Context) {
	req := c.Request
	ctx := req.Context()

	track := analytics.TrackerFromContext(ctx)
	track(analytics.Event("Sam", "Request Received", req.Method, nil))

	name, err := parsePath(c.Param("path"))
	if err != nil {
		writeError(c, newInvalidInputError("parsing path", err))
		return
	}

	if err := server.checkWhitelist(name); err != nil {
		writeError(c, newPermissionDeniedError("checking whitelist", err))
		return
	}

	if err := setFilterHeaders(c); err != nil {
		writeError(c, newInvalidInputError("parsing filter", err))
		return
	}

	storage, err := server.newStorageClient(req)
	if err != nil {
		writeError(c, newStorageError("creating client", err))
		return
	}
	if closer, ok := storage.(io.Closer); ok {
		defer closer.Close()
	}

	object := storage.NewObjectHandle(name)
	attrs, err := object.Attrs(ctx)
	if err != nil {
		track(analytics.Event("Sam", "Object Missing", req.Method, nil))
		writeError(c, newStorageError("reading attributes", err))
		return
	}

	header := c.Writer.Header()
	header.Set("Accept-Ranges", "bytes")
	header.Set("Content-Type", "application/octet-stream")
	if !attrs.Updated.IsZero() {
		header.Set("Last-Modified", attrs.Updated.UTC().Format(http.TimeFormat))
	}

	if req.Method == http.MethodHead {
		header.Set("Content-Length", strconv.FormatInt(attrs.Size, 10))
		c.Status(http.StatusOK)
		return
	}

	status, offset, length := http.StatusOK, int64(0), attrs.Size
	if rng, ok, err := parseRange(req.Header.Get("Range"), attrs.Size); err != nil {
		header.Set("Content-Range", fmt.Sprintf("bytes */%d", attrs.Size))
		writeError(c, newInvalidRangeError(err))
		return
	} else if ok {
		status, offset, length = http.StatusPartialContent, rng.start, rng.length
		header.Set("Content-Range", rng.contentRange(attrs.Size))
	}

	data, err := object.NewRangeReader(ctx, offset, length)
	if err != nil {
		writeError(c, newStorageError("opening data", err))
		return
	}
	defer data.Close()

	header.Set("Content-Length", strconv.FormatInt(length, 10))
	c.Status(status)
	if _, err := io.Copy(c.Writer, data); err != nil {
		log.Printf("Failed to copy response: %v", err)
		return
	}

	n := length
	track(analytics.Event("Sam", "Bytes Served", "", &n))
}

func (server *Server) checkWhitelist(name string) error {
	if len(server.whitelist) == 0 {
		return nil
	}
	for _, root := range server.whitelist {
		if root == "/" || name == root || strings.HasPrefix(name, root+"/") {
			return nil
		}
	}
	return fmt.Errorf("access to %s is not allowed", name)
}

// parsePath cleans the requested path and rejects the bare endpoint.
func parsePath(raw string) (string, error) {
	name := path.Clean("/" + raw)
	if name == "/" {
		return "", errInvalidOrUnspecifiedPath
	}
	return name, nil
}

// setFilterHeaders validates the region and gene filters and echoes them back.
// Region filters are normalized, so "chr1:1,000-2,000" is reported as
// "1:1000-2000".
func setFilterHeaders(c *gin.Context) error {
	if query := c.Query("region"); query != "" {
		r, err := region.Parse(query, 0)
		if err != nil {
			return err
		}
		c.Header(regionHeader, r.String())
	}
	if gene := strings.TrimSpace(c.Query("gene")); gene != "" {
		c.Header(geneHeader, gene)
	}
	return nil
}

// apiError is used to capture errors that are reported to clients as JSON.
type apiError struct {
	name  string
	code  int
	cause error
}

func (err *apiError) Error() string {
	return fmt.Sprintf("%s (%d): %v", err.name, err.code, err.cause)
}

func newAPIError(name string, code int, context string, err error) error {
	return &apiError{name, code, fmt.Errorf("%s: %v", context, err)}
}

func newInvalidAuthenticationError(context string, err error) error {
	return newAPIError("InvalidAuthentication", http.StatusUnauthorized, context, err)
}

func newInvalidInputError(context string, err error) error {
	return newAPIError("InvalidInput", http.StatusBadRequest, context, err)
}

func newInvalidRangeError(err error) error {
	return &apiError{"InvalidRange", http.StatusRequestedRangeNotSatisfiable, err}
}

func newPermissionDeniedError(context string, err error) error {
	return newAPIError("PermissionDenied", http.StatusForbidden, context, err)
}

func newNotFoundError(context string, err error) error {
	return newAPIError("NotFound", http.StatusNotFound, context, err)
}

// writeError writes either a JSON object or bare HTTP error describing err.
// HEAD requests only receive the status code.
func writeError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	apiErr, ok := err.(*apiError)
	if ok {
		code = apiErr.code
	}
	if c.Request.Method == http.MethodHead {
		c.Status(code)
		return
	}
	if ok {
		c.JSON(code, gin.H{
			"error":   apiErr.name,
			"message": fmt.Sprintf("%s: %v", http.StatusText(code), apiErr.cause),
		})
		return
	}
	c.String(code, "%s: %v", http.StatusText(code), err)
}
