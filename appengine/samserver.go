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

// Package samserver runs the /sam endpoint on App Engine.  Files are read from
// the bucket named by APP_BUCKET using the caller's bearer token.  APP_ROOTS,
// if set, is a comma-separated list of directories that may be served.
package samserver

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/appengine"

	"github.com/googlegenomics/samview/api"
)

func init() {
	server := api.NewServer(newAppEngineClient(os.Getenv("APP_BUCKET")))
	if list := os.Getenv("APP_ROOTS"); list != "" {
		server.Whitelist(strings.Split(list, ","))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	server.Export(router)
	http.Handle("/", router)
}

func newAppEngineClient(bucket string) api.NewStorageClientFunc {
	newClient := api.NewClientFromBearerToken(bucket)
	return func(req *http.Request) (api.Client, error) {
		return newClient(req.WithContext(appengine.NewContext(req)))
	}
}
