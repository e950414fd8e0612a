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

// This binary provides the /sam file server that genome browser tracks are
// loaded from.  Files are served either from a local directory or from a GCS
// bucket.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/profile"

	"github.com/googlegenomics/samview/api"
	"github.com/googlegenomics/samview/internal/analytics"
)

var (
	port      = flag.Int("port", 80, "HTTP service port")
	directory = flag.String("directory", "", "directory that contains bam/bai files")
	bucket    = flag.String("bucket", "", "GCS bucket that contains bam/bai files, used when -directory is not set")

	secure    = flag.Bool("secure", false, "serve in HTTPS-only mode and forward client bearer tokens")
	httpsCert = flag.String("https_cert", "", "HTTPS certificate file")
	httpsKey  = flag.String("https_key", "", "HTTPS key file")

	roots = flag.String("roots", "", "if set, restricts reads to a comma-separated list of directories")

	profileDir = flag.String("profile", "", "if set, write a CPU profile to this directory")

	// Enable or disable anonymous usage tracking.
	//
	// If enabled, anonymous information about requests handled by the server is
	// logged to Google via Google Analytics.  No user identifying information is
	// ever sent.
	trackUsage = flag.Bool("track_usage", false, "anonymous usage tracking")
)

func main() {
	flag.Parse()

	if *secure && (*httpsCert == "" || *httpsKey == "") {
		log.Fatalf("You must specify both -https_cert and -https_key in secure mode.")
	}
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	if *profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir)).Stop()
	}

	newStorageClient, err := storageClient()
	if err != nil {
		return fmt.Errorf("configuring storage: %v", err)
	}

	server := api.NewServer(newStorageClient)
	if *roots != "" {
		server.Whitelist(strings.Split(*roots, ","))
	}

	router := gin.Default()
	server.Export(router)

	handler := http.Handler(router)
	if *trackUsage {
		log.Printf("Enabling anonymous usage tracking")

		client := analytics.NewClient("UA-103022118-1")
		handler = analytics.TrackingHandler(handler, func(hits []analytics.Hit) {
			go func() {
				if err := client.Send(context.Background(), hits); err != nil {
					log.Printf("Failed to send %d hits to analytics: %v", len(hits), err)
				}
			}()
		})
	}

	address := fmt.Sprintf(":%d", *port)
	if *secure {
		if err := http.ListenAndServeTLS(address, *httpsCert, *httpsKey, handler); err != nil {
			return fmt.Errorf("HTTPS server returned an error: %v", err)
		}
		return nil
	}
	if err := http.ListenAndServe(address, handler); err != nil {
		return fmt.Errorf("HTTP server returned an error: %v", err)
	}
	return nil
}

func storageClient() (api.NewStorageClientFunc, error) {
	switch {
	case *directory != "" && *bucket != "":
		return nil, fmt.Errorf("-directory and -bucket are mutually exclusive")
	case *directory != "":
		if *secure {
			log.Printf("Serving local files; client bearer tokens are ignored")
		}
		return api.NewFileClient(*directory), nil
	case *bucket != "":
		if *secure {
			return api.NewClientFromBearerToken(*bucket), nil
		}
		return api.NewPublicClient(*bucket), nil
	}
	return nil, fmt.Errorf("no -directory or -bucket specified")
}
