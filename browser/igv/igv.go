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

// Package igv drives an IGV desktop instance through its batch command port.
//
// IGV listens on port 60151 by default and accepts one command per line,
// answering each with a single line: "OK" on success, or an error message.
package igv

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/googlegenomics/samview/browser"
	"github.com/googlegenomics/samview/track"
)

// DefaultAddress is the address of a local IGV batch port.
const DefaultAddress = "localhost:60151"

// Client is a browser.Browser backed by IGV.  Commands are serialized over a
// single connection, which is opened on first use and reopened after errors.
// Must be created with NewClient.
type Client struct {
	address string
	dialer  net.Dialer

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// NewClient returns a Client for the IGV batch port at address.
func NewClient(address string) *Client {
	if address == "" {
		address = DefaultAddress
	}
	return &Client{address: address, dialer: net.Dialer{Timeout: 5 * time.Second}}
}

// LoadTrack loads spec as a uniquely named track.  The name doubles as the
// handle, since IGV removes tracks by name.
func (c *Client) LoadTrack(ctx context.Context, spec track.Spec) (browser.Handle, error) {
	name := fmt.Sprintf("%s_%s", spec.Name, uuid.New().String()[:8])
	command := fmt.Sprintf("load %s index=%s format=%s name=%s", spec.URL, spec.IndexURL, spec.Format, name)
	if err := c.exec(ctx, command); err != nil {
		return "", err
	}
	return browser.Handle(name), nil
}

// RemoveTrack removes the track named by handle.
func (c *Client) RemoveTrack(ctx context.Context, handle browser.Handle) error {
	return c.exec(ctx, "remove "+string(handle))
}

// Search jumps to locus.
func (c *Client) Search(ctx context.Context, locus string) error {
	if strings.ContainsAny(locus, " \t\r\n") {
		return fmt.Errorf("invalid locus %q", locus)
	}
	return c.exec(ctx, "goto "+locus)
}

// Close closes the connection to IGV, if any.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reset()
}

func (c *Client) exec(ctx context.Context, command string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		conn, err := c.dialer.DialContext(ctx, "tcp", c.address)
		if err != nil {
			return fmt.Errorf("connecting to IGV at %s: %v", c.address, err)
		}
		c.conn, c.reader = conn, bufio.NewReader(conn)
	}

	// Unblock the connection if ctx ends mid-command.  The watcher exits
	// before the lock is released.
	c.conn.SetDeadline(time.Time{})
	stop, done := make(chan struct{}), make(chan struct{})
	go func(conn net.Conn) {
		defer close(done)
		select {
		case <-ctx.Done():
			conn.SetDeadline(time.Now())
		case <-stop:
		}
	}(c.conn)
	defer func() {
		close(stop)
		<-done
	}()

	response, err := c.roundTrip(command)
	if err != nil {
		// The reply may still arrive later, so the connection can't be reused.
		c.reset()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("sending %q: %v", command, err)
	}
	if response != "OK" {
		return fmt.Errorf("IGV rejected %q: %s", command, response)
	}
	return nil
}

func (c *Client) roundTrip(command string) (string, error) {
	if _, err := fmt.Fprintf(c.conn, "%s\n", command); err != nil {
		return "", err
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Client) reset() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn, c.reader = nil, nil
	return err
}
