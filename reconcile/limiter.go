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

import "context"

// DefaultConcurrency is the number of concurrent requests a Limiter allows when
// none is configured.
const DefaultConcurrency = 8

// Limiter bounds the number of concurrently running operations.  A single
// Limiter is meant to be shared by every phase of a reconciliation so that the
// file server behind the tracks never sees more than Limit requests at once.
type Limiter struct {
	slots chan struct{}
}

// NewLimiter returns a Limiter admitting n concurrent operations.  Values of n
// less than one select DefaultConcurrency.
func NewLimiter(n int) *Limiter {
	if n < 1 {
		n = DefaultConcurrency
	}
	return &Limiter{make(chan struct{}, n)}
}

// Limit returns the configured bound.
func (l *Limiter) Limit() int {
	return cap(l.slots)
}

// Acquire blocks until a slot is free or ctx is done.  A successful Acquire
// must be paired with a call to Release.  No slot is held when an error is
// returned, even if ctx was cancelled while a slot became free.
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case l.slots <- struct{}{}:
		if err := ctx.Err(); err != nil {
			l.Release()
			return err
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot obtained with Acquire.
func (l *Limiter) Release() {
	<-l.slots
}
