/*
Copyright The Ametrine Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package getter provides the HTTP retrieval primitive shared by the
// manifest, version and asset-index fetchers and by the downloader.
package getter

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"
)

// options are generic parameters provided to a getter during instantiation
// or per call. Getters may ignore parameters that do not apply to them.
type options struct {
	userAgent string
	timeout   time.Duration
	transport *http.Transport
}

// Option allows overriding the defaults used when performing Get operations.
type Option func(*options)

// WithUserAgent sets the request's User-Agent header to the provided agent name.
func WithUserAgent(userAgent string) Option {
	return func(opts *options) {
		opts.userAgent = userAgent
	}
}

// WithTimeout sets the timeout for requests.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *options) {
		opts.timeout = timeout
	}
}

// WithTransport sets the http.Transport, allowing the HTTPGetter default to
// be overwritten.
func WithTransport(transport *http.Transport) Option {
	return func(opts *options) {
		opts.transport = transport
	}
}

// Getter is an interface to support GET to the specified URL.
type Getter interface {
	// Get fetches the content at url and returns the body.
	Get(ctx context.Context, url string, options ...Option) (*bytes.Buffer, error)
}

// FetchError reports a failed network exchange: the request did not
// complete, the server answered with a non-2xx status, or the body was not
// well-formed for the document being fetched.
type FetchError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

const (
	// DefaultHTTPTimeout bounds a single request. The launcher talks to CDN
	// endpoints; anything slower than this is effectively down.
	DefaultHTTPTimeout = 120 * time.Second
)
