// MIT License

// Copyright (c) 2023 wetrycode

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package resourcefeed

import (
	"bytes"
	"context"
	"fmt"
)

// TargetSink the downstream store of accepted resources
type TargetSink interface {
	// Add stores one resource
	Add(ctx context.Context, resource *Resource) error
	// Validate checks resource against the schema the sink accepts
	Validate(resource *Resource) error
}

// ResourceAPI posts resources as json to a resource api endpoint
type ResourceAPI struct {
	url        string
	token      string
	downloader *Downloader
	validator  Validator
	limiter    LimitInterface
}

// ResourceAPIOption optional parameters of ResourceAPI
type ResourceAPIOption func(a *ResourceAPI)

// ResourceAPIWithToken bearer token sent with every submission
func ResourceAPIWithToken(token string) ResourceAPIOption {
	return func(a *ResourceAPI) {
		a.token = token
	}
}

// ResourceAPIWithDownloader http client used for submissions
func ResourceAPIWithDownloader(downloader *Downloader) ResourceAPIOption {
	return func(a *ResourceAPI) {
		a.downloader = downloader
	}
}

// ResourceAPIWithValidator schema validator, the embedded resource schema by default
func ResourceAPIWithValidator(validator Validator) ResourceAPIOption {
	return func(a *ResourceAPI) {
		a.validator = validator
	}
}

// ResourceAPIWithLimiter throttles submissions
func ResourceAPIWithLimiter(limiter LimitInterface) ResourceAPIOption {
	return func(a *ResourceAPI) {
		a.limiter = limiter
	}
}

// NewResourceAPI sink posting to url
func NewResourceAPI(url string, opts ...ResourceAPIOption) *ResourceAPI {
	a := &ResourceAPI{url: url}
	for _, o := range opts {
		o(a)
	}
	if a.downloader == nil {
		a.downloader = NewDownloader()
	}
	if a.validator == nil {
		a.validator = NewDefaultValidator()
	}
	if a.limiter == nil {
		a.limiter = NewDefaultLimiter(0)
	}
	return a
}

func (a *ResourceAPI) Validate(resource *Resource) error {
	return a.validator.Validate(resource)
}

func (a *ResourceAPI) Add(ctx context.Context, resource *Resource) error {
	body, err := resource.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	if err := a.limiter.CheckAndWaitLimiterPass(); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	header := map[string]string{"Content-Type": "application/json"}
	if a.token != "" {
		header["Authorization"] = "Bearer " + a.token
	}
	if _, err := a.downloader.Do(ctx, POST, a.url, bytes.NewReader(body), header); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	return nil
}
