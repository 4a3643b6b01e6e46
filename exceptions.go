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
	"errors"
	"fmt"
)

var (
	ErrDuplicateProviderName error = errors.New("register a duplicate provider name error")
	ErrEmptyProviderName     error = errors.New("register a empty provider name error")
	ErrProviderNotExist      error = errors.New("not found provider")
	ErrInvalidMapping        error = errors.New("invalid field mapping")
	ErrSchemaNonconformance  error = errors.New("resource does not conform to schema")
	ErrFeedFetch             error = errors.New("fetch feed error")
	ErrSubmit                error = errors.New("submit resource error")
	ErrNilFeed               error = errors.New("provider has no feed source")
	ErrUnknownPolicy         error = errors.New("unknown policy")
)

// StatusError a remote endpoint answered with an unexpected status code
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.Status, e.URL)
}
