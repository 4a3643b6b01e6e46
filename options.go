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
	"fmt"
	"io"
	"strings"
)

// RejectPolicy what happens with a resource that failed validation.
// A rejected resource never reaches the sink under any policy.
type RejectPolicy string

const (
	// RejectDrop drops the resource, only a debug line is logged
	RejectDrop RejectPolicy = "drop"
	// RejectLog logs the resource with the validation detail for manual review
	RejectLog RejectPolicy = "log"
)

// FailurePolicy what happens when submitting a resource fails or
// processing a record panics
type FailurePolicy string

const (
	// FailAbort stops the run and returns the error
	FailAbort FailurePolicy = "abort"
	// FailContinue counts and logs the error, the run goes on
	FailContinue FailurePolicy = "continue"
)

// ParseRejectPolicy policy named s, "" gives RejectDrop
func ParseRejectPolicy(s string) (RejectPolicy, error) {
	switch RejectPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RejectDrop:
		return RejectDrop, nil
	case RejectLog:
		return RejectLog, nil
	}
	return "", fmt.Errorf("%w: reject policy %q", ErrUnknownPolicy, s)
}

// ParseFailurePolicy policy named s, "" gives FailAbort
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", FailAbort:
		return FailAbort, nil
	case FailContinue:
		return FailContinue, nil
	}
	return "", fmt.Errorf("%w: failure policy %q", ErrUnknownPolicy, s)
}

type CrawlerOption func(c *Crawler)

// CrawlerWithDryRun dry-run reports accepted resources instead of submitting them
func CrawlerWithDryRun(dryRun bool) CrawlerOption {
	return func(c *Crawler) {
		c.dryRun = dryRun
	}
}

func CrawlerWithRejectPolicy(policy RejectPolicy) CrawlerOption {
	return func(c *Crawler) {
		c.rejectPolicy = policy
	}
}

func CrawlerWithFailurePolicy(policy FailurePolicy) CrawlerOption {
	return func(c *Crawler) {
		c.failurePolicy = policy
	}
}

// CrawlerWithValidator validates with validator instead of the sink
func CrawlerWithValidator(validator Validator) CrawlerOption {
	return func(c *Crawler) {
		c.validator = validator
	}
}

// CrawlerWithReportWriter dry-run resources are also written to w as json lines
func CrawlerWithReportWriter(w io.Writer) CrawlerOption {
	return func(c *Crawler) {
		c.reporter = NewLogPipeline(w)
	}
}

func CrawlerWithStatistic(statistic StatisticInterface) CrawlerOption {
	return func(c *Crawler) {
		c.statistic = statistic
	}
}
