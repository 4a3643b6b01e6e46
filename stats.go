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
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// RecordsStats records read from the feed
	RecordsStats string = "records"
	// AcceptedStats resources that conformed to the schema
	AcceptedStats string = "accepted"
	// RejectedStats resources that failed validation
	RejectedStats string = "rejected"
	// SubmittedStats resources handed to the sink
	SubmittedStats string = "submitted"
	// LoggedStats resources reported in dry-run mode
	LoggedStats string = "logged"
	// ErrorStats record errors, submission failures and recovered panics
	ErrorStats string = "errors"
)

// StatisticInterface run counters
type StatisticInterface interface {
	Incr(metric string)
	Get(metric string) uint64
	GetAllStats() map[string]uint64
	Reset()
}

// DefaultStatistic atomic counters, safe for concurrent use
type DefaultStatistic struct {
	metrics sync.Map
}

func NewDefaultStatistic() *DefaultStatistic {
	s := &DefaultStatistic{}
	for _, name := range []string{RecordsStats, AcceptedStats, RejectedStats, SubmittedStats, LoggedStats, ErrorStats} {
		s.metrics.Store(name, new(uint64))
	}
	return s
}

func (s *DefaultStatistic) counter(metric string) *uint64 {
	value, _ := s.metrics.LoadOrStore(metric, new(uint64))
	return value.(*uint64)
}

func (s *DefaultStatistic) Incr(metric string) {
	atomic.AddUint64(s.counter(metric), 1)
}

func (s *DefaultStatistic) Get(metric string) uint64 {
	return atomic.LoadUint64(s.counter(metric))
}

func (s *DefaultStatistic) GetAllStats() map[string]uint64 {
	result := make(map[string]uint64)
	s.metrics.Range(func(key any, value any) bool {
		result[key.(string)] = atomic.LoadUint64(value.(*uint64))
		return true
	})
	return result
}

// Reset sets every counter back to zero
func (s *DefaultStatistic) Reset() {
	s.metrics.Range(func(_ any, value any) bool {
		atomic.StoreUint64(value.(*uint64), 0)
		return true
	})
}

// RunReport summary of one crawl run
type RunReport struct {
	RunID    string            `json:"runId"`
	Provider string            `json:"provider"`
	DryRun   bool              `json:"dryRun"`
	StartAt  time.Time         `json:"startAt"`
	StopAt   time.Time         `json:"stopAt"`
	Duration float64           `json:"duration"`
	Stats    map[string]uint64 `json:"stats"`
}

// newRunReport report of a run that stopped now
func newRunReport(runID string, provider string, dryRun bool, startAt time.Time, stats StatisticInterface) *RunReport {
	stopAt := time.Now()
	return &RunReport{
		RunID:    runID,
		Provider: provider,
		DryRun:   dryRun,
		StartAt:  startAt,
		StopAt:   stopAt,
		Duration: decimal.NewFromFloat(stopAt.Sub(startAt).Seconds()).Round(2).InexactFloat64(),
		Stats:    stats.GetAllStats(),
	}
}

// Get counter value of metric in the report
func (r *RunReport) Get(metric string) uint64 {
	return r.Stats[metric]
}
