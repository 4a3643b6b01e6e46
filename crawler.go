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
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/panics"
)

var crawlerLog *logrus.Entry = GetLogger("crawler")

// Crawler runs the pipeline of one provider:
// fetch the feed, then transform, enrich and validate every record and
// route the accepted resources to the sink or, in dry-run mode, to the report.
// Records are processed one by one in feed order and share no state.
type Crawler struct {
	provider *Provider
	sink     TargetSink
	// validator overrides sink.Validate when set
	validator Validator
	builder   *ResourceBuilder
	// reporter receives accepted resources in dry-run mode
	reporter PipelinesInterface
	// pipelines run after the sink, never in dry-run mode
	pipelines     ItemPipelines
	dryRun        bool
	rejectPolicy  RejectPolicy
	failurePolicy FailurePolicy
	statistic     StatisticInterface
}

// NewCrawler crawler for provider in dry-run mode unless an option says otherwise.
// A dry-run crawler with its own validator does not need a sink.
func NewCrawler(provider *Provider, sink TargetSink, opts ...CrawlerOption) *Crawler {
	c := &Crawler{
		provider:      provider,
		sink:          sink,
		builder:       NewResourceBuilder(provider.Name, provider.Licenses),
		reporter:      NewLogPipeline(nil),
		pipelines:     make(ItemPipelines, 0),
		dryRun:        true,
		rejectPolicy:  RejectDrop,
		failurePolicy: FailAbort,
		statistic:     NewDefaultStatistic(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// RegisterPipelines 注册pipelines, 按优先级在sink之后执行
// dry-run模式下不执行任何pipeline
func (c *Crawler) RegisterPipelines(pipeline PipelinesInterface) {
	c.pipelines = append(c.pipelines, pipeline)
	sort.Sort(c.pipelines)
	crawlerLog.Debugf("Register %v priority pipeline success", pipeline.GetPriority())
}

// GetStatic 获取统计组件
func (c *Crawler) GetStatic() StatisticInterface {
	return c.statistic
}

// DryRun true when accepted resources are only reported
func (c *Crawler) DryRun() bool {
	return c.dryRun
}

// Run crawls the provider feed once.
// Only a fetch failure, a cancelled ctx or, under FailAbort, a submission
// failure stops the run; rejected resources never do.
func (c *Crawler) Run(ctx context.Context) (*RunReport, error) {
	runID := GetUUID()
	startAt := time.Now()
	c.statistic.Reset()
	log := crawlerLog.WithFields(logrus.Fields{"provider": c.provider.Name, "run_id": runID})
	log.Infof("start crawling, dry run %v", c.dryRun)

	records, err := c.provider.Feed.GetFeed(ctx)
	if err != nil {
		log.Errorf("fetch feed error %s", err.Error())
		return newRunReport(runID, c.provider.Name, c.dryRun, startAt, c.statistic), fmt.Errorf("%w: %w", ErrFeedFetch, err)
	}
	log.Infof("feed has %d records", len(records))

	for index, record := range records {
		if err := ctx.Err(); err != nil {
			return newRunReport(runID, c.provider.Name, c.dryRun, startAt, c.statistic), err
		}
		c.statistic.Incr(RecordsStats)
		if err := c.process(ctx, log.WithField("record", index), record); err != nil {
			return newRunReport(runID, c.provider.Name, c.dryRun, startAt, c.statistic), err
		}
	}
	report := newRunReport(runID, c.provider.Name, c.dryRun, startAt, c.statistic)
	log.Infof("finish crawling in %.2fs %s", report.Duration, Map2String(report.Stats))
	return report, nil
}

// Evaluate transforms, enriches and validates one record
func (c *Crawler) Evaluate(record Node) Outcome {
	_, outcome := c.evaluate(record)
	return outcome
}

func (c *Crawler) evaluate(record Node) (*Resource, Outcome) {
	resource := c.builder.Build(Transform(record, c.provider.Table))
	if c.validator != nil {
		return resource, Check(c.validator, resource)
	}
	return resource, Check(c.sink, resource)
}

// process handles one record, a returned error stops the run
func (c *Crawler) process(ctx context.Context, log *logrus.Entry, record Node) error {
	var resource *Resource
	var outcome Outcome
	var catcher panics.Catcher
	catcher.Try(func() { resource, outcome = c.evaluate(record) })
	if recovered := catcher.Recovered(); recovered != nil {
		return c.fail(log, fmt.Errorf("process record panic: %v", recovered.Value))
	}

	if !outcome.Accepted() {
		c.statistic.Incr(RejectedStats)
		c.reject(log, resource, outcome.Err)
		return nil
	}
	c.statistic.Incr(AcceptedStats)

	if err := c.route(ctx, outcome.Resource); err != nil {
		return c.fail(log.WithField("url", outcome.Resource.GetString(FieldURL)), err)
	}
	if c.dryRun {
		c.statistic.Incr(LoggedStats)
	} else {
		c.statistic.Incr(SubmittedStats)
	}
	return nil
}

func (c *Crawler) route(ctx context.Context, resource *Resource) error {
	var err error
	if c.dryRun {
		err = c.reporter.ProcessItem(ctx, c.provider, resource)
	} else {
		err = c.sink.Add(ctx, resource)
	}
	if err != nil {
		if !errors.Is(err, ErrSubmit) {
			err = fmt.Errorf("%w: %w", ErrSubmit, err)
		}
		return err
	}
	if c.dryRun {
		return nil
	}
	for _, pipeline := range c.pipelines {
		if err := pipeline.ProcessItem(ctx, c.provider, resource); err != nil {
			return fmt.Errorf("pipeline %d handle resource error %w", pipeline.GetPriority(), err)
		}
	}
	return nil
}

func (c *Crawler) reject(log *logrus.Entry, resource *Resource, err error) {
	if c.rejectPolicy != RejectLog {
		log.Debugf("resource rejected")
		return
	}
	entry := log.WithField("resource", resource.String())
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		entry = entry.WithField("fields", validationErr.Fields)
	}
	entry.Warnf("resource rejected %s", err.Error())
}

func (c *Crawler) fail(log *logrus.Entry, err error) error {
	c.statistic.Incr(ErrorStats)
	log.Errorf("%s", err.Error())
	if c.failurePolicy == FailContinue {
		return nil
	}
	return err
}
