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
	"io"

	"github.com/sirupsen/logrus"
)

// PipelinesInterface pipeline 接口
// pipeline 处理通过校验的resource, 例如提交到资源接口或者输出到日志
// 多个pipeline按优先级依次执行
type PipelinesInterface interface {
	// GetPriority 获取当前pipeline的优先级
	GetPriority() int
	// ProcessItem resource处理单元
	ProcessItem(ctx context.Context, provider *Provider, resource *Resource) error
}

type ItemPipelines []PipelinesInterface

func (p ItemPipelines) Len() int           { return len(p) }
func (p ItemPipelines) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p ItemPipelines) Less(i, j int) bool { return p[i].GetPriority() < p[j].GetPriority() }

// SubmitPipeline hands resources to a TargetSink
type SubmitPipeline struct {
	Priority int
	Sink     TargetSink
}

func (p *SubmitPipeline) GetPriority() int {
	return p.Priority
}

func (p *SubmitPipeline) ProcessItem(ctx context.Context, _ *Provider, resource *Resource) error {
	return p.Sink.Add(ctx, resource)
}

// LogPipeline reports resources without submitting them.
// Every resource is logged and, when Writer is set, written to it as one json line.
type LogPipeline struct {
	Priority int
	Writer   io.Writer
	log      *logrus.Entry
}

// NewLogPipeline report pipeline writing json lines to w, w may be nil
func NewLogPipeline(w io.Writer) *LogPipeline {
	return &LogPipeline{Writer: w, log: GetLogger("report")}
}

func (p *LogPipeline) GetPriority() int {
	return p.Priority
}

func (p *LogPipeline) ProcessItem(_ context.Context, provider *Provider, resource *Resource) error {
	line := resource.String()
	p.log.WithField("provider", provider.Name).Infof("dry run resource %s", line)
	if p.Writer == nil {
		return nil
	}
	_, err := io.WriteString(p.Writer, line+"\n")
	return err
}
