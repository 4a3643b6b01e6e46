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
	"sort"
	"sync"
)

// Provider the constant configuration of one feed provider.
// It must not change while a crawl of the provider runs.
type Provider struct {
	// Name provider name, stored as providerName on every resource
	Name string
	// Licenses used when a record carries no license
	Licenses []string
	// Table field mappings of the provider feed
	Table MappingTable
	// Feed source of the records
	Feed FeedSource
}

// Validate checks name, table and feed
func (p *Provider) Validate() error {
	if len(p.Name) == 0 {
		return ErrEmptyProviderName
	}
	if err := p.Table.Validate(); err != nil {
		return fmt.Errorf("provider %s: %w", p.Name, err)
	}
	if p.Feed == nil {
		return fmt.Errorf("provider %s: %w", p.Name, ErrNilFeed)
	}
	return nil
}

// Providers provider注册管理器
type Providers struct {
	mu      sync.RWMutex
	modules map[string]*Provider
}

// NewProviders 构建Providers实例
func NewProviders() *Providers {
	return &Providers{
		modules: make(map[string]*Provider),
	}
}

// Register provider实例注册到Providers
func (s *Providers) Register(provider *Provider) error {
	if err := provider.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// provider名不允许重复
	if _, ok := s.modules[provider.Name]; ok {
		return ErrDuplicateProviderName
	}
	s.modules[provider.Name] = provider
	return nil
}

// GetProvider 通过provider名获取实例
func (s *Providers) GetProvider(name string) (*Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	provider, ok := s.modules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotExist, name)
	}
	return provider, nil
}

// Names sorted names of the registered providers
func (s *Providers) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.modules))
	for name := range s.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
