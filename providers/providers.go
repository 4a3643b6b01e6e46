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

// Package providers holds the built in provider tables and
// builds providers from settings.
package providers

import (
	"fmt"

	"github.com/spf13/afero"
	rf "github.com/wetrycode/resourcefeed"
)

// Template a provider without its feed
type Template struct {
	Name       string
	Licenses   []string
	Table      rf.MappingTable
	RecordPath string
}

// Provider template bound to feed
func (t Template) Provider(feed rf.FeedSource) *rf.Provider {
	return &rf.Provider{
		Name:     t.Name,
		Licenses: append([]string(nil), t.Licenses...),
		Table:    append(rf.MappingTable(nil), t.Table...),
		Feed:     feed,
	}
}

var builtins = map[string]Template{
	BildungsserverName: Bildungsserver,
	SiemensName:        Siemens,
}

// Builtin template registered under name
func Builtin(name string) (Template, bool) {
	t, ok := builtins[name]
	return t, ok
}

// FromSettings provider described by s. Empty fields of s fall back to the
// built in template of the same name, if there is one.
func FromSettings(s rf.ProviderSettings, fs afero.Fs, downloader *rf.Downloader) (*rf.Provider, error) {
	t, _ := Builtin(s.Name)
	t.Name = s.Name
	if len(s.Licenses) > 0 {
		t.Licenses = s.Licenses
	}
	if len(s.Mapping) > 0 {
		t.Table = s.Mapping
	}
	if len(t.Table) == 0 {
		return nil, fmt.Errorf("%w: provider %s has no mapping table", rf.ErrInvalidMapping, s.Name)
	}
	if s.RecordPath == "" {
		s.RecordPath = t.RecordPath
	}
	feed, err := s.FeedSource(fs, downloader)
	if err != nil {
		return nil, err
	}
	return t.Provider(feed), nil
}

// Load registers one provider per settings entry
func Load(registry *rf.Providers, settings []rf.ProviderSettings, fs afero.Fs, downloader *rf.Downloader) error {
	for _, s := range settings {
		provider, err := FromSettings(s, fs, downloader)
		if err != nil {
			return err
		}
		if err := registry.Register(provider); err != nil {
			return err
		}
	}
	return nil
}
