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
	"io"

	"github.com/beevik/etree"
	"github.com/spf13/afero"
	"golang.org/x/net/html/charset"
)

// FeedSource produces the source records of one run
type FeedSource interface {
	// GetFeed fetches and parses the whole feed, records in document order
	GetFeed(ctx context.Context) ([]Node, error)
}

// ParseFeed parses an xml document and selects the records found at recordPath,
// a slash separated list of element names below the document root.
// Documents declaring a non utf-8 encoding are decoded first.
func ParseFeed(r io.Reader, recordPath string) ([]Node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parse feed: document has no root element")
	}
	return selectRecords(root, recordPath), nil
}

// HTTPFeed a feed downloaded over http
type HTTPFeed struct {
	URL        string
	RecordPath string
	downloader *Downloader
}

// NewHTTPFeed feed at url, downloader may be nil
func NewHTTPFeed(url string, recordPath string, downloader *Downloader) *HTTPFeed {
	if downloader == nil {
		downloader = NewDownloader()
	}
	return &HTTPFeed{URL: url, RecordPath: recordPath, downloader: downloader}
}

func (f *HTTPFeed) GetFeed(ctx context.Context) ([]Node, error) {
	resp, err := f.downloader.Get(ctx, f.URL)
	if err != nil {
		return nil, err
	}
	downloadLog.Infof("feed %s downloaded in %.2fs", f.URL, resp.Delay)
	return ParseFeed(bytes.NewReader(resp.Bytes()), f.RecordPath)
}

// LocalFeed a feed stored as a file
type LocalFeed struct {
	Path       string
	RecordPath string
	fs         afero.Fs
}

// NewLocalFeed feed read from path on fs, fs nil means the os filesystem
func NewLocalFeed(fs afero.Fs, path string, recordPath string) *LocalFeed {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &LocalFeed{Path: path, RecordPath: recordPath, fs: fs}
}

func (f *LocalFeed) GetFeed(ctx context.Context) ([]Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := f.fs.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open feed %s: %w", f.Path, err)
	}
	defer file.Close()
	return ParseFeed(file, f.RecordPath)
}
