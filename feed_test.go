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
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestParseFeed(t *testing.T) {
	convey.Convey("records are selected below the root", t, func() {
		records, err := ParseFeed(strings.NewReader(testFeedXML), "entry")
		convey.So(err, convey.ShouldBeNil)
		convey.So(records, convey.ShouldHaveLength, 3)
		convey.So(records[2].Children("title")[0].Text(), convey.ShouldEqual, "Bruchrechnung")

		all, err := ParseFeed(strings.NewReader(testFeedXML), "")
		convey.So(err, convey.ShouldBeNil)
		convey.So(all, convey.ShouldHaveLength, 3)
	})
	convey.Convey("nested record paths", t, func() {
		rss := `<rss><channel><title>c</title><item><title>a</title></item><item><title>b</title></item></channel></rss>`
		records, err := ParseFeed(strings.NewReader(rss), "/channel/item/")
		convey.So(err, convey.ShouldBeNil)
		convey.So(records, convey.ShouldHaveLength, 2)
		convey.So(records[1].Children("title")[0].Text(), convey.ShouldEqual, "b")

		records, err = ParseFeed(strings.NewReader(rss), "channel/entry")
		convey.So(err, convey.ShouldBeNil)
		convey.So(records, convey.ShouldBeEmpty)
	})
	convey.Convey("broken documents", t, func() {
		_, err := ParseFeed(strings.NewReader(""), "entry")
		convey.So(err, convey.ShouldNotBeNil)
		_, err = ParseFeed(strings.NewReader("<feed><entry></feed>"), "entry")
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestLocalFeed(t *testing.T) {
	convey.Convey("read a feed file", t, func() {
		fs := afero.NewMemMapFs()
		convey.So(afero.WriteFile(fs, "/feeds/test.xml", []byte(testFeedXML), 0644), convey.ShouldBeNil)
		feed := NewLocalFeed(fs, "/feeds/test.xml", "entry")
		records, err := feed.GetFeed(context.Background())
		convey.So(err, convey.ShouldBeNil)
		convey.So(records, convey.ShouldHaveLength, 3)
	})
	convey.Convey("missing feed file", t, func() {
		feed := NewLocalFeed(afero.NewMemMapFs(), "/feeds/none.xml", "entry")
		_, err := feed.GetFeed(context.Background())
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldContainSubstring, "/feeds/none.xml")
	})
	convey.Convey("cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewLocalFeed(afero.NewMemMapFs(), "/feeds/test.xml", "entry").GetFeed(ctx)
		convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
	})
}

func TestHTTPFeed(t *testing.T) {
	server := newTestServer()
	defer server.Close()
	convey.Convey("download and parse a feed", t, func() {
		records, err := NewHTTPFeed(server.URL+"/feed.xml", "entry", nil).GetFeed(context.Background())
		convey.So(err, convey.ShouldBeNil)
		convey.So(records, convey.ShouldHaveLength, 3)
		convey.So(records[0].Children("guid")[0].Text(), convey.ShouldEqual, "p-1")
	})
	convey.Convey("feeds in other encodings are decoded", t, func() {
		records, err := NewHTTPFeed(server.URL+"/latin1.xml", "entry", nil).GetFeed(context.Background())
		convey.So(err, convey.ShouldBeNil)
		convey.So(records, convey.ShouldHaveLength, 1)
		convey.So(NewMapping(FieldTitle, "title").Apply(records[0]), convey.ShouldEqual, "Größe")
	})
	convey.Convey("unexpected status codes", t, func() {
		_, err := NewHTTPFeed(server.URL+"/missing.xml", "entry", nil).GetFeed(context.Background())
		var statusErr *StatusError
		convey.So(errors.As(err, &statusErr), convey.ShouldBeTrue)
		convey.So(statusErr.Status, convey.ShouldEqual, 404)
	})
	convey.Convey("a feed that cannot be fetched stops the crawler", t, func() {
		provider := newTestProvider(t)
		provider.Feed = NewHTTPFeed(server.URL+"/missing.xml", "entry", NewDownloader())
		sink := newRecordingSink()
		_, err := NewCrawler(provider, sink, CrawlerWithDryRun(false)).Run(context.Background())
		convey.So(errors.Is(err, ErrFeedFetch), convey.ShouldBeTrue)
		convey.So(sink.added, convey.ShouldBeEmpty)
	})
	convey.Convey("invalid urls", t, func() {
		_, err := NewHTTPFeed("not a url", "entry", nil).GetFeed(context.Background())
		convey.So(err, convey.ShouldNotBeNil)
	})
}
