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
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/smartystreets/goconvey/convey"
)

func TestRdbClient(t *testing.T) {
	convey.Convey("connect to redis", t, func() {
		mockRedis := miniredis.RunT(t)
		rdb, err := NewRdbClient(&RedisConfig{Addr: mockRedis.Addr(), PoolSize: 4, MaxRetry: 1})
		convey.So(err, convey.ShouldBeNil)
		defer rdb.Close()
		status, err := rdb.Set(context.TODO(), "resourcefeed", "test", 0).Result()
		convey.So(err, convey.ShouldBeNil)
		convey.So(status, convey.ShouldEqual, "OK")
	})
	convey.Convey("unreachable redis", t, func() {
		mockRedis := miniredis.RunT(t)
		addr := mockRedis.Addr()
		mockRedis.Close()
		_, err := NewRdbClient(&RedisConfig{Addr: addr})
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestRedisSink(t *testing.T) {
	convey.Convey("push resources onto a list", t, func() {
		mockRedis := miniredis.RunT(t)
		rdb, err := NewRdbClient(&RedisConfig{Addr: mockRedis.Addr()})
		convey.So(err, convey.ShouldBeNil)
		defer rdb.Close()
		sink := NewRedisSink(rdb, "test:resources", nil)

		resource := testResource()
		convey.So(sink.Validate(resource), convey.ShouldBeNil)
		convey.So(sink.Add(context.Background(), resource), convey.ShouldBeNil)
		values, err := mockRedis.List("test:resources")
		convey.So(err, convey.ShouldBeNil)
		convey.So(values, convey.ShouldResemble, []string{resource.String()})
	})
	convey.Convey("submit a feed to redis", t, func() {
		mockRedis := miniredis.RunT(t)
		rdb, err := NewRdbClient(&RedisConfig{Addr: mockRedis.Addr()})
		convey.So(err, convey.ShouldBeNil)
		defer rdb.Close()
		sink := NewRedisSink(rdb, "test:resources", nil)
		report, err := NewCrawler(newTestProvider(t), sink, CrawlerWithDryRun(false)).Run(context.Background())
		convey.So(err, convey.ShouldBeNil)
		convey.So(report.Get(SubmittedStats), convey.ShouldEqual, 2)
		length, err := rdb.LLen(context.Background(), "test:resources").Result()
		convey.So(err, convey.ShouldBeNil)
		convey.So(length, convey.ShouldEqual, 2)
	})
	convey.Convey("redis errors are submission errors", t, func() {
		mockRedis := miniredis.RunT(t)
		rdb, err := NewRdbClient(&RedisConfig{Addr: mockRedis.Addr()})
		convey.So(err, convey.ShouldBeNil)
		defer rdb.Close()
		mockRedis.SetError("ERR sink is down")
		err = NewRedisSink(rdb, "test:resources", nil).Add(context.Background(), testResource())
		convey.So(errors.Is(err, ErrSubmit), convey.ShouldBeTrue)
	})
}
