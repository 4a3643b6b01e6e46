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
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	convey.Convey("test logger", t, func() {
		log := GetLogger("test")
		convey.So(log.Data["logName"], convey.ShouldEqual, "test")
		log.Infof("testtest")
	})
	convey.Convey("test log level", t, func() {
		level := logger.GetLevel()
		defer logger.SetLevel(level)
		convey.So(SetLogLevel(""), convey.ShouldBeNil)
		convey.So(logger.Level.String(), convey.ShouldContainSubstring, "info")
		convey.So(SetLogLevel(" debug "), convey.ShouldBeNil)
		convey.So(logger.GetLevel(), convey.ShouldEqual, logrus.DebugLevel)
		convey.So(SetLogLevel("loud"), convey.ShouldNotBeNil)
	})
	convey.Convey("test default fields", t, func() {
		entry := logrus.NewEntry(logger)
		entry.Data = logrus.Fields{}
		convey.So((&DefaultFieldHook{}).Fire(entry), convey.ShouldBeNil)
		convey.So(entry.Data["processId"], convey.ShouldEqual, ProcessId)
		convey.So(entry.Data, convey.ShouldContainKey, "hostname")
	})
}
