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

	"github.com/smartystreets/goconvey/convey"
)

func TestTransform(t *testing.T) {
	records := mustParse(t, testFeedXML, "entry")
	convey.Convey("complete record", t, func() {
		record := Transform(records[0], testTable)
		convey.So(record[FieldTitle], convey.ShouldEqual, "Photosynthese")
		convey.So(record[FieldURL], convey.ShouldEqual, "https://example.org/photosynthese")
		convey.So(record[FieldLicenses], convey.ShouldResemble, []string{"CC BY 4.0"})
		convey.So(record[FieldTags], convey.ShouldResemble, []string{"Biologie", "Pflanzen", "Licht"})
		convey.So(record[FieldThumbnail], convey.ShouldResemble, []string{"https://example.org/p-1.png", "https://example.org/p-1-large.png"})
	})
	convey.Convey("not sourced fields are left out", t, func() {
		record := Transform(records[0], testTable)
		convey.So(record, convey.ShouldNotContainKey, FieldMimeType)
		convey.So(record, convey.ShouldNotContainKey, FieldContentCategory)
		convey.So(record, convey.ShouldNotContainKey, FieldProviderName)
		convey.So(len(record), convey.ShouldEqual, 6)
	})
	convey.Convey("missing fields default to the empty string", t, func() {
		record := Transform(records[1], testTable)
		convey.So(record[FieldTitle], convey.ShouldEqual, "")
		convey.So(record[FieldLicenses], convey.ShouldEqual, "")
		convey.So(record[FieldTags], convey.ShouldEqual, "")
		convey.So(record[FieldOriginID], convey.ShouldEqual, "p-2")
	})
	convey.Convey("a record matching nothing is still fully initialised", t, func() {
		empty := mustParse(t, `<feed><entry><unknown>1</unknown></entry></feed>`, "entry")[0]
		record := Transform(empty, testTable)
		convey.So(len(record), convey.ShouldEqual, 6)
		for _, value := range record {
			convey.So(value, convey.ShouldEqual, "")
		}
		resource := Enrich(record, "p", nil)
		convey.So(resource.GetString(FieldMimeType), convey.ShouldEqual, MimeType)
	})
	convey.Convey("transform is deterministic and leaves the source alone", t, func() {
		first := Transform(records[0], testTable)
		second := Transform(records[0], testTable)
		convey.So(first, convey.ShouldResemble, second)
		convey.So(records[0].Children("title")[0].Text(), convey.ShouldEqual, "Photosynthese")
		convey.So(len(records[0].Children("image")), convey.ShouldEqual, 2)
	})
}
