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

package providers

import rf "github.com/wetrycode/resourcefeed"

// SiemensName provider name of the Siemens Stiftung media portal
const SiemensName = "Siemens-Stiftung"

// SiemensLicenses every Siemens Stiftung resource is published under these terms
var SiemensLicenses = []string{
	"© Siemens Stiftung 2018",
	`<a href="https://creativecommons.org/licenses/by-sa/4.0/legalcode.de">lizenziert unter CC BY-SA 4.0 international</a>`,
}

// SiemensTable field mappings of the Siemens Stiftung rss feed
var SiemensTable = rf.MappingTable{
	rf.NewMapping(rf.FieldTitle, "title"),
	rf.NewMapping(rf.FieldURL, "link"),
	rf.NewMapping(rf.FieldOriginID, "guid"),
	rf.NewMapping(rf.FieldDescription, "description"),
	rf.NotSourced(rf.FieldLicenses),
	rf.NotSourced(rf.FieldMimeType),
	rf.NotSourced(rf.FieldContentCategory),
	rf.NewMapping(rf.FieldTags, "category").WithReducer(rf.TextList),
	rf.NewMapping(rf.FieldThumbnail, "enclosure").WithReducer(rf.AttributeList).WithAttribute("url"),
	rf.NotSourced(rf.FieldProviderName),
}

// Siemens template, records are the rss items
var Siemens = Template{
	Name:       SiemensName,
	Licenses:   SiemensLicenses,
	Table:      SiemensTable,
	RecordPath: "channel/item",
}
