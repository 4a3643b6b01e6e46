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

// BildungsserverName provider name of the Deutscher Bildungsserver feed
const BildungsserverName = "Bildungsserver"

// BildungsserverTable field mappings of the Bildungsserver xml export.
// Keywords come as one ";" separated element, licenses as repeated elements.
var BildungsserverTable = rf.MappingTable{
	rf.NewMapping(rf.FieldTitle, "titel"),
	rf.NewMapping(rf.FieldURL, "url_ressource"),
	rf.NewMapping(rf.FieldOriginID, "id_local"),
	rf.NewMapping(rf.FieldDescription, "beschreibung"),
	rf.NewMapping(rf.FieldLicenses, "rechte").WithReducer(rf.TextList),
	rf.NotSourced(rf.FieldMimeType),
	rf.NotSourced(rf.FieldContentCategory),
	rf.NewMapping(rf.FieldTags, "schlagwort").WithReducer(rf.SplitOnDelimiter).WithDelimiter(";"),
	rf.NotSourced(rf.FieldThumbnail),
	rf.NotSourced(rf.FieldProviderName),
}

// Bildungsserver template, the export lists records directly below the root
var Bildungsserver = Template{
	Name:  BildungsserverName,
	Table: BildungsserverTable,
}
