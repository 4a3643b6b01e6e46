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
	"sort"

	jsoniter "github.com/json-iterator/go"
)

const (
	// MimeType media type of every crawled resource
	MimeType string = "text/html"
	// ContentCategory content category of every crawled resource
	ContentCategory string = "learning-object"
)

// Resource field names
const (
	FieldTitle           string = "title"
	FieldURL             string = "url"
	FieldOriginID        string = "originId"
	FieldDescription     string = "description"
	FieldLicenses        string = "licenses"
	FieldMimeType        string = "mimeType"
	FieldContentCategory string = "contentCategory"
	FieldTags            string = "tags"
	FieldThumbnail       string = "thumbnail"
	FieldProviderName    string = "providerName"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Resource an enriched record in the target resource shape
type Resource struct {
	fields map[string]interface{}
}

// Get value of field
func (r *Resource) Get(field string) (interface{}, bool) {
	value, ok := r.fields[field]
	return value, ok
}

// GetString value of field when it is a string, "" otherwise
func (r *Resource) GetString(field string) string {
	value, _ := r.fields[field].(string)
	return value
}

// Fields a copy of all fields
func (r *Resource) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, len(r.fields))
	for k, v := range r.fields {
		fields[k] = copyValue(v)
	}
	return fields
}

// Keys sorted field names
func (r *Resource) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON flat json object of the fields
func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.fields)
}

// String json form, used in logs
func (r *Resource) String() string {
	data, err := r.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(data)
}

// ResourceBuilder enriches transformed records with the provider invariants.
//
// Building runs in two phases. The base phase copies the transformed record.
// The override phase then applies, in this order of precedence:
//   - mimeType, contentCategory and providerName are always set and replace
//     any value the record carried
//   - licenses is set to a copy of the provider defaults, possibly empty, only
//     when the record has no license value ("" or a missing key); a source
//     license is never replaced
type ResourceBuilder struct {
	providerName string
	licenses     []string
}

// NewResourceBuilder builder for one provider
func NewResourceBuilder(providerName string, licenses []string) *ResourceBuilder {
	return &ResourceBuilder{
		providerName: providerName,
		licenses:     append([]string(nil), licenses...),
	}
}

// Build enriches record, record itself is left untouched
func (b *ResourceBuilder) Build(record Record) *Resource {
	fields := make(map[string]interface{}, len(record)+4)
	for k, v := range record {
		fields[k] = copyValue(v)
	}

	fields[FieldMimeType] = MimeType
	fields[FieldContentCategory] = ContentCategory
	fields[FieldProviderName] = b.providerName
	if isEmptyValue(fields[FieldLicenses]) {
		fields[FieldLicenses] = append(make([]string, 0, len(b.licenses)), b.licenses...)
	}
	return &Resource{fields: fields}
}

// Enrich builds the resource of record for a provider
func Enrich(record Record, providerName string, licenses []string) *Resource {
	return NewResourceBuilder(providerName, licenses).Build(record)
}

func copyValue(value interface{}) interface{} {
	if list, ok := value.([]string); ok {
		return append([]string(nil), list...)
	}
	return value
}
