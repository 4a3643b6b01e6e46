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
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ReducerKind the way matched source nodes are folded into a target value
type ReducerKind string

const (
	// FirstText trimmed text of the first matched node.
	// It is the reducer used when a mapping does not name one,
	// so several matches without a reducer always resolve to the first.
	FirstText ReducerKind = "first_text"
	// TextList trimmed text of every matched node
	TextList ReducerKind = "text_list"
	// JoinedText texts of every matched node joined by the delimiter
	JoinedText ReducerKind = "joined_text"
	// AttributeList one attribute value of every matched node
	AttributeList ReducerKind = "attribute_list"
	// SplitOnDelimiter text of the first match split on the delimiter
	SplitOnDelimiter ReducerKind = "split_on_delimiter"
	// HTMLText text of the first match with html markup removed
	HTMLText ReducerKind = "html_text"
	// None the field is not sourced from the feed, enrichment supplies it
	None ReducerKind = "none"
)

const (
	defaultJoinDelimiter  = ", "
	defaultSplitDelimiter = ";"
)

// Valid reports whether k is one of the known reducers.
// The empty kind is valid and means FirstText.
func (k ReducerKind) Valid() bool {
	switch k {
	case "", FirstText, TextList, JoinedText, AttributeList, SplitOnDelimiter, HTMLText, None:
		return true
	}
	return false
}

// FieldMapping declares how one target field is read from a source record
type FieldMapping struct {
	// Target resource field name
	Target string `mapstructure:"target" json:"target" yaml:"target"`
	// Source child element name looked up on the record
	Source string `mapstructure:"source" json:"source,omitempty" yaml:"source,omitempty"`
	// Reducer how the matches become a value, FirstText when empty
	Reducer ReducerKind `mapstructure:"reducer" json:"reducer,omitempty" yaml:"reducer,omitempty"`
	// Attribute attribute read by AttributeList
	Attribute string `mapstructure:"attribute" json:"attribute,omitempty" yaml:"attribute,omitempty"`
	// Delimiter used by JoinedText and SplitOnDelimiter
	Delimiter string `mapstructure:"delimiter" json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
}

// NewMapping a mapping with the default FirstText reducer
func NewMapping(target string, source string) FieldMapping {
	return FieldMapping{Target: target, Source: source, Reducer: FirstText}
}

// NotSourced a mapping for a field filled only by enrichment
func NotSourced(target string) FieldMapping {
	return FieldMapping{Target: target, Reducer: None}
}

// WithReducer returns a copy of m using reducer
func (m FieldMapping) WithReducer(reducer ReducerKind) FieldMapping {
	m.Reducer = reducer
	return m
}

// WithAttribute returns a copy of m reading attribute name
func (m FieldMapping) WithAttribute(name string) FieldMapping {
	m.Attribute = name
	return m
}

// WithDelimiter returns a copy of m using delimiter
func (m FieldMapping) WithDelimiter(delimiter string) FieldMapping {
	m.Delimiter = delimiter
	return m
}

// IsSourced false for mappings the transformer has to skip
func (m FieldMapping) IsSourced() bool {
	return m.Reducer != None && m.Source != ""
}

func (m FieldMapping) reducer() ReducerKind {
	if m.Reducer == "" {
		return FirstText
	}
	return m.Reducer
}

// Apply reads the mapped value from record.
// No match gives the empty string, the record is never modified.
func (m FieldMapping) Apply(record Node) interface{} {
	if !m.IsSourced() {
		return ""
	}
	matches := record.Children(m.Source)
	if len(matches) == 0 {
		return ""
	}
	switch m.reducer() {
	case TextList:
		return nonEmpty(texts(matches))
	case JoinedText:
		delimiter := m.Delimiter
		if delimiter == "" {
			delimiter = defaultJoinDelimiter
		}
		values := texts(matches)
		if len(values) == 0 {
			return ""
		}
		return strings.Join(values, delimiter)
	case AttributeList:
		values := make([]string, 0, len(matches))
		for _, match := range matches {
			if value := strings.TrimSpace(match.Attr(m.Attribute)); value != "" {
				values = append(values, value)
			}
		}
		return nonEmpty(values)
	case SplitOnDelimiter:
		delimiter := m.Delimiter
		if delimiter == "" {
			delimiter = defaultSplitDelimiter
		}
		values := make([]string, 0)
		for _, part := range strings.Split(matches[0].Text(), delimiter) {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
		return nonEmpty(values)
	case HTMLText:
		return stripHTML(matches[0].Text())
	default:
		return strings.TrimSpace(matches[0].Text())
	}
}

// texts trimmed non-empty texts of nodes
func texts(nodes []Node) []string {
	values := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if text := strings.TrimSpace(node.Text()); text != "" {
			values = append(values, text)
		}
	}
	return values
}

// nonEmpty an empty list counts as an absent field
func nonEmpty(values []string) interface{} {
	if len(values) == 0 {
		return ""
	}
	return values
}

func stripHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// MappingTable the field mappings of one provider
type MappingTable []FieldMapping

// Validate checks that targets are unique and every reducer is usable
func (t MappingTable) Validate() error {
	seen := make(map[string]struct{}, len(t))
	for _, m := range t {
		if m.Target == "" {
			return fmt.Errorf("%w: empty target field", ErrInvalidMapping)
		}
		if _, ok := seen[m.Target]; ok {
			return fmt.Errorf("%w: duplicate target field %s", ErrInvalidMapping, m.Target)
		}
		seen[m.Target] = struct{}{}
		if !m.Reducer.Valid() {
			return fmt.Errorf("%w: unknown reducer %q for %s", ErrInvalidMapping, m.Reducer, m.Target)
		}
		if m.Reducer != None && m.Source == "" {
			return fmt.Errorf("%w: %s has no source field", ErrInvalidMapping, m.Target)
		}
		if m.Reducer == AttributeList && m.Attribute == "" {
			return fmt.Errorf("%w: %s reads no attribute", ErrInvalidMapping, m.Target)
		}
	}
	return nil
}

// Targets target field names in table order
func (t MappingTable) Targets() []string {
	targets := make([]string, 0, len(t))
	for _, m := range t {
		targets = append(targets, m.Target)
	}
	return targets
}
