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
	"strings"

	"github.com/beevik/etree"
)

// Node a read-only view of one element of a parsed feed.
// A source record is a Node whose children carry the provider fields.
type Node interface {
	// Children direct child elements named tag, in document order
	Children(tag string) []Node
	// Text character data of the element
	Text() string
	// Attr attribute value, empty if the attribute is missing
	Attr(name string) string
}

// elementNode adapts an etree element to Node
type elementNode struct {
	element *etree.Element
}

// NewElementNode wraps an etree element
func NewElementNode(element *etree.Element) Node {
	return &elementNode{element: element}
}

func (n *elementNode) Children(tag string) []Node {
	elements := n.element.SelectElements(tag)
	nodes := make([]Node, 0, len(elements))
	for _, e := range elements {
		nodes = append(nodes, &elementNode{element: e})
	}
	return nodes
}

func (n *elementNode) Text() string {
	return n.element.Text()
}

func (n *elementNode) Attr(name string) string {
	return n.element.SelectAttrValue(name, "")
}

// selectRecords walks path ("channel/item") from root and returns the
// elements at its end. An empty path selects the children of root.
func selectRecords(root *etree.Element, path string) []Node {
	path = strings.Trim(path, "/")
	if path == "" {
		elements := root.ChildElements()
		nodes := make([]Node, 0, len(elements))
		for _, e := range elements {
			nodes = append(nodes, NewElementNode(e))
		}
		return nodes
	}
	current := []*etree.Element{root}
	for _, tag := range strings.Split(path, "/") {
		next := make([]*etree.Element, 0)
		for _, e := range current {
			next = append(next, e.SelectElements(tag)...)
		}
		current = next
	}
	nodes := make([]Node, 0, len(current))
	for _, e := range current {
		nodes = append(nodes, NewElementNode(e))
	}
	return nodes
}
