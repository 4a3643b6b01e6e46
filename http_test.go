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
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed>
	<entry>
		<title>Photosynthese</title>
		<link>https://example.org/photosynthese</link>
		<guid>p-1</guid>
		<rights>CC BY 4.0</rights>
		<keywords>Biologie; Pflanzen ;;Licht</keywords>
		<image src="https://example.org/p-1.png"/>
		<image src="https://example.org/p-1-large.png"/>
	</entry>
	<entry>
		<link>https://example.org/ohne-titel</link>
		<guid>p-2</guid>
	</entry>
	<entry>
		<title>Bruchrechnung</title>
		<link>https://example.org/bruchrechnung</link>
		<guid>p-3</guid>
	</entry>
</feed>`

var testLicenses = []string{"CC0 1.0"}

// testTable mapping table of testFeedXML
var testTable = MappingTable{
	NewMapping(FieldTitle, "title"),
	NewMapping(FieldURL, "link"),
	NewMapping(FieldOriginID, "guid"),
	NewMapping(FieldLicenses, "rights").WithReducer(TextList),
	NewMapping(FieldTags, "keywords").WithReducer(SplitOnDelimiter),
	NewMapping(FieldThumbnail, "image").WithReducer(AttributeList).WithAttribute("src"),
	NotSourced(FieldMimeType),
	NotSourced(FieldContentCategory),
	NotSourced(FieldProviderName),
}

// staticFeed a feed of already parsed records
type staticFeed struct {
	records []Node
	err     error
}

func (f *staticFeed) GetFeed(_ context.Context) ([]Node, error) {
	return f.records, f.err
}

func mustParse(t *testing.T, document string, recordPath string) []Node {
	t.Helper()
	records, err := ParseFeed(strings.NewReader(document), recordPath)
	if err != nil {
		t.Fatalf("parse test feed error %s", err.Error())
	}
	return records
}

func newTestProvider(t *testing.T) *Provider {
	return &Provider{
		Name:     "test-provider",
		Licenses: testLicenses,
		Table:    testTable,
		Feed:     &staticFeed{records: mustParse(t, testFeedXML, "entry")},
	}
}

// recordingSink remembers every added resource
type recordingSink struct {
	mu        sync.Mutex
	added     []*Resource
	addErr    error
	validator Validator
}

func newRecordingSink() *recordingSink {
	return &recordingSink{added: make([]*Resource, 0), validator: NewDefaultValidator()}
}

func (s *recordingSink) Add(_ context.Context, resource *Resource) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.added = append(s.added, resource)
	return nil
}

func (s *recordingSink) Validate(resource *Resource) error {
	return s.validator.Validate(resource)
}

// panicNode a record whose lookups panic
type panicNode struct{}

func (panicNode) Children(string) []Node { panic("broken record") }
func (panicNode) Text() string           { return "" }
func (panicNode) Attr(string) string     { return "" }

var errTestSubmit = errors.New("sink is down")

// testServer resource api and feed endpoints
type testServer struct {
	*httptest.Server
	mu     sync.Mutex
	bodies []string
	auth   []string
}

func (s *testServer) received() ([]string, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bodies...), append([]string(nil), s.auth...)
}

func newTestServer() *testServer {
	gin.SetMode(gin.ReleaseMode)
	s := &testServer{bodies: make([]string, 0), auth: make([]string, 0)}
	router := gin.New()
	router.GET("/feed.xml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/xml", []byte(testFeedXML))
	})
	router.GET("/latin1.xml", func(c *gin.Context) {
		// "Größe" in iso-8859-1
		body := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><feed><entry><title>Gr`), 0xf6, 0xdf, 'e')
		body = append(body, []byte(`</title></entry></feed>`)...)
		c.Data(http.StatusOK, "application/xml", body)
	})
	router.GET("/missing.xml", func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})
	router.POST("/resources", func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		s.mu.Lock()
		s.bodies = append(s.bodies, string(data))
		s.auth = append(s.auth, c.GetHeader("Authorization"))
		s.mu.Unlock()
		c.Status(http.StatusCreated)
	})
	router.POST("/broken", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "broken")
	})
	s.Server = httptest.NewServer(router)
	return s
}
