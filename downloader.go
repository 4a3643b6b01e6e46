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
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wxnacy/wgo/arrays"
	"golang.org/x/net/http/httpproxy"
)

// Request method constant definition
const (
	GET  string = "GET"
	POST string = "POST"
)

// downloadLog logging of downloader modules
var downloadLog *logrus.Entry = GetLogger("downloader")

// envProxyOnce System proxies load only one
var envProxyOnce sync.Once

// envProxyFuncValue System proxies get function
var envProxyFuncValue func(*url.URL) (*url.URL, error)

// proxyFunc http.Transport.Proxy reading proxies from the environment
func proxyFunc(req *http.Request) (*url.URL, error) {
	envProxyOnce.Do(func() {
		envProxyFuncValue = httpproxy.FromEnvironment().ProxyFunc()
	})
	return envProxyFuncValue(req.URL)
}

// Response a downloaded response
type Response struct {
	Status int
	Header http.Header
	URL    string
	// Delay seconds spent on the request
	Delay  float64
	Buffer *bytes.Buffer
}

// Bytes response body
func (r *Response) Bytes() []byte {
	return r.Buffer.Bytes()
}

// Downloader the http client shared by feeds and sinks
type Downloader struct {
	client    *http.Client
	transport *http.Transport
	header    map[string]string
	// allowStatus non-2xx status codes accepted as success
	allowStatus []uint64
}

// DownloaderOption optional parameters of the downloader
type DownloaderOption func(d *Downloader)

// DownloadWithTimeout set request timeout
func DownloadWithTimeout(timeout time.Duration) DownloaderOption {
	return func(d *Downloader) {
		d.client.Timeout = timeout
	}
}

// DownloadWithClient set http client for downloader
func DownloadWithClient(client *http.Client) DownloaderOption {
	return func(d *Downloader) {
		d.client = client
	}
}

// DownloadWithHeader header sent with every request
func DownloadWithHeader(key string, value string) DownloaderOption {
	return func(d *Downloader) {
		d.header[key] = value
	}
}

// DownloadWithAllowedStatus status codes outside 2xx that are not errors
func DownloadWithAllowedStatus(codes ...uint64) DownloaderOption {
	return func(d *Downloader) {
		d.allowStatus = append(d.allowStatus, codes...)
	}
}

// DownloadWithTlsConfig set tls configure for downloader
func DownloadWithTlsConfig(tls *tls.Config) DownloaderOption {
	return func(d *Downloader) {
		d.transport.TLSClientConfig = tls
	}
}

// NewDownloader a downloader with a 30s timeout
func NewDownloader(opts ...DownloaderOption) *Downloader {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: false,
		},
		Proxy: proxyFunc,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:          16,
		IdleConnTimeout:       60 * time.Second,
		TLSHandshakeTimeout:   30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	d := &Downloader{
		transport: transport,
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		header:      map[string]string{"User-Agent": "resourcefeed"},
		allowStatus: make([]uint64, 0),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Do sends one request and buffers the response body.
// Any status outside 2xx is returned as a *StatusError together with the response.
func (d *Downloader) Do(ctx context.Context, method string, target string, body io.Reader, header map[string]string) (*Response, error) {
	if _, err := url.ParseRequestURI(target); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request error %w", err)
	}
	for k, v := range d.header {
		req.Header.Set(k, v)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	now := time.Now()
	downloadLog.Debugf("%s %s", method, target)
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request url %s error %w", target, err)
	}
	defer resp.Body.Close()

	response := &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		URL:    req.URL.String(),
		Buffer: new(bytes.Buffer),
	}
	if _, err = io.Copy(response.Buffer, resp.Body); err != nil {
		return nil, fmt.Errorf("read response of %s error %w", target, err)
	}
	response.Delay = time.Since(now).Seconds()
	if !d.CheckStatus(uint64(resp.StatusCode)) {
		return response, &StatusError{URL: target, Status: resp.StatusCode}
	}
	return response, nil
}

// CheckStatus true for 2xx and the allowed status codes
func (d *Downloader) CheckStatus(statusCode uint64) bool {
	if statusCode >= 200 && statusCode < 300 {
		return true
	}
	return arrays.ContainsUint(d.allowStatus, statusCode) != -1
}

// Get downloads target
func (d *Downloader) Get(ctx context.Context, target string) (*Response, error) {
	return d.Do(ctx, GET, target, nil, nil)
}
