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
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Configuration settings.yaml backed by viper
type Configuration struct {
	*viper.Viper
}

var onceConfig sync.Once
var Config *Configuration = nil

// CrawlerSettings the crawler section
type CrawlerSettings struct {
	DryRun        bool   `mapstructure:"dry_run"`
	RejectPolicy  string `mapstructure:"reject_policy"`
	FailurePolicy string `mapstructure:"failure_policy"`
}

// APISettings the resource api section
type APISettings struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Rate submissions per second, 0 is unlimited
	Rate int `mapstructure:"rate"`
}

// ProviderSettings one entry of the providers list.
// A provider without a mapping reuses the built in table of the same name.
type ProviderSettings struct {
	Name       string       `mapstructure:"name"`
	Licenses   []string     `mapstructure:"licenses"`
	URL        string       `mapstructure:"url"`
	Path       string       `mapstructure:"path"`
	RecordPath string       `mapstructure:"record_path"`
	Mapping    MappingTable `mapstructure:"mapping"`
}

// FeedSource the feed the settings point at, url wins over path
func (p ProviderSettings) FeedSource(fs afero.Fs, downloader *Downloader) (FeedSource, error) {
	switch {
	case p.URL != "":
		return NewHTTPFeed(p.URL, p.RecordPath, downloader), nil
	case p.Path != "":
		return NewLocalFeed(fs, p.Path, p.RecordPath), nil
	}
	return nil, fmt.Errorf("provider %s: %w", p.Name, ErrNilFeed)
}

// NewConfiguration configuration holding the defaults
func NewConfiguration() *Configuration {
	c := &Configuration{viper.New()}
	c.SetDefault("log.level", "info")
	c.SetDefault("crawler.dry_run", true)
	c.SetDefault("crawler.reject_policy", string(RejectDrop))
	c.SetDefault("crawler.failure_policy", string(FailAbort))
	c.SetDefault("api.timeout", 30*time.Second)
	c.SetDefault("api.rate", 0)
	c.SetDefault("feed.timeout", 30*time.Second)
	c.SetDefault("redis.timeout", 5*time.Second)
	c.SetDefault("redis.key", "resourcefeed:resources")
	return c
}

func newResourceFeedConfig() {
	onceConfig.Do(func() {
		Config = NewConfiguration()
	})
}

// load reads settings.yaml from dir
func (c *Configuration) load(dir string) bool {
	c.AddConfigPath(dir)
	c.SetConfigName("settings")
	c.SetConfigType("yaml")
	return c.ReadInConfig() == nil
}

// LoadFile reads the settings file at path
func (c *Configuration) LoadFile(path string) error {
	c.SetConfigFile(path)
	if err := c.ReadInConfig(); err != nil {
		return fmt.Errorf("read settings %s: %w", path, err)
	}
	return nil
}

// CrawlerSettings the crawler section with defaults applied
func (c *Configuration) CrawlerSettings() *CrawlerSettings {
	return &CrawlerSettings{
		DryRun:        c.GetBool("crawler.dry_run"),
		RejectPolicy:  c.GetString("crawler.reject_policy"),
		FailurePolicy: c.GetString("crawler.failure_policy"),
	}
}

// APISettings the api section with defaults applied
func (c *Configuration) APISettings() *APISettings {
	return &APISettings{
		URL:     c.GetString("api.url"),
		Token:   c.GetString("api.token"),
		Timeout: c.GetDuration("api.timeout"),
		Rate:    c.GetInt("api.rate"),
	}
}

// RedisSettings the redis section with defaults applied
func (c *Configuration) RedisSettings() *RedisConfig {
	return &RedisConfig{
		Addr:     c.GetString("redis.addr"),
		Username: c.GetString("redis.username"),
		Password: c.GetString("redis.password"),
		DB:       c.GetInt("redis.db"),
		PoolSize: c.GetInt("redis.pool_size"),
		Timeout:  c.GetDuration("redis.timeout"),
		MaxRetry: c.GetInt("redis.max_retry"),
		Key:      c.GetString("redis.key"),
	}
}

// ProviderSettings the providers list. Reducer names are case insensitive and
// a single license may be given as a plain string.
func (c *Configuration) ProviderSettings() ([]ProviderSettings, error) {
	providers := make([]ProviderSettings, 0)
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		reducerKindHook,
		singleStringHook,
	))
	if err := c.UnmarshalKey("providers", &providers, hook); err != nil {
		return nil, err
	}
	return providers, nil
}

func reducerKindHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(FirstText) {
		return data, nil
	}
	return strings.ToLower(strings.TrimSpace(data.(string))), nil
}

func singleStringHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]string{}) {
		return data, nil
	}
	return []string{data.(string)}, nil
}

func initSettings() {
	newResourceFeedConfig()
	wd, _ := os.Getwd()
	Config.load(wd)
}
