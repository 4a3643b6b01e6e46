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
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig connection settings of the redis sink
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	PoolSize int           `mapstructure:"pool_size"`
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxRetry int           `mapstructure:"max_retry"`
	// Key list the resources are pushed to
	Key string `mapstructure:"key"`
}

// NewRdbConfig redis options of config
func NewRdbConfig(config *RedisConfig) *redis.Options {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &redis.Options{
		Addr:     config.Addr,
		Username: config.Username,
		Password: config.Password,
		DB:       config.DB,
		PoolSize: config.PoolSize,

		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		PoolTimeout:  timeout,

		ConnMaxIdleTime: 5 * time.Minute,

		MaxRetries:      config.MaxRetry,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	}
}

// NewRdbClient a client that answered a ping
func NewRdbClient(config *RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(NewRdbConfig(config))
	if err := rdb.Ping(context.TODO()).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", config.Addr, err)
	}
	return rdb, nil
}

// RedisSink pushes accepted resources as json onto a redis list
// where a downstream importer consumes them
type RedisSink struct {
	rdb       redis.Cmdable
	key       string
	validator Validator
}

// NewRedisSink sink writing to key, validator nil means the embedded resource schema
func NewRedisSink(rdb redis.Cmdable, key string, validator Validator) *RedisSink {
	if validator == nil {
		validator = NewDefaultValidator()
	}
	return &RedisSink{rdb: rdb, key: key, validator: validator}
}

func (r *RedisSink) Validate(resource *Resource) error {
	return r.validator.Validate(resource)
}

func (r *RedisSink) Add(ctx context.Context, resource *Resource) error {
	body, err := resource.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	if err := r.rdb.RPush(ctx, r.key, body).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	return nil
}
