package redis

import (
	"time"

	"github.com/go-redis/redis"
)

const (
	ErrNotFound = 404

	ErrNotFoundStr = "not found"
)

type RedisClientErr struct {
	code int
	msg  string
}

func (e *RedisClientErr) Code() int {
	return e.code
}

func (e *RedisClientErr) Error() string {
	return e.msg
}

func NewRedisClientErr(code int, msg string) *RedisClientErr {
	return &RedisClientErr{
		code: code,
		msg:  msg,
	}
}

func NewRedisNotFoundErr() *RedisClientErr {
	return NewRedisClientErr(ErrNotFound, ErrNotFoundStr)
}

func IsNotFoundErr(err error) bool {
	return err != nil && err.Error() == ErrNotFoundStr
}

type IRedisClient interface {
	Ping() error
	Get(key string) (string, error)
	Set(key string, value interface{}) error
	SetWithExp(key string, value interface{}, expiration time.Duration) error
	Delete(keys ...string) error
	Client() *redis.Client
	Close() error
}

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, pass string, maxRetries int) *RedisClient {
	opt := &redis.Options{
		Addr: addr,
	}
	if pass != "" {
		opt.Password = pass
	}
	if maxRetries > 0 && maxRetries < 5 {
		opt.MaxRetries = maxRetries
	}
	return &RedisClient{
		client: redis.NewClient(opt),
	}
}

func isErrNotFound(err error) bool {
	return err == redis.Nil
}

func (c *RedisClient) Ping() (err error) {
	_, err = c.client.Ping().Result()
	return
}

func (c *RedisClient) Get(key string) (string, error) {
	v, e := c.client.Get(key).Result()
	if isErrNotFound(e) {
		return "", NewRedisNotFoundErr()
	}
	return v, e
}

func (c *RedisClient) Set(key string, value interface{}) error {
	return c.client.Set(key, value, 0).Err()
}

func (c *RedisClient) SetWithExp(key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(key, value, expiration).Err()
}

func (c *RedisClient) Delete(keys ...string) error {
	return c.client.Del(keys...).Err()
}

func (c *RedisClient) Client() *redis.Client {
	return c.client
}

func (c *RedisClient) Close() error {
	return c.client.Close()
}
