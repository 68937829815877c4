package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "media:"

// RedisStore keeps uploaded blobs in a redis hash (type + data) and serves them under /media/:key.
type RedisStore struct {
	client   *redis.Client
	ttl      time.Duration
	baseURL  string
	maxBytes int64
}

// NewRedisStore ttl 为 0 表示永不过期；baseURL 为空时返回站内相对路径。
func NewRedisStore(client *redis.Client, ttl time.Duration, baseURL string, maxBytes int64) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, baseURL: strings.TrimRight(baseURL, "/"), maxBytes: maxBytes}
}

func (s *RedisStore) Put(ctx context.Context, u Upload) (string, error) {
	r := u.Body
	if s.maxBytes > 0 {
		r = io.LimitReader(u.Body, s.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrUpload, u.Filename, err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	contentType := u.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	key := uuid.NewString() + extOf(u.Filename)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, keyPrefix+key, "type", contentType, "data", data)
	if s.ttl > 0 {
		pipe.Expire(ctx, keyPrefix+key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return s.baseURL + "/media/" + key, nil
}

func (s *RedisStore) Open(ctx context.Context, key string) (*Object, error) {
	vals, err := s.client.HGetAll(ctx, keyPrefix+key).Result()
	if err != nil {
		return nil, err
	}
	data, ok := vals["data"]
	if !ok {
		return nil, ErrNotFound
	}
	return &Object{ContentType: vals["type"], Data: []byte(data)}, nil
}

func (s *RedisStore) Remove(ctx context.Context, rawURL string) error {
	key, err := keyFromURL(rawURL)
	if err != nil {
		return err
	}
	return s.client.Del(ctx, keyPrefix+key).Err()
}

func keyFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	dir, key := path.Split(u.Path)
	if !strings.HasSuffix(dir, "/media/") || key == "" {
		return "", errors.New("not a media url: " + rawURL)
	}
	return key, nil
}
