package media

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gin-blog/config"
)

func newTestRedisStore(t *testing.T, ttl time.Duration, maxBytes int64) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl, "https://blog.example.com/", maxBytes), mr
}

func TestRedisStore_PutOpenRemove(t *testing.T) {
	s, mr := newTestRedisStore(t, 0, 1024)
	ctx := context.Background()

	png := "\x89PNG\r\n\x1a\n" + strings.Repeat("x", 32)
	url, err := s.Put(ctx, Upload{Filename: "Cover.PNG", Body: strings.NewReader(png)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://blog.example.com/media/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	key, err := keyFromURL(url)
	require.NoError(t, err)
	assert.True(t, mr.Exists(keyPrefix+key))

	obj, err := s.Open(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, png, string(obj.Data))

	require.NoError(t, s.Remove(ctx, url))
	_, err = s.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_KeepsDeclaredContentType(t *testing.T) {
	s, _ := newTestRedisStore(t, 0, 0)
	ctx := context.Background()

	url, err := s.Put(ctx, Upload{Filename: "a.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpeg-bytes")})
	require.NoError(t, err)
	key, _ := keyFromURL(url)

	obj, err := s.Open(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", obj.ContentType)
}

func TestRedisStore_TTL(t *testing.T) {
	s, mr := newTestRedisStore(t, time.Hour, 0)
	url, err := s.Put(context.Background(), Upload{Filename: "a.gif", Body: strings.NewReader("GIF89a")})
	require.NoError(t, err)
	key, _ := keyFromURL(url)

	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+key))
	mr.FastForward(2 * time.Hour)
	_, err = s.Open(context.Background(), key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_TooLarge(t *testing.T) {
	s, _ := newTestRedisStore(t, 0, 4)
	_, err := s.Put(context.Background(), Upload{Filename: "big.png", Body: strings.NewReader("12345")})
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestRedisStore_UpstreamDown(t *testing.T) {
	s, mr := newTestRedisStore(t, 0, 0)
	mr.Close()
	_, err := s.Put(context.Background(), Upload{Filename: "a.png", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrUpload)
}

func TestRedisStore_RelativeURLWithoutBase(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := NewRedisStore(client, 0, "", 0)

	url, err := s.Put(context.Background(), Upload{Filename: "a", Body: strings.NewReader("x")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/"))
}

func TestKeyFromURL(t *testing.T) {
	k, err := keyFromURL("/media/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "abc.png", k)

	_, err = keyFromURL("https://elsewhere.example.com/img/abc.png")
	assert.Error(t, err)
}

func TestExtOf(t *testing.T) {
	assert.Equal(t, ".png", extOf("a.PNG"))
	assert.Equal(t, "", extOf("noext"))
	assert.Equal(t, "", extOf("evil.p/ng"))
	assert.Equal(t, "", extOf("weird.<script>"))
}

func TestNew_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	store, closeFn, err := New(context.Background(), config.MediaConfig{
		Backend: "redis",
		Redis:   config.RedisMediaConfig{Addr: mr.Addr()},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	assert.IsType(t, &RedisStore{}, store)
}

func TestNew_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	store, closeFn, err := New(context.Background(), config.MediaConfig{Backend: "redis", Redis: config.RedisMediaConfig{Addr: addr}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	// 启动不失败，上传时才报错
	_, err = store.Put(context.Background(), Upload{Filename: "a.png", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrUpload)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, _, err := New(context.Background(), config.MediaConfig{Backend: "s3"})
	assert.ErrorContains(t, err, "unsupported media backend")
}
