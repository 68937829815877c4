package media

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	ErrUpload   = errors.New("media upload failed")
	ErrTooLarge = errors.New("media exceeds size limit")
	ErrNotFound = errors.New("media not found")
)

// Upload 待上传的二进制内容
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Store stores a blob and hands back the URL it can be fetched from.
type Store interface {
	Put(ctx context.Context, u Upload) (string, error)
	Remove(ctx context.Context, url string) error
}

// Object 由自托管后端返回的内容
type Object struct {
	ContentType string
	Data        []byte
}

// Opener is implemented by backends that serve their own blobs (see /media/:key).
type Opener interface {
	Open(ctx context.Context, key string) (*Object, error)
}

// extOf keeps short alphanumeric extensions only.
func extOf(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) < 2 || len(ext) > 6 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
