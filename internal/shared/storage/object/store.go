package object

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned for keys that escape the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// Object is a blob to persist. Owner may be empty for anonymous uploads.
type Object struct {
	Owner       string
	FileName    string
	ContentType string
	Body        []byte
}

// Store persists original uploads.
type Store interface {
	Put(ctx context.Context, obj Object) (storageKey string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
