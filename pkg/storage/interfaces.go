package storage

import (
	"context"
	"io"
)

type StorageService interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
}
