// Package storage holds uploaded media blobs. The record of a blob
// lives in the media table; the bytes live behind BlobStore. URLs are
// derived from the stored filename and never signed.
package storage

import "context"

type BlobStore interface {
	Save(ctx context.Context, filename string, data []byte, contentType string) error
	URL(filename string) string
}
