package object

import (
	"context"
	"io"
)

// KeyPrefix namespaces every uploaded document key.
const KeyPrefix = "resumes"

// ObjectStore saves uploaded documents and opens them by storage key.
type ObjectStore interface {
	Save(ctx context.Context, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
