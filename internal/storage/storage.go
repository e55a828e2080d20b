// Package storage abstracts where uploaded profile images live. Records keep
// an opaque URL string; replacing or soft-deleting a record triggers a
// best-effort Delete of the orphaned file, whose failure is logged and never
// surfaced to the client.
package storage

import (
	"context"
	"io"
)

// Store saves and deletes image blobs
type Store interface {
	// Save stores the blob and returns the URL to persist on the record.
	Save(ctx context.Context, r io.Reader, originalName string) (string, error)

	// Delete removes the blob a previous Save returned url for. Unknown or
	// foreign URLs are ignored.
	Delete(ctx context.Context, url string) error
}
