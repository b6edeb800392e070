package uploader

import (
	"context"
	"io"
)

// File is one pending image attachment.
type File struct {
	Name    string
	Content io.Reader
}

// Client uploads images to the external CDN and returns their public URLs,
// which are stored verbatim on the post or user document.
type Client interface {
	// Upload sends a single file and returns its public URL.
	Upload(ctx context.Context, file File) (string, error)

	// UploadAll sends every file concurrently and returns the URLs in input
	// order. It fails fast: the first error aborts the batch. The per-post
	// image cap is enforced before any network call is made.
	UploadAll(ctx context.Context, files []File) ([]string, error)
}
